package store

import (
	"context"
	"time"

	"leave_tracker/internal/domain" // Domain models
)

// Page describes a pagination window.
type Page struct {
	Number int // 1-based page number
	Size   int // Records per page
}

// Offset returns the record offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// LeaveFilter narrows an administrator listing.
type LeaveFilter struct {
	Status  string // Optional status filter
	Keyword string // Optional case-insensitive substring match on reason
}

// LeaveWithOwner is a leave request joined with minimal owner identity.
type LeaveWithOwner struct {
	domain.LeaveRequest
	OwnerName  string `json:"owner_name"`  // Owner display name
	OwnerEmail string `json:"owner_email"` // Owner email
	OwnerRole  string `json:"owner_role"`  // Owner role
}

// Counts holds the raw aggregates behind the analytics view.
type Counts struct {
	Total      int64 // All requests
	Approved   int64 // Requests with status approved
	Pending    int64 // Requests with status pending
	Rejected   int64 // Requests with status rejected
	Earned     int64 // Requests in the earned category
	Sick       int64 // Requests in the sick category
	SinceStart int64 // Requests created since the given month start
}

// UserStore is the persistence boundary for user records.
type UserStore interface {
	// Create persists a new user.
	Create(ctx context.Context, u *domain.User) error
	// ByID fetches a user by primary key.
	ByID(ctx context.Context, id uint) (*domain.User, error)
	// ByEmail fetches a user by unique email.
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	// DebitBalance atomically decrements the category balance by days,
	// only when the current balance is at least days. It reports whether
	// the conditional write was applied. A single document write, no
	// partial updates.
	DebitBalance(ctx context.Context, userID uint, category string, days int) (bool, error)
	// CreditBalance atomically increments the category balance by days.
	CreditBalance(ctx context.Context, userID uint, category string, days int) error
}

// LeaveStore is the persistence boundary for leave requests.
type LeaveStore interface {
	// Create persists a new leave request.
	Create(ctx context.Context, l *domain.LeaveRequest) error
	// ByID fetches a leave request by primary key.
	ByID(ctx context.Context, id uint) (*domain.LeaveRequest, error)
	// Decide sets status and adminComments only when the stored status is
	// still pending (compare-and-set). It reports whether this call won
	// the transition; a concurrent decision observes false.
	Decide(ctx context.Context, id uint, status, comment string) (bool, error)
	// ListByUser returns the user's requests, newest first, with the
	// total matching count.
	ListByUser(ctx context.Context, userID uint, status string, page Page) ([]domain.LeaveRequest, int64, error)
	// ListAll returns requests across all users joined with owner
	// identity, newest first, with the total matching count.
	ListAll(ctx context.Context, filter LeaveFilter, page Page) ([]LeaveWithOwner, int64, error)
	// Counts returns the aggregates for analytics; sinceStart bounds the
	// current-month count.
	Counts(ctx context.Context, sinceStart time.Time) (Counts, error)
}
