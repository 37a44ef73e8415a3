package domain

import "time"

// Leave request statuses
const (
	StatusPending  = "pending"  // Initial status
	StatusApproved = "approved" // Terminal: request granted, balance debited
	StatusRejected = "rejected" // Terminal: request refused, no balance change
)

// Reason and comment length bounds
const (
	MinReasonLen   = 10  // Reason must be at least this many characters
	MaxReasonLen   = 500 // Reason cannot exceed this many characters
	MaxCommentLen  = 500 // Admin comments cannot exceed this many characters
	MaxRequestDays = 30  // Cap on days in a single application
)

// LeaveRequest Model
type LeaveRequest struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                // Primary key
	UserID        uint      `gorm:"index;not null" json:"user_id"`       // Owning user
	LeaveType     string    `gorm:"not null" json:"leave_type"`          // Category: earned or sick
	FromDate      time.Time `gorm:"index;not null" json:"from_date"`     // First day of leave
	ToDate        time.Time `gorm:"not null" json:"to_date"`             // Last day of leave, strictly after FromDate
	Reason        string    `gorm:"size:500;not null" json:"reason"`     // Free-text reason, 10-500 chars
	Status        string    `gorm:"index;default:pending" json:"status"` // pending, approved or rejected
	AdminComments string    `gorm:"size:500" json:"admin_comments"`      // Optional decision comment
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`    // Timestamp of creation
}

// Terminal reports whether the request has already been decided.
func (l *LeaveRequest) Terminal() bool {
	return l.Status != StatusPending
}

// ValidStatus reports whether s names a known request status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// ValidDecision reports whether s is a status an administrator may set.
func ValidDecision(s string) bool {
	return s == StatusApproved || s == StatusRejected
}
