// Package leave implements the request lifecycle: validation, the
// pending -> approved/rejected state machine, and the read projections
// over the stored requests.
package leave

import (
	"context"
	"math"
	"strings"
	"time"

	"leave_tracker/internal/domain" // Domain models and errors
	"leave_tracker/internal/ledger" // Balance ledger
	"leave_tracker/internal/notify" // Decision notifications
	"leave_tracker/internal/store"  // Persistence boundary

	"github.com/sirupsen/logrus" // Logging library
)

// PageSize is the fixed page size for request listings.
const PageSize = 10

// Sink receives decision events after the state change is committed.
// Delivery is best-effort and never affects the decision outcome.
type Sink interface {
	Emit(n notify.Notification)
}

// Service drives leave requests through their lifecycle.
type Service struct {
	users  store.UserStore  // User records
	leaves store.LeaveStore // Leave request records
	ledger *ledger.Ledger   // Balance ledger, sole owner of balance writes
	sink   Sink             // Post-commit decision events
}

// NewService wires a lifecycle service from its collaborators.
func NewService(users store.UserStore, leaves store.LeaveStore, ldg *ledger.Ledger, sink Sink) *Service {
	return &Service{users: users, leaves: leaves, ledger: ldg, sink: sink}
}

// ApplyInput carries a new leave application.
type ApplyInput struct {
	LeaveType string    // earned or sick
	FromDate  time.Time // First day of leave
	ToDate    time.Time // Last day of leave
	Reason    string    // Free-text reason, 10-500 chars
}

// Apply validates an application and persists it as pending. The balance
// is checked but not debited; the debit happens on approval.
func (s *Service) Apply(ctx context.Context, p domain.Principal, in ApplyInput) (*domain.LeaveRequest, error) {
	if !domain.ValidCategory(in.LeaveType) {
		return nil, domain.Validationf("leave type must be either earned or sick")
	}
	if in.FromDate.IsZero() || in.ToDate.IsZero() {
		return nil, domain.Validationf("please provide all required fields")
	}
	if !in.ToDate.After(in.FromDate) {
		return nil, domain.Validationf("end date must be after start date")
	}
	reason := strings.TrimSpace(in.Reason)
	if len(reason) < domain.MinReasonLen {
		return nil, domain.Validationf("reason must be at least %d characters", domain.MinReasonLen)
	}
	if len(reason) > domain.MaxReasonLen {
		return nil, domain.Validationf("reason cannot exceed %d characters", domain.MaxReasonLen)
	}

	days := requestedDays(in.FromDate, in.ToDate)
	if days > domain.MaxRequestDays {
		// Independent of the balance: one application never spans more than the cap.
		return nil, domain.Validationf("cannot request more than %d days in one application", domain.MaxRequestDays)
	}

	user, err := s.users.ByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Check(user, in.LeaveType, days); err != nil {
		return nil, err
	}

	leave := &domain.LeaveRequest{
		UserID:    p.UserID,
		LeaveType: in.LeaveType,
		FromDate:  in.FromDate,
		ToDate:    in.ToDate,
		Reason:    reason,
		Status:    domain.StatusPending,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":    p.UserID,
		"leave_id":   leave.ID,
		"leave_type": leave.LeaveType,
		"days":       days,
	}).Info("Leave application submitted")
	return leave, nil
}

// Decide sets a pending request to approved or rejected. Administrator
// only. Approval debits the ledger first and aborts wholly when the debit
// fails, leaving the request pending. The status transition itself is a
// compare-and-set on the pending status, so a concurrent decision loses
// with AlreadyProcessed. The notification is emitted only after the
// transition committed.
func (s *Service) Decide(ctx context.Context, p domain.Principal, requestID uint, decision, comment string) (*domain.LeaveRequest, error) {
	if !p.IsAdmin() {
		return nil, domain.Forbiddenf("admin access required")
	}
	if !domain.ValidDecision(decision) {
		return nil, domain.Validationf("invalid status; must be 'approved' or 'rejected'")
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > domain.MaxCommentLen {
		return nil, domain.Validationf("comments cannot exceed %d characters", domain.MaxCommentLen)
	}

	leave, err := s.leaves.ByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if leave.Terminal() {
		return nil, domain.ErrAlreadyProcessed
	}

	days := 0
	if decision == domain.StatusApproved {
		days = debitDays(leave.FromDate, leave.ToDate)
		if _, err := s.ledger.Debit(ctx, leave.UserID, leave.LeaveType, days); err != nil {
			// No debit happened; the request stays pending and no
			// notification is sent.
			return nil, err
		}
	}

	won, err := s.leaves.Decide(ctx, requestID, decision, comment)
	if err != nil || !won {
		if decision == domain.StatusApproved {
			// The transition did not commit; return the debited days so
			// the balance reflects exactly the committed decisions.
			if cerr := s.ledger.Credit(ctx, leave.UserID, leave.LeaveType, days); cerr != nil {
				logrus.WithFields(logrus.Fields{
					"leave_id": requestID,
					"user_id":  leave.UserID,
					"days":     days,
					"error":    cerr.Error(),
				}).Error("Failed to restore balance after aborted approval")
			}
		}
		if err != nil {
			return nil, err
		}
		return nil, domain.ErrAlreadyProcessed
	}

	leave.Status = decision
	leave.AdminComments = comment
	logrus.WithFields(logrus.Fields{
		"leave_id":   leave.ID,
		"user_id":    leave.UserID,
		"admin_id":   p.UserID,
		"decision":   decision,
		"days":       days,
		"leave_type": leave.LeaveType,
	}).Info("Leave request decided")

	s.notifyOwner(ctx, leave)
	return leave, nil
}

// notifyOwner emits the decision event for the request owner. Lookup
// failures are logged and dropped; the decision already committed.
func (s *Service) notifyOwner(ctx context.Context, leave *domain.LeaveRequest) {
	if s.sink == nil {
		return
	}
	owner, err := s.users.ByID(ctx, leave.UserID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"leave_id": leave.ID,
			"user_id":  leave.UserID,
			"error":    err.Error(),
		}).Error("Failed to resolve owner for decision notification")
		return
	}
	subject := "Leave Request Approved"
	if leave.Status == domain.StatusRejected {
		subject = "Leave Request Rejected"
	}
	s.sink.Emit(notify.Notification{
		Recipient: owner.Email,
		Subject:   subject,
		Data: notify.DecisionData{
			Name:          owner.Name,
			Status:        leave.Status,
			LeaveType:     leave.LeaveType,
			FromDate:      leave.FromDate,
			ToDate:        leave.ToDate,
			Reason:        leave.Reason,
			AdminComments: leave.AdminComments,
		},
	})
}

// RequestPage is one page of a user's own requests.
type RequestPage struct {
	Total  int64                 `json:"total"`  // Total matching requests
	Page   int                   `json:"page"`   // Current page
	Pages  int                   `json:"pages"`  // Total pages
	Leaves []domain.LeaveRequest `json:"leaves"` // Requests on this page
}

// ListOwn returns the principal's requests, newest first.
func (s *Service) ListOwn(ctx context.Context, p domain.Principal, status string, page int) (*RequestPage, error) {
	if status != "" && !domain.ValidStatus(status) {
		return nil, domain.Validationf("status must be pending, approved, or rejected")
	}
	if page < 1 {
		page = 1
	}
	leaves, total, err := s.leaves.ListByUser(ctx, p.UserID, status, store.Page{Number: page, Size: PageSize})
	if err != nil {
		return nil, err
	}
	return &RequestPage{Total: total, Page: page, Pages: pages(total), Leaves: leaves}, nil
}

// AdminRequestPage is one page of the administrator listing.
type AdminRequestPage struct {
	Total  int64                  `json:"total"`  // Total matching requests
	Page   int                    `json:"page"`   // Current page
	Pages  int                    `json:"pages"`  // Total pages
	Leaves []store.LeaveWithOwner `json:"leaves"` // Requests joined with owner identity
}

// ListAll returns requests across all users. Administrator only.
func (s *Service) ListAll(ctx context.Context, p domain.Principal, status, keyword string, page int) (*AdminRequestPage, error) {
	if !p.IsAdmin() {
		return nil, domain.Forbiddenf("admin access required")
	}
	if status != "" && !domain.ValidStatus(status) {
		return nil, domain.Validationf("status must be pending, approved, or rejected")
	}
	if page < 1 {
		page = 1
	}
	filter := store.LeaveFilter{Status: status, Keyword: keyword}
	leaves, total, err := s.leaves.ListAll(ctx, filter, store.Page{Number: page, Size: PageSize})
	if err != nil {
		return nil, err
	}
	return &AdminRequestPage{Total: total, Page: page, Pages: pages(total), Leaves: leaves}, nil
}

// BalanceSummary reports the principal's remaining units.
type BalanceSummary struct {
	EarnedLeaves int `json:"earned_leaves"` // Remaining earned units
	SickLeaves   int `json:"sick_leaves"`   // Remaining sick units
	TotalLeaves  int `json:"total_leaves"`  // Sum of both categories
}

// Balance returns the principal's remaining leave units.
func (s *Service) Balance(ctx context.Context, p domain.Principal) (*BalanceSummary, error) {
	user, err := s.users.ByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return &BalanceSummary{
		EarnedLeaves: user.EarnedLeaves,
		SickLeaves:   user.SickLeaves,
		TotalLeaves:  user.EarnedLeaves + user.SickLeaves,
	}, nil
}

// Analytics is the aggregate view over all requests.
type Analytics struct {
	TotalRequests        int64   `json:"total_requests"`         // All requests
	Approved             int64   `json:"approved"`               // Approved requests
	Pending              int64   `json:"pending"`                // Pending requests
	Rejected             int64   `json:"rejected"`               // Rejected requests
	ApprovalRate         float64 `json:"approval_rate"`          // approved/total*100, 2 decimals, 0 when empty
	CurrentMonthRequests int64   `json:"current_month_requests"` // Created since start of the calendar month
	ByType               ByType  `json:"by_type"`                // Per-category counts
}

// ByType breaks request counts down per leave category.
type ByType struct {
	Earned int64 `json:"earned"` // Earned-category requests
	Sick   int64 `json:"sick"`   // Sick-category requests
}

// Analytics returns the aggregate counts. Administrator only.
func (s *Service) Analytics(ctx context.Context, p domain.Principal) (*Analytics, error) {
	if !p.IsAdmin() {
		return nil, domain.Forbiddenf("admin access required")
	}
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	c, err := s.leaves.Counts(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	rate := 0.0
	if c.Total > 0 {
		rate = math.Round(float64(c.Approved)/float64(c.Total)*100*100) / 100
	}
	return &Analytics{
		TotalRequests:        c.Total,
		Approved:             c.Approved,
		Pending:              c.Pending,
		Rejected:             c.Rejected,
		ApprovalRate:         rate,
		CurrentMonthRequests: c.SinceStart,
		ByType:               ByType{Earned: c.Earned, Sick: c.Sick},
	}, nil
}

// pages converts a total count into a page count at the fixed page size.
func pages(total int64) int {
	return (int(total) + PageSize - 1) / PageSize
}
