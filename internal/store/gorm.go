package store

import (
	"context" // Context propagation into queries
	"errors"
	"strings"
	"time"

	"leave_tracker/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// balanceColumn maps a leave category to its user table column.
func balanceColumn(category string) string {
	if category == domain.CategorySick {
		return "sick_leaves"
	}
	return "earned_leaves"
}

// GormUserStore implements UserStore on a gorm connection.
type GormUserStore struct {
	db *gorm.DB // Database handle
}

// NewGormUserStore returns a UserStore backed by db.
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// Create persists a new user record.
func (s *GormUserStore) Create(ctx context.Context, u *domain.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

// ByID fetches a user by primary key.
func (s *GormUserStore) ByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundf("user not found")
		}
		return nil, domain.StoreErr(err)
	}
	return &user, nil
}

// ByEmail fetches a user by unique email.
func (s *GormUserStore) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundf("user not found")
		}
		return nil, domain.StoreErr(err)
	}
	return &user, nil
}

// DebitBalance decrements the category balance by days in a single
// conditional UPDATE. The WHERE clause guards against the balance going
// negative; zero rows affected means the guard failed.
func (s *GormUserStore) DebitBalance(ctx context.Context, userID uint, category string, days int) (bool, error) {
	col := balanceColumn(category)
	res := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND "+col+" >= ?", userID, days).
		Update(col, gorm.Expr(col+" - ?", days))
	if res.Error != nil {
		return false, domain.StoreErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

// CreditBalance increments the category balance by days.
func (s *GormUserStore) CreditBalance(ctx context.Context, userID uint, category string, days int) error {
	col := balanceColumn(category)
	res := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Update(col, gorm.Expr(col+" + ?", days))
	if res.Error != nil {
		return domain.StoreErr(res.Error)
	}
	return nil
}

// GormLeaveStore implements LeaveStore on a gorm connection.
type GormLeaveStore struct {
	db *gorm.DB // Database handle
}

// NewGormLeaveStore returns a LeaveStore backed by db.
func NewGormLeaveStore(db *gorm.DB) *GormLeaveStore {
	return &GormLeaveStore{db: db}
}

// Create persists a new leave request.
func (s *GormLeaveStore) Create(ctx context.Context, l *domain.LeaveRequest) error {
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return domain.StoreErr(err)
	}
	return nil
}

// ByID fetches a leave request by primary key.
func (s *GormLeaveStore) ByID(ctx context.Context, id uint) (*domain.LeaveRequest, error) {
	var leave domain.LeaveRequest
	if err := s.db.WithContext(ctx).First(&leave, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundf("leave request not found")
		}
		return nil, domain.StoreErr(err)
	}
	return &leave, nil
}

// Decide transitions a pending request to a terminal status. The WHERE
// clause on the current status serializes concurrent decisions: only the
// first caller sees RowsAffected == 1.
func (s *GormLeaveStore) Decide(ctx context.Context, id uint, status, comment string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&domain.LeaveRequest{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Updates(map[string]any{"status": status, "admin_comments": comment})
	if res.Error != nil {
		return false, domain.StoreErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

// ListByUser returns the user's requests, newest first.
func (s *GormLeaveStore) ListByUser(ctx context.Context, userID uint, status string, page Page) ([]domain.LeaveRequest, int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.LeaveRequest{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status) // Optional status filter
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.StoreErr(err)
	}
	var leaves []domain.LeaveRequest
	if err := query.Order("created_at desc").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&leaves).Error; err != nil {
		return nil, 0, domain.StoreErr(err)
	}
	return leaves, total, nil
}

// ListAll returns requests across all users joined with owner identity.
func (s *GormLeaveStore) ListAll(ctx context.Context, filter LeaveFilter, page Page) ([]LeaveWithOwner, int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.LeaveRequest{})
	if filter.Status != "" {
		query = query.Where("leave_requests.status = ?", filter.Status) // Filter by status
	}
	if filter.Keyword != "" {
		// Case-insensitive substring match on the reason text
		query = query.Where("LOWER(leave_requests.reason) LIKE ?", "%"+strings.ToLower(filter.Keyword)+"%")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.StoreErr(err)
	}
	var leaves []LeaveWithOwner
	if err := query.
		Joins("JOIN users ON users.id = leave_requests.user_id").
		Select("leave_requests.*, users.name AS owner_name, users.email AS owner_email, users.role AS owner_role").
		Order("leave_requests.created_at desc").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&leaves).Error; err != nil {
		return nil, 0, domain.StoreErr(err)
	}
	return leaves, total, nil
}

// Counts returns the aggregates for the analytics view.
func (s *GormLeaveStore) Counts(ctx context.Context, sinceStart time.Time) (Counts, error) {
	var c Counts
	model := func() *gorm.DB { return s.db.WithContext(ctx).Model(&domain.LeaveRequest{}) }
	if err := model().Count(&c.Total).Error; err != nil {
		return Counts{}, domain.StoreErr(err)
	}
	if err := model().Where("status = ?", domain.StatusApproved).Count(&c.Approved).Error; err != nil {
		return Counts{}, domain.StoreErr(err)
	}
	if err := model().Where("status = ?", domain.StatusPending).Count(&c.Pending).Error; err != nil {
		return Counts{}, domain.StoreErr(err)
	}
	if err := model().Where("status = ?", domain.StatusRejected).Count(&c.Rejected).Error; err != nil {
		return Counts{}, domain.StoreErr(err)
	}
	if err := model().Where("leave_type = ?", domain.CategoryEarned).Count(&c.Earned).Error; err != nil {
		return Counts{}, domain.StoreErr(err)
	}
	if err := model().Where("leave_type = ?", domain.CategorySick).Count(&c.Sick).Error; err != nil {
		return Counts{}, domain.StoreErr(err)
	}
	if err := model().Where("created_at >= ?", sinceStart).Count(&c.SinceStart).Error; err != nil {
		return Counts{}, domain.StoreErr(err)
	}
	return c, nil
}
