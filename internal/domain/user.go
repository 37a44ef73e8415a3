package domain

import "time"

// User roles
const (
	RoleEmployee = "employee" // Regular employee
	RoleAdmin    = "admin"    // Administrator
)

// Leave categories
const (
	CategoryEarned = "earned" // Earned leave
	CategorySick   = "sick"   // Sick leave
)

// Balance bounds for each leave category
const (
	DefaultBalance = 12 // Leave units granted on registration, per category
	BalanceCap     = 30 // Upper bound; a stored balance above this is an integrity fault
)

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`              // Primary key
	Name         string    `gorm:"not null" json:"name"`              // Display name
	Email        string    `gorm:"uniqueIndex;not null" json:"email"` // Unique email (lowercased)
	Password     string    `gorm:"not null" json:"-"`                 // Bcrypt hash, never serialized
	Role         string    `gorm:"default:employee" json:"role"`      // Role: employee or admin
	EarnedLeaves int       `gorm:"default:12" json:"earned_leaves"`   // Remaining earned-leave units
	SickLeaves   int       `gorm:"default:12" json:"sick_leaves"`     // Remaining sick-leave units
	IsActive     bool      `gorm:"default:true" json:"is_active"`     // Deactivated accounts cannot log in
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`  // Timestamp of creation
}

// Balance returns the user's remaining units for a leave category.
func (u *User) Balance(category string) int {
	if category == CategorySick {
		return u.SickLeaves
	}
	return u.EarnedLeaves
}

// ValidCategory reports whether s names a known leave category.
func ValidCategory(s string) bool {
	return s == CategoryEarned || s == CategorySick
}

// Principal is the authenticated identity passed into every lifecycle call.
// It is built from the verified token by the auth middleware; the core trusts
// its Role for administrator-only operations.
type Principal struct {
	UserID uint   // Authenticated user ID
	Role   string // employee or admin
	Email  string // Email claim from the token
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
