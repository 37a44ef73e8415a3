// Package ledger owns all reads and writes of per-user leave balances.
// Nothing else in the system touches the balance columns.
package ledger

import (
	"context"

	"leave_tracker/internal/domain" // Domain models and errors
	"leave_tracker/internal/store"  // Persistence boundary
)

// Ledger tracks remaining leave units per user and category and enforces
// the balance bounds.
type Ledger struct {
	users store.UserStore // Backing user store
}

// New returns a Ledger over the given user store.
func New(users store.UserStore) *Ledger {
	return &Ledger{users: users}
}

// Available returns the user's remaining units for a category.
func (l *Ledger) Available(ctx context.Context, userID uint, category string) (int, error) {
	user, err := l.users.ByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Balance(category), nil
}

// Check gates a new application against the current balance. A balance
// above the cap is an integrity fault that blocks the category entirely;
// it must not be confused with ordinary insufficiency.
func (l *Ledger) Check(user *domain.User, category string, requestedDays int) error {
	balance := user.Balance(category)
	if balance > domain.BalanceCap {
		return domain.IntegrityFaultf("balance exceeds %d days; please contact administrator", domain.BalanceCap)
	}
	if balance <= 0 {
		return domain.Insufficientf("no %s leaves available", category)
	}
	if requestedDays > balance {
		return domain.Insufficientf("you don't have enough %s leaves for this period", category)
	}
	return nil
}

// Debit removes days from the user's category balance. The write is a
// single conditional update; when the balance is too low nothing is
// persisted and InsufficientBalance is returned. On success the updated
// user record is returned.
func (l *Ledger) Debit(ctx context.Context, userID uint, category string, days int) (*domain.User, error) {
	applied, err := l.users.DebitBalance(ctx, userID, category, days)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Distinguish a missing user from an insufficient balance.
		if _, err := l.users.ByID(ctx, userID); err != nil {
			return nil, err
		}
		return nil, domain.Insufficientf("insufficient %s leaves", category)
	}
	return l.users.ByID(ctx, userID)
}

// Credit returns days to the user's category balance. Used to compensate
// a debit whose surrounding transition could not be committed.
func (l *Ledger) Credit(ctx context.Context, userID uint, category string, days int) error {
	return l.users.CreditBalance(ctx, userID, category, days)
}
