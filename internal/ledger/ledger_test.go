package ledger

import (
	"context"
	"testing"

	"leave_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUserStore is a minimal in-memory UserStore for ledger tests.
type memUserStore struct {
	users  map[uint]*domain.User
	writes int
}

func newMemUserStore(users ...*domain.User) *memUserStore {
	s := &memUserStore{users: make(map[uint]*domain.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUserStore) Create(_ context.Context, u *domain.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *memUserStore) ByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.NotFoundf("user not found")
	}
	copied := *u
	return &copied, nil
}

func (s *memUserStore) ByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.NotFoundf("user not found")
}

func (s *memUserStore) DebitBalance(_ context.Context, userID uint, category string, days int) (bool, error) {
	u, ok := s.users[userID]
	if !ok || u.Balance(category) < days {
		return false, nil
	}
	s.writes++
	if category == domain.CategorySick {
		u.SickLeaves -= days
	} else {
		u.EarnedLeaves -= days
	}
	return true, nil
}

func (s *memUserStore) CreditBalance(_ context.Context, userID uint, category string, days int) error {
	u, ok := s.users[userID]
	if !ok {
		return domain.NotFoundf("user not found")
	}
	s.writes++
	if category == domain.CategorySick {
		u.SickLeaves += days
	} else {
		u.EarnedLeaves += days
	}
	return nil
}

func user(earned, sick int) *domain.User {
	return &domain.User{ID: 1, Email: "a@b.co", EarnedLeaves: earned, SickLeaves: sick}
}

func TestCheck(t *testing.T) {
	l := New(newMemUserStore())
	tests := []struct {
		name     string
		balance  int
		days     int
		category string
		wantErr  error
	}{
		{"within balance", 12, 3, domain.CategoryEarned, nil},
		{"exact balance", 12, 12, domain.CategoryEarned, nil},
		{"one over balance", 12, 13, domain.CategoryEarned, domain.ErrInsufficient},
		{"zero balance", 0, 1, domain.CategoryEarned, domain.ErrInsufficient},
		{"at the cap still usable", 30, 5, domain.CategorySick, nil},
		{"above the cap", 31, 1, domain.CategorySick, domain.ErrIntegrityFault},
		{"far above the cap", 35, 1, domain.CategoryEarned, domain.ErrIntegrityFault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := user(12, 12)
			if tt.category == domain.CategorySick {
				u.SickLeaves = tt.balance
			} else {
				u.EarnedLeaves = tt.balance
			}
			err := l.Check(u, tt.category, tt.days)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDebitPersistsOnce(t *testing.T) {
	s := newMemUserStore(user(12, 12))
	l := New(s)

	updated, err := l.Debit(context.Background(), 1, domain.CategoryEarned, 2)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.EarnedLeaves)
	assert.Equal(t, 12, updated.SickLeaves)
	assert.Equal(t, 1, s.writes)
}

func TestDebitInsufficientWritesNothing(t *testing.T) {
	s := newMemUserStore(user(3, 12))
	l := New(s)

	_, err := l.Debit(context.Background(), 1, domain.CategoryEarned, 5)
	assert.ErrorIs(t, err, domain.ErrInsufficient)
	assert.Equal(t, 3, s.users[1].EarnedLeaves)
	assert.Zero(t, s.writes)
}

func TestDebitUnknownUser(t *testing.T) {
	l := New(newMemUserStore())

	_, err := l.Debit(context.Background(), 7, domain.CategoryEarned, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAvailable(t *testing.T) {
	l := New(newMemUserStore(user(7, 9)))

	earned, err := l.Available(context.Background(), 1, domain.CategoryEarned)
	require.NoError(t, err)
	assert.Equal(t, 7, earned)

	sick, err := l.Available(context.Background(), 1, domain.CategorySick)
	require.NoError(t, err)
	assert.Equal(t, 9, sick)
}

func TestCreditRestoresUnits(t *testing.T) {
	s := newMemUserStore(user(10, 12))
	l := New(s)

	require.NoError(t, l.Credit(context.Background(), 1, domain.CategoryEarned, 2))
	assert.Equal(t, 12, s.users[1].EarnedLeaves)
}
