package service

import (
	"context"

	"github.com/hyjain/hyjain-api/internal/model"
)

// AccountStore lists identity directory accounts.
type AccountStore interface {
	ListAccounts(ctx context.Context) ([]*model.Account, error)
}

// UserService serves the read-only users listing.
type UserService struct {
	store AccountStore
}

// NewUserService creates a new UserService.
func NewUserService(store AccountStore) *UserService {
	return &UserService{store: store}
}

// ListUsers projects every account to {id, email, name}.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, a.ToUser())
	}
	return users, nil
}
