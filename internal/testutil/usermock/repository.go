package usermock

import (
	"context"
	"errors"

	domain "loanlink-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("usermock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, u *domain.User) error
	GetByUserIDFn  func(ctx context.Context, userID string) (*domain.User, error)
	GetByEmailFn   func(ctx context.Context, email string) (*domain.User, error)
	ListByEmailsFn func(ctx context.Context, emails []string) ([]domain.User, error)
	ListFn         func(ctx context.Context) ([]domain.User, error)
	UpdatesFn      func(ctx context.Context, userID string, changes map[string]any) error
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByEmails(ctx context.Context, emails []string) ([]domain.User, error) {
	if m.ListByEmailsFn != nil {
		return m.ListByEmailsFn(ctx, emails)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) Updates(ctx context.Context, userID string, changes map[string]any) error {
	if m.UpdatesFn != nil {
		return m.UpdatesFn(ctx, userID, changes)
	}
	return nil
}
