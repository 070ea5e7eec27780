package applicationmock

import (
	"context"
	"errors"

	domain "loanlink-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("applicationmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn  func(ctx context.Context, applicationID string) (*domain.Application, error)
	ListFn                func(ctx context.Context, f domain.Filter) ([]domain.Application, error)
	CountFn               func(ctx context.Context, f domain.Filter) (int64, error)
	CompareAndSetStatusFn func(ctx context.Context, applicationID string, from domain.Status, s domain.Stamp) (bool, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Application, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, errUnimplemented
}

func (m *Repo) Count(ctx context.Context, f domain.Filter) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, f)
	}
	return 0, errUnimplemented
}

func (m *Repo) CompareAndSetStatus(ctx context.Context, applicationID string, from domain.Status, s domain.Stamp) (bool, error) {
	if m.CompareAndSetStatusFn != nil {
		return m.CompareAndSetStatusFn(ctx, applicationID, from, s)
	}
	return false, errUnimplemented
}
