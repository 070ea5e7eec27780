package loanmock

import (
	"context"
	"errors"

	domain "loanlink-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return errUnimplemented; unset writes succeed.
type Repo struct {
	CreateFn      func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	// LockByLoanIDFn falls back to GetByLoanIDFn when unset.
	LockByLoanIDFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListFn         func(ctx context.Context, f domain.Filter) ([]domain.Loan, error)
	UpdatesFn      func(ctx context.Context, loanID string, changes map[string]any) error
	DeleteFn       func(ctx context.Context, loanID string) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) LockByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.LockByLoanIDFn != nil {
		return m.LockByLoanIDFn(ctx, loanID)
	}
	return m.GetByLoanID(ctx, loanID)
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, errUnimplemented
}

func (m *Repo) Updates(ctx context.Context, loanID string, changes map[string]any) error {
	if m.UpdatesFn != nil {
		return m.UpdatesFn(ctx, loanID, changes)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, loanID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, loanID)
	}
	return nil
}
