package loanmock

import (
	"context"
	"errors"
	"testing"

	domain "loanlink-backend/internal/domain/loan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepo_Defaults(t *testing.T) {
	m := &Repo{}
	ctx := context.Background()

	assert.NoError(t, m.Create(ctx, &domain.Loan{}))
	_, err := m.GetByLoanID(ctx, "x")
	assert.ErrorIs(t, err, errUnimplemented)
	_, err = m.LockByLoanID(ctx, "x")
	assert.ErrorIs(t, err, errUnimplemented)
	_, err = m.List(ctx, domain.Filter{})
	assert.ErrorIs(t, err, errUnimplemented)
}

func TestRepo_ForwardsToFns(t *testing.T) {
	var gotFilter domain.Filter
	m := &Repo{
		ListFn: func(_ context.Context, f domain.Filter) ([]domain.Loan, error) {
			gotFilter = f
			return []domain.Loan{{LoanID: "a"}}, nil
		},
		GetByLoanIDFn: func(_ context.Context, id string) (*domain.Loan, error) { return &domain.Loan{LoanID: id}, nil },
		DeleteFn:      func(context.Context, string) error { return errors.New("nope") },
	}
	out, err := m.List(context.Background(), domain.Filter{OnlyVisible: true})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.True(t, gotFilter.OnlyVisible)
	assert.Error(t, m.Delete(context.Background(), "a"))

	// an unset lock reads through GetByLoanIDFn
	l, err := m.LockByLoanID(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "b", l.LoanID)
}
