package mysql

import (
	"context"
	"errors"
	"testing"

	"loanlink-backend/internal/domain/uow"
	"loanlink-backend/internal/testutil/sqlitedb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUoW_CommitsOnSuccess(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()

	l := makeLoan("Tx", "ann@example.com", true)
	a := makeApplication(l.LoanID, "bob@example.com")

	err := NewGormUoW(db).WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		return r.Applications.Create(ctx, a)
	})
	require.NoError(t, err)

	repos := Repos(db)
	_, err = repos.Loans.GetByLoanID(ctx, l.LoanID)
	assert.NoError(t, err, "loan not committed")
	_, err = repos.Applications.GetByApplicationID(ctx, a.ApplicationID)
	assert.NoError(t, err, "application not committed")
}

func TestGormUoW_RollsBackOnError(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	sentinel := errors.New("boom")

	l := makeLoan("Rollback", "ann@example.com", true)
	err := NewGormUoW(db).WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = Repos(db).Loans.GetByLoanID(ctx, l.LoanID)
	assert.Error(t, err, "loan should have been rolled back")
}

func TestGormUoW_LockInsideTransaction(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	l := makeLoan("Locked", "ann@example.com", true)
	require.NoError(t, Repos(db).Loans.Create(ctx, l))

	err := NewGormUoW(db).WithinTx(ctx, func(r uow.Repos) error {
		got, err := r.Loans.LockByLoanID(ctx, l.LoanID)
		if err != nil {
			return err
		}
		assert.Equal(t, "Locked", got.Title)
		return nil
	})
	require.NoError(t, err)
}
