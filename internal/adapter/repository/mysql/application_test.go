package mysql

import (
	"context"
	"testing"
	"time"

	"loanlink-backend/internal/domain/apperror"
	domain "loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/testutil/sqlitedb"
	"loanlink-backend/pkg/id"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeApplication(loanID, email string) *domain.Application {
	now := time.Now().UTC()
	return &domain.Application{
		ApplicationID: id.NewID32(),
		LoanID:        loanID,
		UserEmail:     email,
		FirstName:     "Ann",
		LastName:      "Lee",
		Amount:        1200,
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestApplication_CreateGetListCount(t *testing.T) {
	repo := NewApplicationRepository(sqlitedb.Open(t))
	ctx := context.Background()
	loanID := id.NewID32()

	a := makeApplication(loanID, "ann@example.com")
	b := makeApplication(loanID, "bob@example.com")
	for _, x := range []*domain.Application{a, b} {
		require.NoError(t, repo.Create(ctx, x))
	}

	got, err := repo.GetByApplicationID(ctx, a.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", got.UserEmail)
	assert.Equal(t, domain.StatusPending, got.Status)

	list, err := repo.List(ctx, domain.Filter{UserEmail: "bob@example.com"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ApplicationID, list[0].ApplicationID)

	n, err := repo.Count(ctx, domain.Filter{LoanID: loanID, Status: domain.StatusPending})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = repo.GetByApplicationID(ctx, id.NewID32())
	assert.True(t, apperror.Is(err, apperror.KindNotFound), "%v", err)
}

func TestApplication_CompareAndSetStatus(t *testing.T) {
	repo := NewApplicationRepository(sqlitedb.Open(t))
	ctx := context.Background()

	a := makeApplication(id.NewID32(), "ann@example.com")
	require.NoError(t, repo.Create(ctx, a))

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ok, err := repo.CompareAndSetStatus(ctx, a.ApplicationID, domain.StatusPending,
		domain.Stamp{To: domain.StatusApproved, At: at, DecidedBy: "mgr@example.com"})
	require.NoError(t, err)
	require.True(t, ok)

	// status is no longer Pending, so the second write must not apply
	ok, err = repo.CompareAndSetStatus(ctx, a.ApplicationID, domain.StatusPending,
		domain.Stamp{To: domain.StatusRejected, At: at.Add(time.Minute), DecidedBy: "other@example.com"})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByApplicationID(ctx, a.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.Equal(t, "mgr@example.com", got.DecidedBy)
	require.NotNil(t, got.ApprovedAt)
	assert.True(t, got.ApprovedAt.Equal(at), "approved_at = %v", got.ApprovedAt)
	assert.Nil(t, got.RejectedAt)
	assert.Nil(t, got.CancelledAt)
}
