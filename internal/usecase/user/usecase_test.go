package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"loanlink-backend/internal/adapter/repository/mysql"
	"loanlink-backend/internal/domain/apperror"
	domain "loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/testutil/sqlitedb"
	"loanlink-backend/internal/testutil/usermock"
	"loanlink-backend/pkg/id"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = domain.Actor{Email: "root@loanlink.io", Role: domain.RoleAdmin}

func newSQLiteUsecase(t *testing.T) (*Usecase, *time.Time) {
	t.Helper()
	uc := NewUsecase(mysql.NewUserRepository(sqlitedb.Open(t)))
	clock := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return clock }
	return uc, &clock
}

func TestPutUser_Idempotent(t *testing.T) {
	uc, clock := newSQLiteUsecase(t)
	ctx := context.Background()

	first, err := uc.PutUser(ctx, PutUserInput{Email: "Ann@Example.com", Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", first.Email)
	assert.Equal(t, "user", first.Role)
	assert.True(t, id.Valid(first.UserID))

	*clock = clock.Add(time.Hour)
	second, err := uc.PutUser(ctx, PutUserInput{Email: "ann@example.com", Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, first.UserID, second.UserID)

	all, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].CreatedAt.Equal(first.CreatedAt), "created_at must not move")
	assert.True(t, all[0].UpdatedAt.After(first.UpdatedAt), "updated_at must advance")
}

func TestPutUser_CaseInsensitiveIdentity(t *testing.T) {
	uc, _ := newSQLiteUsecase(t)
	ctx := context.Background()

	a, err := uc.PutUser(ctx, PutUserInput{Email: "A@x.io"})
	require.NoError(t, err)
	b, err := uc.PutUser(ctx, PutUserInput{Email: "a@X.IO"})
	require.NoError(t, err)
	assert.Equal(t, a.UserID, b.UserID)

	got, err := uc.GetUserByEmail(ctx, " A@X.io ")
	require.NoError(t, err)
	assert.Equal(t, a.UserID, got.UserID)
}

func TestPutUser_MergesOnlyNonEmptyAndKeepsRole(t *testing.T) {
	uc, _ := newSQLiteUsecase(t)
	ctx := context.Background()

	u, err := uc.PutUser(ctx, PutUserInput{Email: "ann@x.io", Name: "Ann", PhotoURL: "https://img/a.png"})
	require.NoError(t, err)
	_, err = uc.SetUserRole(ctx, admin, u.UserID, domain.RoleManager)
	require.NoError(t, err)

	got, err := uc.PutUser(ctx, PutUserInput{Email: "ann@x.io", Name: ""})
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, "https://img/a.png", got.PhotoURL)
	assert.Equal(t, "manager", got.Role)
}

func TestPutUser_InvalidEmail(t *testing.T) {
	uc, _ := newSQLiteUsecase(t)
	for _, e := range []string{"", "   ", "not-an-email", "Ann <ann@x.io>"} {
		_, err := uc.PutUser(context.Background(), PutUserInput{Email: e})
		assert.True(t, apperror.Is(err, apperror.KindInvalidArgument), "email %q: %v", e, err)
	}
}

func TestPutUser_InsertRaceMergesIntoWinner(t *testing.T) {
	winner := &domain.User{UserID: id.NewID32(), Email: "ann@x.io", Role: domain.RoleUser}
	lookups := 0
	var merged map[string]any

	repo := &usermock.Repo{
		GetByEmailFn: func(context.Context, string) (*domain.User, error) {
			lookups++
			if lookups == 1 {
				return nil, apperror.NotFound("user")
			}
			return winner, nil
		},
		CreateFn: func(context.Context, *domain.User) error { return mysql.ErrDuplicateEmail },
		UpdatesFn: func(_ context.Context, userID string, changes map[string]any) error {
			assert.Equal(t, winner.UserID, userID)
			merged = changes
			return nil
		},
	}
	got, err := NewUsecase(repo).PutUser(context.Background(), PutUserInput{Email: "ann@x.io", Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, winner.UserID, got.UserID)
	assert.Equal(t, "Ann", merged["name"])
	assert.Equal(t, 2, lookups)
}

func TestPutUser_StorageFailure(t *testing.T) {
	boom := apperror.Unavailable(errors.New("conn reset"), "user storage unavailable")
	repo := &usermock.Repo{GetByEmailFn: func(context.Context, string) (*domain.User, error) { return nil, boom }}
	_, err := NewUsecase(repo).PutUser(context.Background(), PutUserInput{Email: "ann@x.io"})
	assert.True(t, apperror.Is(err, apperror.KindUnavailable))
}

func TestGetUser_MalformedIDSkipsStorage(t *testing.T) {
	repo := &usermock.Repo{GetByUserIDFn: func(context.Context, string) (*domain.User, error) {
		assert.Fail(t, "storage must not be queried for malformed ids")
		return nil, nil
	}}
	_, err := NewUsecase(repo).GetUser(context.Background(), "XYZ")
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}

func TestGetUser_NotFound(t *testing.T) {
	uc, _ := newSQLiteUsecase(t)
	_, err := uc.GetUser(context.Background(), id.NewID32())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestRoleByEmail(t *testing.T) {
	uc, _ := newSQLiteUsecase(t)
	ctx := context.Background()

	role, err := uc.RoleByEmail(ctx, "ghost@x.io")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)

	u, _ := uc.PutUser(ctx, PutUserInput{Email: "boss@x.io"})
	_, err = uc.SetUserRole(ctx, admin, u.UserID, domain.RoleAdmin)
	require.NoError(t, err)

	role, err = uc.RoleByEmail(ctx, "BOSS@x.io")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestSetUserRole_Gates(t *testing.T) {
	uc, _ := newSQLiteUsecase(t)
	ctx := context.Background()
	u, _ := uc.PutUser(ctx, PutUserInput{Email: "ann@x.io"})

	_, err := uc.SetUserRole(ctx, domain.Actor{Email: "m@x.io", Role: domain.RoleManager}, u.UserID, domain.RoleAdmin)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = uc.SetUserRole(ctx, admin, u.UserID, domain.Role("owner"))
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))

	_, err = uc.SetUserRole(ctx, admin, "short", domain.RoleAdmin)
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))

	_, err = uc.SetUserRole(ctx, admin, id.NewID32(), domain.RoleAdmin)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestSetUserSuspended_StampsAndClears(t *testing.T) {
	uc, _ := newSQLiteUsecase(t)
	ctx := context.Background()
	u, _ := uc.PutUser(ctx, PutUserInput{Email: "ann@x.io"})

	_, err := uc.SetUserSuspended(ctx, domain.Actor{Email: "ann@x.io", Role: domain.RoleUser}, u.UserID, true, "")
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	got, err := uc.SetUserSuspended(ctx, admin, u.UserID, true, "chargeback")
	require.NoError(t, err)
	assert.True(t, got.Suspended)
	require.NotNil(t, got.SuspendedAt)
	assert.Equal(t, "chargeback", got.SuspendReason)

	actor, err := uc.ResolveActor(ctx, "ann@x.io")
	require.NoError(t, err)
	assert.True(t, actor.Suspended)

	got, err = uc.SetUserSuspended(ctx, admin, u.UserID, false, "")
	require.NoError(t, err)
	assert.False(t, got.Suspended)
	assert.Nil(t, got.SuspendedAt)
	assert.Empty(t, got.SuspendReason)

	_, err = uc.SetUserSuspended(ctx, admin, id.NewID32(), true, "")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestResolveActor(t *testing.T) {
	uc, _ := newSQLiteUsecase(t)
	ctx := context.Background()

	a, err := uc.ResolveActor(ctx, "New@x.io")
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{Email: "new@x.io", Role: domain.RoleUser}, a)

	u, _ := uc.PutUser(ctx, PutUserInput{Email: "mgr@x.io"})
	_, _ = uc.SetUserRole(ctx, admin, u.UserID, domain.RoleManager)
	a, err = uc.ResolveActor(ctx, "mgr@x.io")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, a.Role)

	_, err = uc.ResolveActor(ctx, "")
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}
