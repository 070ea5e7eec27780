package user

import (
	"context"
	"net/mail"
	"time"

	"loanlink-backend/internal/domain/apperror"
	domain "loanlink-backend/internal/domain/user"
	"loanlink-backend/pkg/id"
)

type Usecase struct {
	repo domain.Repository
	now  func() time.Time
}

func NewUsecase(r domain.Repository) *Usecase {
	return &Usecase{repo: r, now: func() time.Time { return time.Now().UTC() }}
}

// PutUser upserts by normalized email. Existing users only get non-empty
// name/photo_url merged; role and suspension are never touched here.
func (u *Usecase) PutUser(ctx context.Context, in PutUserInput) (*UserDTO, error) {
	email, err := validEmail(in.Email)
	if err != nil {
		return nil, err
	}
	now := u.now()

	existing, err := u.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return u.merge(ctx, existing, in, now)
	case !apperror.Is(err, apperror.KindNotFound):
		return nil, err
	}

	nu := &domain.User{
		UserID:    id.NewID32(),
		Email:     email,
		Name:      in.Name,
		PhotoURL:  in.PhotoURL,
		Role:      domain.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = u.repo.Create(ctx, nu)
	if err == nil {
		return toDTO(nu), nil
	}
	if !apperror.Is(err, apperror.KindConflict) {
		return nil, err
	}

	// lost the insert race on the unique email index; merge into the winner
	existing, err = u.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return u.merge(ctx, existing, in, now)
}

func (u *Usecase) merge(ctx context.Context, existing *domain.User, in PutUserInput, now time.Time) (*UserDTO, error) {
	changes := map[string]any{"updated_at": now}
	if in.Name != "" {
		changes["name"] = in.Name
		existing.Name = in.Name
	}
	if in.PhotoURL != "" {
		changes["photo_url"] = in.PhotoURL
		existing.PhotoURL = in.PhotoURL
	}
	if err := u.repo.Updates(ctx, existing.UserID, changes); err != nil {
		return nil, err
	}
	existing.UpdatedAt = now
	return toDTO(existing), nil
}

func (u *Usecase) GetUser(ctx context.Context, userID string) (*UserDTO, error) {
	if !id.Valid(userID) {
		return nil, apperror.InvalidArgument("malformed user id %q", userID)
	}
	got, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTO(got), nil
}

func (u *Usecase) GetUserByEmail(ctx context.Context, email string) (*UserDTO, error) {
	e, err := validEmail(email)
	if err != nil {
		return nil, err
	}
	got, err := u.repo.GetByEmail(ctx, e)
	if err != nil {
		return nil, err
	}
	return toDTO(got), nil
}

func (u *Usecase) ListUsers(ctx context.Context) ([]UserDTO, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(all))
	for i := range all {
		out = append(out, *toDTO(&all[i]))
	}
	return out, nil
}

// RoleByEmail answers "user" for unknown emails.
func (u *Usecase) RoleByEmail(ctx context.Context, email string) (domain.Role, error) {
	e, err := validEmail(email)
	if err != nil {
		return "", err
	}
	got, err := u.repo.GetByEmail(ctx, e)
	if apperror.Is(err, apperror.KindNotFound) {
		return domain.RoleUser, nil
	}
	if err != nil {
		return "", err
	}
	return got.Role, nil
}

func (u *Usecase) SetUserRole(ctx context.Context, actor domain.Actor, userID string, role domain.Role) (*UserDTO, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Forbidden("only admins can change roles")
	}
	if !id.Valid(userID) {
		return nil, apperror.InvalidArgument("malformed user id %q", userID)
	}
	if !role.Valid() {
		return nil, apperror.InvalidArgument("unknown role %q", role)
	}
	if err := u.repo.Updates(ctx, userID, map[string]any{"role": role, "updated_at": u.now()}); err != nil {
		return nil, err
	}
	return u.GetUser(ctx, userID)
}

func (u *Usecase) SetUserSuspended(ctx context.Context, actor domain.Actor, userID string, suspended bool, reason string) (*UserDTO, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Forbidden("only admins can suspend users")
	}
	if !id.Valid(userID) {
		return nil, apperror.InvalidArgument("malformed user id %q", userID)
	}
	now := u.now()
	changes := map[string]any{"suspended": suspended, "updated_at": now}
	if suspended {
		changes["suspended_at"] = now
		changes["suspend_reason"] = reason
	} else {
		changes["suspended_at"] = nil
		changes["suspend_reason"] = ""
	}
	if err := u.repo.Updates(ctx, userID, changes); err != nil {
		return nil, err
	}
	return u.GetUser(ctx, userID)
}

// ResolveActor builds the request identity from the stored user record.
func (u *Usecase) ResolveActor(ctx context.Context, email string) (domain.Actor, error) {
	e, err := validEmail(email)
	if err != nil {
		return domain.Actor{}, err
	}
	got, err := u.repo.GetByEmail(ctx, e)
	if apperror.Is(err, apperror.KindNotFound) {
		return domain.Actor{Email: e, Role: domain.RoleUser}, nil
	}
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.Actor{Email: e, Role: got.Role, Suspended: got.Suspended}, nil
}

func validEmail(raw string) (string, error) {
	e := domain.NormalizeEmail(raw)
	if e == "" {
		return "", apperror.InvalidArgument("email is required")
	}
	if addr, err := mail.ParseAddress(e); err != nil || addr.Address != e {
		return "", apperror.InvalidArgument("malformed email %q", raw)
	}
	return e, nil
}
