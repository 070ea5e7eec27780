package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
	// email must already be normalized
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListByEmails(ctx context.Context, emails []string) ([]User, error)
	List(ctx context.Context) ([]User, error)
	// Updates applies column changes to the user; NotFound if no row matched.
	Updates(ctx context.Context, userID string, changes map[string]any) error
}
