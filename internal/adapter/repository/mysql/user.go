package mysql

import (
	"context"

	"loanlink-backend/internal/domain/apperror"
	userDomain "loanlink-backend/internal/domain/user"

	"gorm.io/gorm"
)

// ErrDuplicateEmail is returned by Create when the unique email index rejects the row.
var ErrDuplicateEmail = apperror.Conflict("user email already exists")

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return translate(err, "user")
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&out).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &out, nil
}

func (r *UserRepository) ListByEmails(ctx context.Context, emails []string) ([]userDomain.User, error) {
	out := []userDomain.User{}
	if len(emails) == 0 {
		return out, nil
	}
	if err := r.db.WithContext(ctx).Where("email IN ?", emails).Order("id ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "user")
	}
	return out, nil
}

func (r *UserRepository) List(ctx context.Context) ([]userDomain.User, error) {
	out := []userDomain.User{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "user")
	}
	return out, nil
}

func (r *UserRepository) Updates(ctx context.Context, userID string, changes map[string]any) error {
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).Where("user_id = ?", userID).Updates(changes)
	if res.Error != nil {
		return translate(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("user")
	}
	return nil
}
