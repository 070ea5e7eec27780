package mysql

import (
	"context"

	"loanlink-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repos(tx))
	})
}

// Repos binds every repository to db (a tx or the root handle).
func Repos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:        &UserRepository{db: db},
		Loans:        &LoanRepository{db: db},
		Applications: &ApplicationRepository{db: db},
	}
}
