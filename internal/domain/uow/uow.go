package uow

import (
	"context"

	"loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/loan"
	"loanlink-backend/internal/domain/user"
)

type Repos struct {
	Users        user.Repository
	Loans        loan.Repository
	Applications application.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
