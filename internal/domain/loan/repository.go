package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// LockByLoanID reads the row FOR UPDATE; only meaningful inside a transaction.
	LockByLoanID(ctx context.Context, loanID string) (*Loan, error)
	List(ctx context.Context, f Filter) ([]Loan, error)
	// Updates applies column changes; NotFound if no row matched.
	Updates(ctx context.Context, loanID string, changes map[string]any) error
	Delete(ctx context.Context, loanID string) error
}
