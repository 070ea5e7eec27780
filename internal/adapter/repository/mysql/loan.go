package mysql

import (
	"context"

	"loanlink-backend/internal/domain/apperror"
	loanDomain "loanlink-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return translate(r.db.WithContext(ctx).Create(l).Error, "loan")
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out).Error; err != nil {
		return nil, translate(err, "loan")
	}
	return &out, nil
}

// LockByLoanID serializes submit and delete on the same loan. SQLite has no
// row locks and the dialector drops the clause.
func (r *LoanRepository) LockByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("loan_id = ?", loanID).
		First(&out).Error
	if err != nil {
		return nil, translate(err, "loan")
	}
	return &out, nil
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.Filter) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.OnlyVisible {
		q = q.Where("show_on_home = ?", true)
	}
	if f.CreatorEmail != "" {
		q = q.Where("created_by_email = ?", f.CreatorEmail)
	}
	out := []loanDomain.Loan{}
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "loan")
	}
	return out, nil
}

func (r *LoanRepository) Updates(ctx context.Context, loanID string, changes map[string]any) error {
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Where("loan_id = ?", loanID).Updates(changes)
	if res.Error != nil {
		return translate(res.Error, "loan")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("loan")
	}
	return nil
}

// Delete soft-deletes the listing; it disappears from every read path.
func (r *LoanRepository) Delete(ctx context.Context, loanID string) error {
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).Delete(&loanDomain.Loan{})
	if res.Error != nil {
		return translate(res.Error, "loan")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("loan")
	}
	return nil
}
