package loan

import (
	"context"
	"strings"
	"time"

	"loanlink-backend/internal/domain/apperror"
	"loanlink-backend/internal/domain/application"
	domain "loanlink-backend/internal/domain/loan"
	"loanlink-backend/internal/domain/uow"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/pkg/id"
)

type Usecase struct {
	loans domain.Repository
	users user.Repository
	uow   uow.UnitOfWork
	now   func() time.Time
}

// NewUsecase: the UoW is needed for DeleteLoan, which checks for pending
// applications and deletes in one transaction.
func NewUsecase(loans domain.Repository, users user.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, users: users, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) CreateLoan(ctx context.Context, actor user.Actor, in CreateLoanInput) (*LoanDTO, error) {
	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	if title == "" || category == "" {
		return nil, apperror.InvalidArgument("title and category are required")
	}

	creatorEmail := user.NormalizeEmail(actor.Email)
	creatorName := ""
	if creator, err := u.users.GetByEmail(ctx, creatorEmail); err == nil {
		creatorName = creator.Name
	} else if !apperror.Is(err, apperror.KindNotFound) {
		return nil, err
	}

	now := u.now()
	l := &domain.Loan{
		LoanID:         id.NewID32(),
		Title:          title,
		Category:       category,
		Description:    in.Description,
		InterestRate:   in.InterestRate,
		MaxLimit:       in.MaxLimit,
		ImageURL:       in.ImageURL,
		ShowOnHome:     in.ShowOnHome,
		CreatedByName:  creatorName,
		CreatedByEmail: creatorEmail,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	dto := ToDTO(l)
	return &dto, nil
}

func (u *Usecase) GetLoan(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.get(ctx, loanID)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(l)
	return &dto, nil
}

func (u *Usecase) ListLoans(ctx context.Context, in ListLoansInput) ([]LoanDTO, error) {
	ls, err := u.loans.List(ctx, domain.Filter{
		OnlyVisible:  in.OnlyVisible,
		CreatorEmail: user.NormalizeEmail(in.CreatorEmail),
	})
	if err != nil {
		return nil, err
	}
	return ToDTOs(ls), nil
}

func (u *Usecase) UpdateLoan(ctx context.Context, actor user.Actor, loanID string, in UpdateLoanInput) (*LoanDTO, error) {
	changes := map[string]any{}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, apperror.InvalidArgument("title must not be empty")
		}
		changes["title"] = t
	}
	if in.Category != nil {
		c := strings.TrimSpace(*in.Category)
		if c == "" {
			return nil, apperror.InvalidArgument("category must not be empty")
		}
		changes["category"] = c
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.InterestRate != nil {
		changes["interest_rate"] = *in.InterestRate
	}
	if in.MaxLimit != nil {
		changes["max_limit"] = *in.MaxLimit
	}
	if in.ImageURL != nil {
		changes["image_url"] = *in.ImageURL
	}
	if in.ShowOnHome != nil {
		changes["show_on_home"] = *in.ShowOnHome
	}
	return u.mutate(ctx, actor, loanID, changes)
}

func (u *Usecase) SetLoanVisibility(ctx context.Context, actor user.Actor, loanID string, visible bool) (*LoanDTO, error) {
	return u.mutate(ctx, actor, loanID, map[string]any{"show_on_home": visible})
}

// DeleteLoan refuses while any Pending application still points at the loan.
func (u *Usecase) DeleteLoan(ctx context.Context, actor user.Actor, loanID string) error {
	if !id.Valid(loanID) {
		return apperror.InvalidArgument("malformed loan id %q", loanID)
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// row lock: a concurrent Submit waits here until we commit
		l, err := r.Loans.LockByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		if !canManage(actor, l) {
			return apperror.Forbidden("only the creator or an admin can delete this loan")
		}
		pending, err := r.Applications.Count(ctx, application.Filter{LoanID: loanID, Status: application.StatusPending})
		if err != nil {
			return err
		}
		if pending > 0 {
			return apperror.InvalidState("loan has pending applications")
		}
		return r.Loans.Delete(ctx, loanID)
	})
}

func (u *Usecase) mutate(ctx context.Context, actor user.Actor, loanID string, changes map[string]any) (*LoanDTO, error) {
	l, err := u.get(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, l) {
		return nil, apperror.Forbidden("only the creator or an admin can change this loan")
	}
	changes["updated_at"] = u.now()
	if err := u.loans.Updates(ctx, loanID, changes); err != nil {
		return nil, err
	}
	return u.GetLoan(ctx, loanID)
}

func (u *Usecase) get(ctx context.Context, loanID string) (*domain.Loan, error) {
	if !id.Valid(loanID) {
		return nil, apperror.InvalidArgument("malformed loan id %q", loanID)
	}
	return u.loans.GetByLoanID(ctx, loanID)
}

func canManage(actor user.Actor, l *domain.Loan) bool {
	return actor.IsAdmin() || user.NormalizeEmail(actor.Email) == l.CreatedByEmail
}
