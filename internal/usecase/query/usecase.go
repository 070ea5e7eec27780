// Package query holds read-only projections that combine several stores.
package query

import (
	"context"
	"strings"

	"loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/loan"
	"loanlink-backend/internal/domain/user"
	loanUC "loanlink-backend/internal/usecase/loan"
	"loanlink-backend/internal/usecase/workflow"
)

type ApplicationWithSubmitter struct {
	workflow.ApplicationDTO
	SubmitterName string `json:"submitter_name"`
}

type Usecase struct {
	apps  application.Repository
	users user.Repository
	loans loan.Repository
}

func NewUsecase(apps application.Repository, users user.Repository, loans loan.Repository) *Usecase {
	return &Usecase{apps: apps, users: users, loans: loans}
}

// ApplicationsWithSubmitterName left-joins every application to its
// submitter. The user's name wins; otherwise the applicant's own first and
// last name are used.
func (u *Usecase) ApplicationsWithSubmitterName(ctx context.Context) ([]ApplicationWithSubmitter, error) {
	apps, err := u.apps.List(ctx, application.Filter{})
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(apps))
	seen := make(map[string]struct{}, len(apps))
	for _, a := range apps {
		if _, ok := seen[a.UserEmail]; ok {
			continue
		}
		seen[a.UserEmail] = struct{}{}
		emails = append(emails, a.UserEmail)
	}
	users, err := u.users.ListByEmails(ctx, emails)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, usr := range users {
		names[usr.Email] = usr.Name
	}

	out := make([]ApplicationWithSubmitter, 0, len(apps))
	for i := range apps {
		a := &apps[i]
		name := strings.TrimSpace(names[a.UserEmail])
		if name == "" {
			name = strings.TrimSpace(a.FirstName + " " + a.LastName)
		}
		out = append(out, ApplicationWithSubmitter{ApplicationDTO: workflow.ToDTO(a), SubmitterName: name})
	}
	return out, nil
}

func (u *Usecase) VisibleLoans(ctx context.Context) ([]loanUC.LoanDTO, error) {
	ls, err := u.loans.List(ctx, loan.Filter{OnlyVisible: true})
	if err != nil {
		return nil, err
	}
	return loanUC.ToDTOs(ls), nil
}

func (u *Usecase) LoansByCreator(ctx context.Context, email string) ([]loanUC.LoanDTO, error) {
	ls, err := u.loans.List(ctx, loan.Filter{CreatorEmail: user.NormalizeEmail(email)})
	if err != nil {
		return nil, err
	}
	return loanUC.ToDTOs(ls), nil
}
