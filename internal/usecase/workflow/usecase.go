package workflow

import (
	"context"
	"time"

	"loanlink-backend/internal/domain/apperror"
	"loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/uow"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/pkg/id"
)

// Transition outcomes reported to the Observer.
const (
	OutcomeApplied   = "applied"
	OutcomeForbidden = "forbidden"
	OutcomeRefused   = "invalid_state"
	OutcomeConflict  = "conflict"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

// Observer receives one call per transition attempt.
type Observer interface {
	ObserveTransition(transition, outcome string)
}

type nopObserver struct{}

func (nopObserver) ObserveTransition(string, string) {}

type Usecase struct {
	apps     application.Repository
	uow      uow.UnitOfWork
	observer Observer
	now      func() time.Time
}

func NewUsecase(apps application.Repository, tx uow.UnitOfWork, obs Observer) *Usecase {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Usecase{apps: apps, uow: tx, observer: obs, now: func() time.Time { return time.Now().UTC() }}
}

// Submit creates a Pending application for an existing loan. An actor can
// hold only one Pending application per loan.
func (u *Usecase) Submit(ctx context.Context, actor user.Actor, in SubmitInput) (*ApplicationDTO, error) {
	if !id.Valid(in.LoanID) {
		return nil, apperror.InvalidArgument("malformed loan id %q", in.LoanID)
	}
	email := user.NormalizeEmail(actor.Email)
	if email == "" {
		return nil, apperror.InvalidArgument("submitter email is required")
	}

	var created *application.Application
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// lock the loan so concurrent submits and deletes take turns on the pending check
		if _, err := r.Loans.LockByLoanID(ctx, in.LoanID); err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				return apperror.InvalidArgument("loan %s does not exist", in.LoanID)
			}
			return err
		}
		n, err := r.Applications.Count(ctx, application.Filter{
			UserEmail: email,
			LoanID:    in.LoanID,
			Status:    application.StatusPending,
		})
		if err != nil {
			return err
		}
		if n > 0 {
			return apperror.Conflict("a pending application for this loan already exists").
				WithCurrentStatus(string(application.StatusPending))
		}

		now := u.now()
		created = &application.Application{
			ApplicationID: id.NewID32(),
			LoanID:        in.LoanID,
			UserEmail:     email,
			FirstName:     in.FirstName,
			LastName:      in.LastName,
			ContactNumber: in.ContactNumber,
			Amount:        in.Amount,
			Reason:        in.Reason,
			Status:        application.StatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return r.Applications.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}
	dto := ToDTO(created)
	return &dto, nil
}

func (u *Usecase) Approve(ctx context.Context, actor user.Actor, applicationID string) (*ApplicationDTO, error) {
	return u.transition(ctx, actor, applicationID, Approve)
}

func (u *Usecase) Reject(ctx context.Context, actor user.Actor, applicationID string) (*ApplicationDTO, error) {
	return u.transition(ctx, actor, applicationID, Reject)
}

func (u *Usecase) Cancel(ctx context.Context, actor user.Actor, applicationID string) (*ApplicationDTO, error) {
	return u.transition(ctx, actor, applicationID, Cancel)
}

// transition reads, checks role then state, and writes with compare-and-set
// so that of two racing deciders exactly one wins.
func (u *Usecase) transition(ctx context.Context, actor user.Actor, applicationID string, t Transition) (*ApplicationDTO, error) {
	dto, err := u.doTransition(ctx, actor, applicationID, t)
	u.observer.ObserveTransition(string(t), outcome(err))
	return dto, err
}

func (u *Usecase) doTransition(ctx context.Context, actor user.Actor, applicationID string, t Transition) (*ApplicationDTO, error) {
	if !id.Valid(applicationID) {
		return nil, apperror.InvalidArgument("malformed application id %q", applicationID)
	}
	app, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !Authorized(actor, app, t) {
		return nil, apperror.Forbidden("actor may not " + string(t) + " this application")
	}
	if app.Status != application.StatusPending {
		return nil, apperror.InvalidState("application is already " + string(app.Status)).
			WithCurrentStatus(string(app.Status))
	}

	stamp := application.Stamp{To: t.Target(), At: u.now(), DecidedBy: user.NormalizeEmail(actor.Email)}
	ok, err := u.apps.CompareAndSetStatus(ctx, applicationID, application.StatusPending, stamp)
	if err != nil {
		return nil, err
	}
	if !ok {
		// someone else moved it between our read and write
		current := ""
		if again, rerr := u.apps.GetByApplicationID(ctx, applicationID); rerr == nil {
			current = string(again.Status)
		}
		return nil, apperror.Conflict("application changed concurrently").WithCurrentStatus(current)
	}

	applyStamp(app, stamp)
	dto := ToDTO(app)
	return &dto, nil
}

func applyStamp(app *application.Application, s application.Stamp) {
	at := s.At
	app.Status = s.To
	app.DecidedBy = s.DecidedBy
	app.UpdatedAt = at
	switch s.To {
	case application.StatusApproved:
		app.ApprovedAt = &at
	case application.StatusRejected:
		app.RejectedAt = &at
	case application.StatusCancelled:
		app.CancelledAt = &at
	}
}

func (u *Usecase) GetApplication(ctx context.Context, actor user.Actor, applicationID string) (*ApplicationDTO, error) {
	if !id.Valid(applicationID) {
		return nil, apperror.InvalidArgument("malformed application id %q", applicationID)
	}
	app, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !canView(actor, app) {
		return nil, apperror.Forbidden("actor may not read this application")
	}
	dto := ToDTO(app)
	return &dto, nil
}

// ListApplications pins plain users to their own applications.
func (u *Usecase) ListApplications(ctx context.Context, actor user.Actor, in ListInput) ([]ApplicationDTO, error) {
	f := application.Filter{UserEmail: user.NormalizeEmail(in.UserEmail)}
	if in.Status != "" {
		s := application.Status(in.Status)
		if !s.Valid() {
			return nil, apperror.InvalidArgument("unknown status %q", in.Status)
		}
		f.Status = s
	}
	if !actor.IsStaff() {
		f.UserEmail = user.NormalizeEmail(actor.Email)
	}
	apps, err := u.apps.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, ToDTO(&apps[i]))
	}
	return out, nil
}

func outcome(err error) string {
	if err == nil {
		return OutcomeApplied
	}
	switch apperror.KindOf(err) {
	case apperror.KindForbidden:
		return OutcomeForbidden
	case apperror.KindInvalidState:
		return OutcomeRefused
	case apperror.KindConflict:
		return OutcomeConflict
	case apperror.KindNotFound:
		return OutcomeNotFound
	}
	return OutcomeError
}
