package workflow

import (
	"loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/user"
)

// Authorized decides on role and ownership alone; state is not consulted.
func Authorized(actor user.Actor, app *application.Application, t Transition) bool {
	if app == nil {
		return false
	}
	switch t {
	case Approve, Reject:
		return actor.IsStaff()
	case Cancel:
		return actor.IsAdmin() || user.NormalizeEmail(actor.Email) == app.UserEmail
	}
	return false
}

func CanTransition(actor user.Actor, app *application.Application, t Transition) bool {
	return Authorized(actor, app, t) && app.Status == application.StatusPending
}

// canView: the submitter and staff can read an application.
func canView(actor user.Actor, app *application.Application) bool {
	return actor.IsStaff() || user.NormalizeEmail(actor.Email) == app.UserEmail
}
