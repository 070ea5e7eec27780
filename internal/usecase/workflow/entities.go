package workflow

import (
	"time"

	"loanlink-backend/internal/domain/application"
)

type Transition string

const (
	Approve Transition = "approve"
	Reject  Transition = "reject"
	Cancel  Transition = "cancel"
)

// Target is the status a successful transition writes.
func (t Transition) Target() application.Status {
	switch t {
	case Approve:
		return application.StatusApproved
	case Reject:
		return application.StatusRejected
	case Cancel:
		return application.StatusCancelled
	}
	return ""
}

type SubmitInput struct {
	LoanID        string  `json:"loan_id" validate:"required,hex32"`
	FirstName     string  `json:"first_name" validate:"max=128"`
	LastName      string  `json:"last_name" validate:"max=128"`
	ContactNumber string  `json:"contact_number" validate:"max=32"`
	Amount        float64 `json:"amount" validate:"gte=0,dec2"`
	Reason        string  `json:"reason"`
}

type ListInput struct {
	UserEmail string
	Status    string
}

type ApplicationDTO struct {
	ApplicationID string     `json:"application_id"`
	LoanID        string     `json:"loan_id"`
	UserEmail     string     `json:"user_email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	ContactNumber string     `json:"contact_number"`
	Amount        float64    `json:"amount"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	DecidedBy     string     `json:"decided_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	RejectedAt    *time.Time `json:"rejected_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

func ToDTO(a *application.Application) ApplicationDTO {
	return ApplicationDTO{
		ApplicationID: a.ApplicationID,
		LoanID:        a.LoanID,
		UserEmail:     a.UserEmail,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		ContactNumber: a.ContactNumber,
		Amount:        a.Amount,
		Reason:        a.Reason,
		Status:        string(a.Status),
		DecidedBy:     a.DecidedBy,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		ApprovedAt:    a.ApprovedAt,
		RejectedAt:    a.RejectedAt,
		CancelledAt:   a.CancelledAt,
	}
}
