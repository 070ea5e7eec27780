package application

import "time"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Terminal states accept no further transition.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// Table: applications
type Application struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	ApplicationID string `gorm:"column:application_id;size:32;not null;uniqueIndex:ux_applications_application_id"`
	// soft reference to loans.loan_id
	LoanID        string     `gorm:"column:loan_id;size:32;not null;index:idx_applications_loan_status"`
	UserEmail     string     `gorm:"column:user_email;size:254;not null;index:idx_applications_user_email"`
	FirstName     string     `gorm:"column:first_name;size:128"`
	LastName      string     `gorm:"column:last_name;size:128"`
	ContactNumber string     `gorm:"column:contact_number;size:32"`
	Amount        float64    `gorm:"column:amount;type:decimal(18,2)"`
	Reason        string     `gorm:"column:reason;type:text"`
	Status        Status     `gorm:"column:status;size:16;not null;default:'Pending';index:idx_applications_loan_status"`
	DecidedBy     string     `gorm:"column:decided_by;size:254"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
	ApprovedAt    *time.Time `gorm:"column:approved_at"`
	RejectedAt    *time.Time `gorm:"column:rejected_at"`
	CancelledAt   *time.Time `gorm:"column:cancelled_at"`
}

func (Application) TableName() string { return "applications" }

type Filter struct {
	UserEmail string
	Status    Status
	LoanID    string
}

// Stamp describes the write a successful transition performs.
type Stamp struct {
	To        Status
	At        time.Time
	DecidedBy string
}
