package loan

import (
	"time"

	"gorm.io/gorm"
)

// Table: loans. A loan here is a listing users can apply to, not a debt record.
type Loan struct {
	ID             uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID         string         `gorm:"size:32;not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Category       string         `gorm:"size:128;not null;index:idx_loans_category" json:"category"`
	Description    string         `gorm:"type:text" json:"description"`
	InterestRate   float64        `gorm:"type:decimal(6,4)" json:"interest_rate"`
	MaxLimit       float64        `gorm:"type:decimal(18,2)" json:"max_limit"`
	ImageURL       string         `gorm:"type:text" json:"image_url"`
	ShowOnHome     bool           `gorm:"not null;default:false;index:idx_loans_show_on_home" json:"show_on_home"`
	CreatedByName  string         `gorm:"size:255" json:"created_by_name"`
	CreatedByEmail string         `gorm:"size:254;index:idx_loans_created_by_email" json:"created_by_email"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Filter narrows ListLoans; zero value lists everything.
type Filter struct {
	OnlyVisible  bool
	CreatorEmail string
}
