package loan

import (
	"time"

	domain "loanlink-backend/internal/domain/loan"
)

type CreateLoanInput struct {
	Title        string  `json:"title" validate:"max=255"`
	Category     string  `json:"category" validate:"max=128"`
	Description  string  `json:"description"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0"`
	MaxLimit     float64 `json:"max_limit" validate:"gte=0,dec2"`
	ImageURL     string  `json:"image_url" validate:"omitempty,url"`
	ShowOnHome   bool    `json:"show_on_home"`
}

// UpdateLoanInput is a partial update; nil fields are left alone.
type UpdateLoanInput struct {
	Title        *string  `json:"title" validate:"omitempty,max=255"`
	Category     *string  `json:"category" validate:"omitempty,max=128"`
	Description  *string  `json:"description"`
	InterestRate *float64 `json:"interest_rate" validate:"omitempty,gte=0"`
	MaxLimit     *float64 `json:"max_limit" validate:"omitempty,gte=0,dec2"`
	ImageURL     *string  `json:"image_url" validate:"omitempty,url"`
	ShowOnHome   *bool    `json:"show_on_home"`
}

type ListLoansInput struct {
	OnlyVisible  bool
	CreatorEmail string
}

type LoanDTO struct {
	LoanID         string    `json:"loan_id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	InterestRate   float64   `json:"interest_rate"`
	MaxLimit       float64   `json:"max_limit"`
	ImageURL       string    `json:"image_url"`
	ShowOnHome     bool      `json:"show_on_home"`
	CreatedByName  string    `json:"created_by_name"`
	CreatedByEmail string    `json:"created_by_email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToDTO(l *domain.Loan) LoanDTO {
	return LoanDTO{
		LoanID:         l.LoanID,
		Title:          l.Title,
		Category:       l.Category,
		Description:    l.Description,
		InterestRate:   l.InterestRate,
		MaxLimit:       l.MaxLimit,
		ImageURL:       l.ImageURL,
		ShowOnHome:     l.ShowOnHome,
		CreatedByName:  l.CreatedByName,
		CreatedByEmail: l.CreatedByEmail,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func ToDTOs(ls []domain.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, ToDTO(&ls[i]))
	}
	return out
}
