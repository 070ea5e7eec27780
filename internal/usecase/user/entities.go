package user

import (
	"time"

	domain "loanlink-backend/internal/domain/user"
)

type PutUserInput struct {
	Email    string `json:"-"`
	Name     string `json:"name" validate:"omitempty,max=255"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

type UserDTO struct {
	UserID        string     `json:"user_id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	PhotoURL      string     `json:"photo_url"`
	Role          string     `json:"role"`
	Suspended     bool       `json:"suspended"`
	SuspendedAt   *time.Time `json:"suspended_at,omitempty"`
	SuspendReason string     `json:"suspend_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toDTO(u *domain.User) *UserDTO {
	return &UserDTO{
		UserID:        u.UserID,
		Email:         u.Email,
		Name:          u.Name,
		PhotoURL:      u.PhotoURL,
		Role:          string(u.Role),
		Suspended:     u.Suspended,
		SuspendedAt:   u.SuspendedAt,
		SuspendReason: u.SuspendReason,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
