package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Table: users
type User struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID        string     `gorm:"column:user_id;size:32;not null;uniqueIndex:ux_users_user_id"`
	Email         string     `gorm:"column:email;size:254;not null;uniqueIndex:ux_users_email"`
	Name          string     `gorm:"column:name;size:255"`
	PhotoURL      string     `gorm:"column:photo_url;type:text"`
	Role          Role       `gorm:"column:role;size:16;not null;default:'user'"`
	Suspended     bool       `gorm:"column:suspended;not null;default:false"`
	SuspendedAt   *time.Time `gorm:"column:suspended_at"`
	SuspendReason string     `gorm:"column:suspend_reason;type:text"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (User) TableName() string { return "users" }

// Actor is the identity a command runs as. It is resolved by the boundary
// from a verified source, never from a request body.
type Actor struct {
	Email     string
	Role      Role
	Suspended bool
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsStaff reports whether the actor may decide on applications.
func (a Actor) IsStaff() bool { return a.Role == RoleManager || a.Role == RoleAdmin }

// NormalizeEmail is the canonical form used for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
