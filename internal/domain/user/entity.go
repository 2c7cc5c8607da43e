package user

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the marketplace
type Role string

const (
	RoleGuest Role = "GUEST"
	RoleHost  Role = "HOST"
	RoleAdmin Role = "ADMIN"
)

// Status represents account status
type Status string

const (
	StatusActive Status = "active"
	StatusBanned Status = "banned"
)

// User represents a marketplace account
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Role         Role      `db:"role" json:"role"`
	Status       Status    `db:"status" json:"status"`
	AvatarURL    *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func (u *User) IsBanned() bool { return u.Status == StatusBanned }
