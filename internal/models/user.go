package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleAdmin is the role name that grants access to the admin console.
const RoleAdmin = "admin"

// User represents an account in the local auth subsystem.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRole is a role grant row. A user is an admin iff a row with
// role "admin" exists for them — roles live apart from the user record
// so a grant can be added or revoked without touching the account.
type UserRole struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
