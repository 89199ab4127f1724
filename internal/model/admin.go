package model

import "time"

// Admin is an administrative user of the content panel. Passwords are stored
// as bcrypt hashes and never serialized to clients.
type Admin struct {
	ID           int64      `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // bcrypt hash, never expose
	Superadmin   bool       `json:"superadmin" db:"superadmin"`
	TokenVersion int64      `json:"-" db:"token_version"` // bumped to revoke outstanding tokens
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// AdminSummary is the projection of an Admin returned by the list endpoint.
type AdminSummary struct {
	Email      string    `json:"email"`
	Superadmin bool      `json:"superadmin"`
	CreatedAt  time.Time `json:"createdAt"`
}
