package model

import (
	"database/sql"
	"time"
)

// User is an authenticated account. Most accounts exist only to back the
// single admin identity; public visitors never have accounts.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	LastLoginAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AdminRosterEntry maps an authenticated user to administrator privileges.
// Membership in the roster is the only source of the admin capability.
type AdminRosterEntry struct {
	ID        int64
	UserID    int64
	Username  string
	Email     string
	CreatedAt time.Time
}

// Capability is the per-session capability flag consumed by every
// authoring surface. It is always derived from a roster lookup, never
// from client-supplied input.
type Capability struct {
	IsAdmin  bool   `json:"is_admin"`
	Username string `json:"username,omitempty"`
}
