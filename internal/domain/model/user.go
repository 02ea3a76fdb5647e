package model

import (
	"time"
)

type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleAdmin
}

type User struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	HashedPassword    string     `json:"-"` // Not exposed
	Role              Role       `json:"role"`
	MinecraftUsername string     `json:"minecraftUsername,omitempty"`
	CreatedAt         time.Time  `json:"joinDate"`
	LastLoginAt       *time.Time `json:"lastLogin,omitempty"`
}

// Snapshot returns the public fields that are bound to a session.
func (u *User) Snapshot() SessionUser {
	return SessionUser{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		Role:              u.Role,
		MinecraftUsername: u.MinecraftUsername,
	}
}
