package model

import (
	"time"
)

// SessionUser is the copy of a user's public identity held by a session.
// It is not refreshed when the underlying user record changes.
type SessionUser struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	Role              Role   `json:"role"`
	MinecraftUsername string `json:"minecraftUsername,omitempty"`
}

type Session struct {
	Token     string      `json:"token"`
	User      SessionUser `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
