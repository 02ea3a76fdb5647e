package service

import (
	"context"
	"fmt"
	"time"

	"cublex/internal/common/security"
	"cublex/internal/domain/model"
	"cublex/internal/domain/repository"
)

const DefaultSessionTTL = 24 * time.Hour

// SessionManager owns the lifecycle of sessions: it mints tokens, resolves
// them to user snapshots and destroys them.
type SessionManager struct {
	repo     repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
	newToken func() (string, error)
}

func NewSessionManager(repo repository.SessionRepository, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		repo:     repo,
		ttl:      ttl,
		now:      time.Now,
		newToken: security.NewSessionToken,
	}
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Start binds a fresh token to user and returns the stored session.
func (m *SessionManager) Start(ctx context.Context, user *model.User) (*model.Session, error) {
	token, err := m.newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	now := m.now()
	session := &model.Session{
		Token:     token,
		User:      user.Snapshot(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}

// Resolve returns the session bound to token, or nil when the token is
// unknown or expired. Expired sessions are removed on the way out.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, nil
	}
	session, err := m.repo.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	if session.Expired(m.now()) {
		if err := m.repo.Delete(ctx, token); err != nil {
			return nil, fmt.Errorf("failed to drop expired session: %w", err)
		}
		return nil, nil
	}
	return session, nil
}

func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.repo.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Sweep removes every expired session and reports how many were dropped.
func (m *SessionManager) Sweep(ctx context.Context) (int, error) {
	return m.repo.DeleteExpired(ctx, m.now())
}
