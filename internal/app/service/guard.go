package service

import (
	"context"

	"cublex/internal/common"
	"cublex/internal/domain/model"
)

// Guard gates operations on the role bound to the caller's session.
type Guard struct {
	sessions *SessionManager
}

func NewGuard(sessions *SessionManager) *Guard {
	return &Guard{sessions: sessions}
}

func (g *Guard) RequireAuthenticated(ctx context.Context, token string) (*model.SessionUser, error) {
	session, err := g.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, common.ErrUnauthenticated
	}
	user := session.User
	return &user, nil
}

func (g *Guard) RequireRole(ctx context.Context, token string, role model.Role) (*model.SessionUser, error) {
	user, err := g.RequireAuthenticated(ctx, token)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, common.ErrForbidden
	}
	return user, nil
}
