package repository

import (
	"context"
	"sync"
	"time"

	"cublex/internal/domain/model"
)

// SessionRepository stores sessions by token. Get returns (nil, nil) for an
// unknown token; expiry is judged by the caller.
type SessionRepository interface {
	Save(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) error
	// DeleteExpired drops every session whose expiry is at or before now and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[string]model.Session)}
}

func (r *memorySessionRepository) Save(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = *session
	return nil
}

func (r *memorySessionRepository) Get(ctx context.Context, token string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memorySessionRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

func (r *memorySessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for token, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, token)
			n++
		}
	}
	return n, nil
}
