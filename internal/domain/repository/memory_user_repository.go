package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cublex/internal/common"
	"cublex/internal/domain/model"
)

type memoryUserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*model.User
	byUsername map[string]string
	byEmail    map[string]string
}

// NewMemoryUserRepository keeps users in process memory. Records are copied in
// and out so callers never share state with the store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:       make(map[string]*model.User),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[user.Username]; ok {
		return fmt.Errorf("username %q taken: %w", user.Username, common.ErrDuplicateIdentity)
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return fmt.Errorf("email %q taken: %w", user.Email, common.ErrDuplicateIdentity)
	}
	if _, ok := r.byID[user.ID]; ok {
		return fmt.Errorf("id %q taken: %w", user.ID, common.ErrDuplicateIdentity)
	}

	r.byID[user.ID] = cloneUser(user)
	r.byUsername[user.Username] = user.ID
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *memoryUserRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[identifier]
	if !ok {
		id, ok = r.byEmail[identifier]
	}
	if !ok {
		return nil, nil
	}
	return cloneUser(r.byID[id]), nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *memoryUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}
	t := at
	u.LastLoginAt = &t
	return nil
}

func cloneUser(u *model.User) *model.User {
	c := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}
