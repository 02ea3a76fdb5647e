package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cublex/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

type redisSessionRepository struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisSessionRepository stores each session under its own key with a TTL
// matching the session expiry, so Redis evicts expired sessions itself.
func NewRedisSessionRepository(rdb *redis.Client, prefix string) SessionRepository {
	return &redisSessionRepository{rdb: rdb, prefix: prefix, now: time.Now}
}

func (r *redisSessionRepository) key(token string) string {
	return r.prefix + "session:" + token
}

func (r *redisSessionRepository) Save(ctx context.Context, session *model.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redisSessionRepository.Save: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key(session.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("redisSessionRepository.Save: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) Get(ctx context.Context, token string) (*model.Session, error) {
	data, err := r.rdb.Get(ctx, r.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redisSessionRepository.Get: %w", err)
	}
	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("redisSessionRepository.Get: decode: %w", err)
	}
	return &s, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.rdb.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("redisSessionRepository.Delete: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: keys carry their own TTL.
func (r *redisSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}
