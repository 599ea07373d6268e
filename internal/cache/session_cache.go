package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"surveykit/internal/model"

	"github.com/redis/go-redis/v9"
)

// SessionCache stores logged-in sessions by id
type SessionCache interface {
	Set(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (c *sessionCache) Set(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ID), data, SessionTTL(session, c.ttl, time.Now())).Err()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

// SessionTTL caps the configured lifetime at the token's own expiry
func SessionTTL(session *model.Session, max time.Duration, now time.Time) time.Duration {
	if session.ExpiresAt.IsZero() {
		return max
	}
	left := session.ExpiresAt.Sub(now)
	if left <= 0 {
		return time.Second
	}
	if left < max {
		return left
	}
	return max
}
