package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed session store. Entries carry a TTL equal to
// the session lifetime, so expired sessions vanish without a sweeper.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
	}
}

func (r *RedisStore) key(credential string) string {
	return r.prefix + credential
}

func (r *RedisStore) Create(ctx context.Context, s Session) error {
	if s.Credential == "" || s.UserID == "" {
		return fmt.Errorf("session: missing credential or user_id")
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session: expires_at must be in the future")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(s.Credential), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, credential string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(credential)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, credential string) error {
	return r.client.Del(ctx, r.key(credential)).Err()
}
