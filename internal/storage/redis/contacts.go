// Package redis stores verified contacts in Redis for deployments that run
// more than one bot process.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sandevgo/deskbot/internal/config"
	"github.com/sandevgo/deskbot/internal/core"
)

type ContactStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewClient parses cfg.URL and verifies the server answers.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewContactStore keeps contacts under prefix. A zero ttl keeps them forever.
func NewContactStore(client *redis.Client, prefix string, ttl time.Duration) *ContactStore {
	return &ContactStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *ContactStore) key(userID string) string {
	return s.prefix + "contact:" + userID
}

func (s *ContactStore) GetContact(ctx context.Context, userID string) (*core.ContactRecord, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	var rec core.ContactRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode contact: %w", err)
	}
	return &rec, nil
}

func (s *ContactStore) SaveContact(ctx context.Context, userID string, rec core.ContactRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode contact: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}
	return nil
}

func (s *ContactStore) DeleteContact(ctx context.Context, userID string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete contact: %w", err)
	}
	return n > 0, nil
}
