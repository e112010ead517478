package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/arttttt/Bealin/internal/projects/domain"
)

// DefaultConfigKey holds the serialized app config.
const DefaultConfigKey = "bealin:config"

// RedisStore persists the app config as one JSON value in Redis.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a RedisStore. An empty key selects DefaultConfigKey.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultConfigKey
	}
	return &RedisStore{client: client, key: key}
}

// Load fetches the config. A missing key yields an empty config.
func (s *RedisStore) Load(ctx context.Context) (*domain.AppConfig, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return &domain.AppConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	var cfg domain.AppConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Save overwrites the stored config. No TTL is set.
func (s *RedisStore) Save(ctx context.Context, cfg *domain.AppConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set config: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
