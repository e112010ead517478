package bootstrap

import (
	"context"
	"fmt"

	"github.com/arttttt/Bealin/config"
	"github.com/arttttt/Bealin/internal/projects/repository"
	"github.com/arttttt/Bealin/internal/projects/service"
)

// ConfigStore is a project config store that can also be health-checked.
type ConfigStore interface {
	service.Store
	Ping(ctx context.Context) error
}

// OpenStore opens the backend named by cfg.Store.Backend. The returned
// func releases it.
func OpenStore(ctx context.Context, cfg *config.Config) (ConfigStore, func() error, error) {
	switch cfg.Store.Backend {
	case config.StoreFile:
		return repository.NewFileStore(cfg.Store.Path), func() error { return nil }, nil

	case config.StoreRedis:
		client, err := OpenRedis(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisStore(client, repository.DefaultConfigKey), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown config store %q", cfg.Store.Backend)
}
