package database

import (
	"context"
	"fmt"

	"huddle-api/config"
	"huddle-api/internal/repository"
)

// OpenStore connects the backend named by cfg.StorageDriver.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.StorageDriver {
	case config.StorageMongo, "":
		client, err := ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return repository.NewMongoStore(client, cfg.MongoDatabase), nil
	case config.StoragePostgres:
		db, err := ConnectPostgres(cfg)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
