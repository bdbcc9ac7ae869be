package repository

import (
	"context"

	"huddle-api/internal/domain/resource"
)

// ResourceRepository is the document store for one resource kind.
// Every lookup by a missing or malformed id returns huddle_errors.ErrNotFound.
type ResourceRepository interface {
	Create(ctx context.Context, r *resource.Resource) error
	FindAll(ctx context.Context) ([]resource.Resource, error)
	FindByID(ctx context.Context, id string) (resource.Resource, error)
	// UpdateByID writes the present patch fields and returns the post-update document.
	UpdateByID(ctx context.Context, id string, patch resource.Patch) (resource.Resource, error)
	DeleteByID(ctx context.Context, id string) error
}

// Store opens a repository per kind and owns the underlying connection.
type Store interface {
	Resources(kind resource.Kind) ResourceRepository
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
