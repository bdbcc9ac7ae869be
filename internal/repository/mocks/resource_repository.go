package mocks

import (
	"context"

	"huddle-api/internal/domain/resource"

	"github.com/stretchr/testify/mock"
)

// ResourceRepository is a testify mock of repository.ResourceRepository.
type ResourceRepository struct {
	mock.Mock
}

func (m *ResourceRepository) Create(ctx context.Context, r *resource.Resource) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *ResourceRepository) FindAll(ctx context.Context) ([]resource.Resource, error) {
	args := m.Called(ctx)
	var out []resource.Resource
	if v := args.Get(0); v != nil {
		out = v.([]resource.Resource)
	}
	return out, args.Error(1)
}

func (m *ResourceRepository) FindByID(ctx context.Context, id string) (resource.Resource, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(resource.Resource), args.Error(1)
}

func (m *ResourceRepository) UpdateByID(ctx context.Context, id string, patch resource.Patch) (resource.Resource, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(resource.Resource), args.Error(1)
}

func (m *ResourceRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ResourceCache is a testify mock of services.ResourceCache.
type ResourceCache struct {
	mock.Mock
}

func (m *ResourceCache) GetResource(ctx context.Context, kind resource.Kind, id string) (*resource.Resource, error) {
	args := m.Called(ctx, kind, id)
	var out *resource.Resource
	if v := args.Get(0); v != nil {
		out = v.(*resource.Resource)
	}
	return out, args.Error(1)
}

func (m *ResourceCache) SetResource(ctx context.Context, kind resource.Kind, r resource.Resource) error {
	args := m.Called(ctx, kind, r)
	return args.Error(0)
}

func (m *ResourceCache) InvalidateResource(ctx context.Context, kind resource.Kind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}
