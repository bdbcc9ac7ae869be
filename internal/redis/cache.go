package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"huddle-api/internal/domain/resource"

	goredis "github.com/redis/go-redis/v9"
)

// Cache key pattern:
// - {collection}:{id} - ResourceTTL, full resource JSON

// CacheConfig contains configuration for caching
type CacheConfig struct {
	ResourceTTL time.Duration
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		ResourceTTL: 5 * time.Minute,
	}
}

// CacheStore handles caching in Redis
type CacheStore struct {
	client *goredis.Client
	config CacheConfig
}

// NewCacheStore creates a new cache store
func NewCacheStore(client *goredis.Client, config CacheConfig) *CacheStore {
	return &CacheStore{
		client: client,
		config: config,
	}
}

func resourceKey(kind resource.Kind, id string) string {
	return fmt.Sprintf("%s:%s", kind.Collection, id)
}

// GetResource retrieves a resource from cache. A miss returns nil, nil.
func (c *CacheStore) GetResource(ctx context.Context, kind resource.Kind, id string) (*resource.Resource, error) {
	data, err := c.client.Get(ctx, resourceKey(kind, id)).Result()
	if err == goredis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}

	r, err := decodeResource([]byte(data))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SetResource stores a resource in cache
func (c *CacheStore) SetResource(ctx context.Context, kind resource.Kind, r resource.Resource) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, resourceKey(kind, r.ID), data, c.config.ResourceTTL).Err()
}

func decodeResource(data []byte) (resource.Resource, error) {
	var r resource.Resource
	if err := json.Unmarshal(data, &r); err != nil {
		return resource.Resource{}, err
	}
	if r.Messages == nil {
		r.Messages = []resource.Message{}
	}
	return r, nil
}

// InvalidateResource removes a resource from cache
func (c *CacheStore) InvalidateResource(ctx context.Context, kind resource.Kind, id string) error {
	return c.client.Del(ctx, resourceKey(kind, id)).Err()
}
