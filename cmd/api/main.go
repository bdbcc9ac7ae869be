package main

import (
	"context"
	"time"

	"huddle-api/config"
	"huddle-api/internal/domain/resource"
	"huddle-api/internal/handler"
	"huddle-api/internal/redis"
	"huddle-api/internal/server"
	"huddle-api/internal/services"
	"huddle-api/pkg/database"
	"huddle-api/pkg/events"
	"huddle-api/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		logMode = logger.ProductionMode
	}
	l := logger.New(logMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx := context.Background()
	store, err := database.OpenStore(ctx, cfg)
	if err != nil {
		l.Logger.Fatal("failed to open store: " + err.Error())
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			l.Errorf("Error closing store: %s", err)
		}
	}()
	l.Infof("Connected to %s store", cfg.StorageDriver)

	deps := server.Dependencies{
		Auth:   services.NewAuthService(cfg),
		Health: store.Ping,
	}

	// Only assigned once redis answers; a typed nil would slip past the services' nil checks.
	var cache services.ResourceCache
	var publisher events.Publisher
	if cfg.RedisEnabled {
		redis.Initialize(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := redis.Ping(pingCtx)
		cancel()
		if err != nil {
			l.Warnf("Redis unreachable, continuing without cache and rate limiting: %s", err)
		} else {
			client := redis.GetClient()
			cache = redis.NewCacheStore(client, cacheConfig(cfg))
			deps.Limiter = redis.NewRateLimiter(client, rateLimitConfig(cfg))
			deps.Health = func(ctx context.Context) error {
				if err := store.Ping(ctx); err != nil {
					return err
				}
				return redis.Ping(ctx)
			}
			publisher = events.NewRedisBroker(client, l)
			l.Infof("Redis cache, change events and write rate limiting enabled")
		}
	}

	policy := services.UpdatePolicy{EnforceParticipantCheck: cfg.EnforceParticipantCheck}
	newHandler := func(kind resource.Kind) *handler.ResourceHandler {
		svc := services.NewResourceService(kind, store.Resources(kind), cache, policy, l)
		if publisher != nil {
			svc.WithPublisher(publisher)
		}
		return handler.NewResourceHandler(svc)
	}
	handlers := &server.Handlers{
		Projects:  newHandler(resource.ProjectKind),
		Chatrooms: newHandler(resource.ChatroomKind),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, deps)
	if err := srv.Start(); err != nil {
		l.Errorf("Server exited with error: %s", err)
	}
}

// cacheConfig falls back to the package defaults for unset or non-positive values.
func cacheConfig(cfg *config.Config) redis.CacheConfig {
	out := redis.DefaultCacheConfig()
	if cfg.CacheTTLSeconds > 0 {
		out.ResourceTTL = time.Duration(cfg.CacheTTLSeconds) * time.Second
	}
	return out
}

func rateLimitConfig(cfg *config.Config) redis.RateLimitConfig {
	out := redis.DefaultRateLimitConfig()
	if cfg.RateLimitWrites > 0 {
		out.WriteLimit = cfg.RateLimitWrites
	}
	if cfg.RateLimitWindowSeconds > 0 {
		out.WriteWindow = time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	}
	return out
}
