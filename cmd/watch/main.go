// Command watch tails the change events published by the API.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"huddle-api/config"
	"huddle-api/internal/domain/resource"
	"huddle-api/internal/redis"
	"huddle-api/pkg/events"
	"huddle-api/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	l := logger.New(logger.DevelopmentMode)
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer client.Close()

	var broker events.Subscriber = events.NewRedisBroker(client, l)
	emit := func(_ context.Context, event events.Event) error {
		return json.NewEncoder(os.Stdout).Encode(event)
	}

	for _, kind := range resource.Kinds() {
		channel := events.Channel(kind.Collection)
		if err := broker.Subscribe(ctx, channel, emit); err != nil {
			l.Logger.Fatal(err.Error())
		}
		l.Infof("Watching %s", channel)
	}

	<-ctx.Done()
}
