package events

import (
	"context"
	"encoding/json"
	"fmt"

	"huddle-api/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisBroker struct {
	Client *redis.Client
	logger *logger.Logger
}

func NewRedisBroker(client *redis.Client, l *logger.Logger) *RedisBroker {
	if l == nil {
		l = logger.NewNop()
	}
	return &RedisBroker{Client: client, logger: l}
}

func (b *RedisBroker) Publish(ctx context.Context, channel string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return b.Client.Publish(ctx, channel, data).Err()
}

// Subscribe delivers events on channel to handler until ctx is cancelled.
func (b *RedisBroker) Subscribe(ctx context.Context, channel string, handler Handler) error {
	pubsub := b.Client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				event, err := decodeEvent(msg.Payload)
				if err != nil {
					b.logger.WithContext(ctx).Warn("dropping undecodable event", zap.String("channel", channel), zap.Error(err))
					continue
				}
				if err := handler(ctx, event); err != nil {
					b.logger.WithContext(ctx).Error("event handler failed", zap.String("type", event.Type), zap.Error(err))
				}
			}
		}
	}()

	return nil
}

func decodeEvent(payload string) (Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return Event{}, err
	}
	return event, nil
}
