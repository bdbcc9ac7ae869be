package events

import (
	"context"
	"fmt"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event is a change notification for one stored document.
type Event struct {
	Type        string      `json:"type"`
	AggregateID string      `json:"aggregate_id"`
	Payload     interface{} `json:"payload,omitempty"`
	Timestamp   int64       `json:"timestamp"`
}

type Handler func(ctx context.Context, event Event) error

type Publisher interface {
	Publish(ctx context.Context, channel string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, channel string, handler Handler) error
}

// EventType joins a resource name and an action, e.g. "project.created".
func EventType(singular, action string) string {
	return fmt.Sprintf("%s.%s", singular, action)
}

// Channel is the pub/sub channel for a collection, e.g. "huddle:projects".
func Channel(collection string) string {
	return "huddle:" + collection
}
