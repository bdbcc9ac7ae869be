package mocks

import (
	"context"

	"huddle-api/pkg/events"

	"github.com/stretchr/testify/mock"
)

// Publisher is a testify mock of events.Publisher.
type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, channel string, event events.Event) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}
