package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventType(t *testing.T) {
	assert.Equal(t, "project.created", EventType("project", ActionCreated))
	assert.Equal(t, "chatroom.deleted", EventType("chatroom", ActionDeleted))
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "huddle:chatrooms", Channel("chatrooms"))
}

func TestDecodeEvent(t *testing.T) {
	event, err := decodeEvent(`{"type":"project.updated","aggregate_id":"abc","timestamp":42}`)
	require.NoError(t, err)
	assert.Equal(t, "project.updated", event.Type)
	assert.Equal(t, "abc", event.AggregateID)
	assert.EqualValues(t, 42, event.Timestamp)

	_, err = decodeEvent("not json")
	assert.Error(t, err)
}
