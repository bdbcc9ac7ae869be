package repository

import (
	"errors"
	"testing"
	"time"

	"huddle-api/internal/domain/resource"
	huddle_errors "huddle-api/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestToDocument_RoundTrip(t *testing.T) {
	oid := primitive.NewObjectID()
	msgID := primitive.NewObjectID()
	now := time.Now().UTC().Truncate(time.Millisecond)
	in := resource.Resource{
		ID:        oid.Hex(),
		Owner:     "u1",
		User1:     "u1",
		User2:     "u2",
		Messages:  []resource.Message{{ID: msgID.Hex(), Content: "hello", Owner: "u1"}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	out := toDocument(in).toDomain()

	assert.Equal(t, in, out)
}

func TestToMessageDocuments_AssignsMissingIDs(t *testing.T) {
	docs := toMessageDocuments([]resource.Message{{Content: "a", Owner: "u1"}, {ID: "not-hex", Content: "b", Owner: "u2"}})

	require.Len(t, docs, 2)
	assert.False(t, docs[0].ID.IsZero())
	assert.False(t, docs[1].ID.IsZero())
	assert.NotEqual(t, docs[0].ID, docs[1].ID)
	assert.Equal(t, "b", docs[1].Content)
}

func TestToDomain_EmptyMessagesIsNotNil(t *testing.T) {
	r := resourceDocument{ID: primitive.NewObjectID(), Owner: "u1", User1: "u1"}.toDomain()

	assert.NotNil(t, r.Messages)
	assert.Empty(t, r.Messages)
	assert.Empty(t, r.User2)
}

func TestPatchUpdate_OnlyPresentFields(t *testing.T) {
	now := time.Now()
	user2 := "u2"

	update := patchUpdate(resource.Patch{User2: &user2}, now)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "u2", set["user2"])
	assert.Equal(t, now, set["updatedAt"])
	assert.NotContains(t, set, "user1")
	assert.NotContains(t, set, "messages")
	assert.NotContains(t, set, "owner")
}

func TestPatchUpdate_Messages(t *testing.T) {
	msgs := []resource.Message{{Content: "x", Owner: "u1"}}

	set := patchUpdate(resource.Patch{Messages: &msgs}, time.Now())["$set"].(bson.M)

	docs, ok := set["messages"].([]messageDocument)
	require.True(t, ok)
	require.Len(t, docs, 1)
	assert.Equal(t, "x", docs[0].Content)
}

func TestClassifyMongoError(t *testing.T) {
	assert.NoError(t, classifyMongoError(nil))
	assert.True(t, errors.Is(classifyMongoError(mongo.ErrNoDocuments), huddle_errors.ErrNotFound))

	validation := classifyMongoError(mongo.CommandError{Code: mongoDocumentValidationFailure, Message: "Document failed validation"})
	assert.True(t, errors.Is(validation, huddle_errors.ErrInvalidInput))

	other := errors.New("connection reset")
	assert.Equal(t, other, classifyMongoError(other))
}
