package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"huddle-api/internal/domain/resource"
	huddle_errors "huddle-api/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// mongoDocumentValidationFailure is returned by the server when a write breaks a collection validator.
const mongoDocumentValidationFailure = 121

type resourceDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Owner     string             `bson:"owner"`
	User1     string             `bson:"user1"`
	User2     string             `bson:"user2,omitempty"`
	Messages  []messageDocument  `bson:"messages"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type messageDocument struct {
	ID      primitive.ObjectID `bson:"_id"`
	Content string             `bson:"content"`
	Owner   string             `bson:"owner"`
}

func toDocument(r resource.Resource) resourceDocument {
	doc := resourceDocument{
		Owner:     r.Owner,
		User1:     r.User1,
		User2:     r.User2,
		Messages:  toMessageDocuments(r.Messages),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(r.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func toMessageDocuments(msgs []resource.Message) []messageDocument {
	out := make([]messageDocument, 0, len(msgs))
	for _, m := range msgs {
		oid, err := primitive.ObjectIDFromHex(m.ID)
		if err != nil {
			oid = primitive.NewObjectID()
		}
		out = append(out, messageDocument{ID: oid, Content: m.Content, Owner: m.Owner})
	}
	return out
}

func (d resourceDocument) toDomain() resource.Resource {
	msgs := make([]resource.Message, 0, len(d.Messages))
	for _, m := range d.Messages {
		msgs = append(msgs, resource.Message{ID: m.ID.Hex(), Content: m.Content, Owner: m.Owner})
	}
	return resource.Resource{
		ID:        d.ID.Hex(),
		Owner:     d.Owner,
		User1:     d.User1,
		User2:     d.User2,
		Messages:  msgs,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// patchUpdate builds the $set document for a patch.
func patchUpdate(patch resource.Patch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if patch.User1 != nil {
		set["user1"] = *patch.User1
	}
	if patch.User2 != nil {
		set["user2"] = *patch.User2
	}
	if patch.Messages != nil {
		set["messages"] = toMessageDocuments(*patch.Messages)
	}
	return bson.M{"$set": set}
}

func classifyMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return huddle_errors.ErrNotFound
	}
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) && serverErr.HasErrorCode(mongoDocumentValidationFailure) {
		return fmt.Errorf("%w: %s", huddle_errors.ErrInvalidInput, serverErr.Error())
	}
	return err
}

type MongoResourceRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoResourceRepository(db *mongo.Database, kind resource.Kind) ResourceRepository {
	return &MongoResourceRepository{
		coll: db.Collection(kind.Collection),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *MongoResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	doc := toDocument(*res)
	now := r.now()
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return classifyMongoError(err)
	}
	*res = doc.toDomain()
	return nil
}

func (r *MongoResourceRepository) FindAll(ctx context.Context) ([]resource.Resource, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, classifyMongoError(err)
	}
	var docs []resourceDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classifyMongoError(err)
	}
	out := make([]resource.Resource, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *MongoResourceRepository) FindByID(ctx context.Context, id string) (resource.Resource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return resource.Resource{}, huddle_errors.ErrNotFound
	}
	var doc resourceDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return resource.Resource{}, classifyMongoError(err)
	}
	return doc.toDomain(), nil
}

func (r *MongoResourceRepository) UpdateByID(ctx context.Context, id string, patch resource.Patch) (resource.Resource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return resource.Resource{}, huddle_errors.ErrNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc resourceDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, patchUpdate(patch, r.now()), opts).Decode(&doc)
	if err != nil {
		return resource.Resource{}, classifyMongoError(err)
	}
	return doc.toDomain(), nil
}

func (r *MongoResourceRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return huddle_errors.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return classifyMongoError(err)
	}
	if res.DeletedCount == 0 {
		return huddle_errors.ErrNotFound
	}
	return nil
}

// MongoStore serves every resource kind from one database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(database)}
}

func (s *MongoStore) Resources(kind resource.Kind) ResourceRepository {
	return NewMongoResourceRepository(s.db, kind)
}

// Migrate creates the owner index on every collection; collections themselves are created lazily.
func (s *MongoStore) Migrate(ctx context.Context) error {
	for _, kind := range resource.Kinds() {
		model := mongo.IndexModel{Keys: bson.D{{Key: "owner", Value: 1}}}
		if _, err := s.db.Collection(kind.Collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", kind.Collection, err)
		}
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
