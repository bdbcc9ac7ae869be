package repository

import (
	"context"
	"time"

	"huddle-api/internal/domain/resource"
	huddle_errors "huddle-api/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// resourceRecord is the row layout shared by the projects and chatrooms tables.
type resourceRecord struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Owner     string             `gorm:"column:owner;not null"`
	User1     string             `gorm:"column:user1;not null"`
	User2     *string            `gorm:"column:user2"`
	Messages  []resource.Message `gorm:"column:messages;type:jsonb;serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func toRecord(r resource.Resource) resourceRecord {
	rec := resourceRecord{
		Owner:     r.Owner,
		User1:     r.User1,
		Messages:  withMessageIDs(r.Messages, uuid.NewString),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if id, err := uuid.Parse(r.ID); err == nil {
		rec.ID = id
	}
	if r.User2 != "" {
		user2 := r.User2
		rec.User2 = &user2
	}
	return rec
}

func (rec resourceRecord) toDomain() resource.Resource {
	r := resource.Resource{
		ID:        rec.ID.String(),
		Owner:     rec.Owner,
		User1:     rec.User1,
		Messages:  rec.Messages,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.User2 != nil {
		r.User2 = *rec.User2
	}
	if r.Messages == nil {
		r.Messages = []resource.Message{}
	}
	return r
}

// withMessageIDs copies msgs, giving every message without an id a fresh one.
func withMessageIDs(msgs []resource.Message, newID func() string) []resource.Message {
	out := make([]resource.Message, len(msgs))
	for i, m := range msgs {
		if m.ID == "" {
			m.ID = newID()
		}
		out[i] = m
	}
	return out
}

type PostgresResourceRepository struct {
	db    *gorm.DB
	table string
}

func NewPostgresResourceRepository(db *gorm.DB, kind resource.Kind) ResourceRepository {
	return &PostgresResourceRepository{db: db, table: kind.Collection}
}

func (r *PostgresResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	rec := toRecord(*res)
	rec.ID = uuid.New()
	if err := r.db.WithContext(ctx).Table(r.table).Create(&rec).Error; err != nil {
		return classifyPgError(err)
	}
	*res = rec.toDomain()
	return nil
}

func (r *PostgresResourceRepository) FindAll(ctx context.Context) ([]resource.Resource, error) {
	var recs []resourceRecord
	if err := r.db.WithContext(ctx).Table(r.table).Find(&recs).Error; err != nil {
		return nil, classifyPgError(err)
	}
	out := make([]resource.Resource, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *PostgresResourceRepository) FindByID(ctx context.Context, id string) (resource.Resource, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return resource.Resource{}, huddle_errors.ErrNotFound
	}
	var rec resourceRecord
	if err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", rid).First(&rec).Error; err != nil {
		return resource.Resource{}, classifyPgError(err)
	}
	return rec.toDomain(), nil
}

func (r *PostgresResourceRepository) UpdateByID(ctx context.Context, id string, patch resource.Patch) (resource.Resource, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return resource.Resource{}, huddle_errors.ErrNotFound
	}

	var updated resource.Resource
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec resourceRecord
		if err := tx.Table(r.table).Where("id = ?", rid).First(&rec).Error; err != nil {
			return err
		}

		next := toRecord(rec.toDomain().Apply(patch))
		next.ID = rec.ID
		next.CreatedAt = rec.CreatedAt
		if err := tx.Table(r.table).Save(&next).Error; err != nil {
			return err
		}
		updated = next.toDomain()
		return nil
	})
	if err != nil {
		return resource.Resource{}, classifyPgError(err)
	}
	return updated, nil
}

func (r *PostgresResourceRepository) DeleteByID(ctx context.Context, id string) error {
	rid, err := uuid.Parse(id)
	if err != nil {
		return huddle_errors.ErrNotFound
	}
	res := r.db.WithContext(ctx).Table(r.table).Where("id = ?", rid).Delete(&resourceRecord{})
	if res.Error != nil {
		return classifyPgError(res.Error)
	}
	if res.RowsAffected == 0 {
		return huddle_errors.ErrNotFound
	}
	return nil
}

// PostgresStore serves every resource kind from one gorm connection.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Resources(kind resource.Kind) ResourceRepository {
	return NewPostgresResourceRepository(s.db, kind)
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	for _, kind := range resource.Kinds() {
		if err := s.db.WithContext(ctx).Table(kind.Collection).AutoMigrate(&resourceRecord{}); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
