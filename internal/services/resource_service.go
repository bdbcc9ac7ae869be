package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"huddle-api/internal/domain/resource"
	"huddle-api/internal/repository"
	huddle_errors "huddle-api/pkg/errors"
	"huddle-api/pkg/events"
	"huddle-api/pkg/logger"

	"go.uber.org/zap"
)

// ResourceCache is a read-through cache for single resources. A miss is (nil, nil).
type ResourceCache interface {
	GetResource(ctx context.Context, kind resource.Kind, id string) (*resource.Resource, error)
	SetResource(ctx context.Context, kind resource.Kind, r resource.Resource) error
	InvalidateResource(ctx context.Context, kind resource.Kind, id string) error
}

type UpdatePolicy struct {
	// EnforceParticipantCheck turns a two-party participant mismatch into ErrNotOwner.
	// When false the mismatch is only logged and the update goes through.
	EnforceParticipantCheck bool
}

// ResourceService implements index/show/create/update/destroy for one resource kind.
type ResourceService struct {
	kind   resource.Kind
	repo   repository.ResourceRepository
	cache  ResourceCache
	policy UpdatePolicy
	events events.Publisher
	logger *logger.Logger
}

// NewResourceService wires a service. cache may be nil.
func NewResourceService(kind resource.Kind, repo repository.ResourceRepository, cache ResourceCache, policy UpdatePolicy, l *logger.Logger) *ResourceService {
	if l == nil {
		l = logger.NewNop()
	}
	return &ResourceService{kind: kind, repo: repo, cache: cache, policy: policy, logger: l}
}

// WithPublisher announces every successful write on events.Channel(kind.Collection).
func (s *ResourceService) WithPublisher(p events.Publisher) *ResourceService {
	s.events = p
	return s
}

func (s *ResourceService) Kind() resource.Kind {
	return s.kind
}

func (s *ResourceService) Index(ctx context.Context) ([]resource.Resource, error) {
	return s.repo.FindAll(ctx)
}

func (s *ResourceService) Show(ctx context.Context, id string) (resource.Resource, error) {
	if s.cache != nil {
		cached, err := s.cache.GetResource(ctx, s.kind, id)
		if err != nil {
			s.logger.WithContext(ctx).Warn("cache read failed", zap.String("kind", s.kind.Singular), zap.String("id", id), zap.Error(err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	r, err := s.find(ctx, id)
	if err != nil {
		return resource.Resource{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetResource(ctx, s.kind, r); err != nil {
			s.logger.WithContext(ctx).Warn("cache write failed", zap.String("kind", s.kind.Singular), zap.String("id", id), zap.Error(err))
		}
	}
	return r, nil
}

// Create stores r owned by userID. Any owner the client supplied is overwritten.
func (s *ResourceService) Create(ctx context.Context, userID string, r resource.Resource) (resource.Resource, error) {
	if userID == "" {
		return resource.Resource{}, huddle_errors.ErrUnauthorized
	}
	r.ID = ""
	r.Owner = userID
	if r.Messages == nil {
		r.Messages = []resource.Message{}
	}
	if err := r.Validate(); err != nil {
		return resource.Resource{}, err
	}
	if err := s.repo.Create(ctx, &r); err != nil {
		return resource.Resource{}, err
	}
	s.publish(ctx, events.ActionCreated, r.ID, r)
	return r, nil
}

// Update applies patch to the resource with the given id and returns the stored result.
//
// A two-party resource (user2 set) whose patch asserts neither of its stored
// participants is a participant mismatch; see UpdatePolicy.
func (s *ResourceService) Update(ctx context.Context, id string, patch resource.Patch) (resource.Resource, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return resource.Resource{}, err
	}

	if !existing.IsSingleParty() && participantMismatch(existing, patch) {
		if s.policy.EnforceParticipantCheck {
			return resource.Resource{}, fmt.Errorf("%w: Update failed. Both users need to be provided", huddle_errors.ErrNotOwner)
		}
		s.logger.WithContext(ctx).Warn("update with mismatched participants",
			zap.String("kind", s.kind.Singular),
			zap.String("id", id),
		)
	}

	if err := existing.Apply(patch).Validate(); err != nil {
		return resource.Resource{}, err
	}
	if patch.IsEmpty() {
		return existing, nil
	}

	updated, err := s.repo.UpdateByID(ctx, id, patch)
	if err != nil {
		if errors.Is(err, huddle_errors.ErrNotFound) {
			return resource.Resource{}, NotFound(s.kind, id)
		}
		return resource.Resource{}, err
	}
	// Cache keys and events use the stored id; the caller's spelling may differ in case or format.
	s.invalidate(ctx, existing.ID)
	s.publish(ctx, events.ActionUpdated, existing.ID, updated)
	return updated, nil
}

// Destroy removes the resource if userID owns it.
func (s *ResourceService) Destroy(ctx context.Context, userID, id string) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := RequireOwnership(userID, existing); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, huddle_errors.ErrNotFound) {
			return NotFound(s.kind, id)
		}
		return err
	}
	s.invalidate(ctx, existing.ID)
	s.publish(ctx, events.ActionDeleted, existing.ID, nil)
	return nil
}

func (s *ResourceService) find(ctx context.Context, id string) (resource.Resource, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, huddle_errors.ErrNotFound) {
			return resource.Resource{}, NotFound(s.kind, id)
		}
		return resource.Resource{}, err
	}
	return r, nil
}

func (s *ResourceService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateResource(ctx, s.kind, id); err != nil {
		s.logger.WithContext(ctx).Warn("cache invalidation failed", zap.String("kind", s.kind.Singular), zap.String("id", id), zap.Error(err))
	}
}

func (s *ResourceService) publish(ctx context.Context, action, id string, payload interface{}) {
	if s.events == nil {
		return
	}
	event := events.Event{
		Type:        events.EventType(s.kind.Singular, action),
		AggregateID: id,
		Payload:     payload,
		Timestamp:   time.Now().Unix(),
	}
	if err := s.events.Publish(ctx, events.Channel(s.kind.Collection), event); err != nil {
		s.logger.WithContext(ctx).Warn("event publish failed", zap.String("type", event.Type), zap.String("id", id), zap.Error(err))
	}
}

// participantMismatch reports whether the patch's asserted user1 and user2 both
// differ from the stored participants. Absent fields assert nothing and so differ.
func participantMismatch(existing resource.Resource, patch resource.Patch) bool {
	var user1, user2 string
	if patch.User1 != nil {
		user1 = *patch.User1
	}
	if patch.User2 != nil {
		user2 = *patch.User2
	}
	return user1 != existing.User1 && user2 != existing.User2
}
