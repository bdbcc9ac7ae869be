package database

import (
	"context"
	"fmt"

	"huddle-api/internal/domain/resource"
	"huddle-api/internal/repository"
	"huddle-api/pkg/logger"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	// Users are the subjects that will own the seeded documents.
	Users []string
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Users: []string{"alice", "bob", "charlie"},
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Projects  []resource.Resource
	Chatrooms []resource.Resource
}

// Seed gives every configured user one solo project and one chatroom with the
// next user in the list. It is not idempotent; running it twice doubles the data.
func Seed(ctx context.Context, store repository.Store, cfg *SeedConfig, l *logger.Logger) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}
	if l == nil {
		l = logger.NewNop()
	}

	result := &SeedResult{}
	projects := store.Resources(resource.ProjectKind)
	chatrooms := store.Resources(resource.ChatroomKind)

	for i, owner := range cfg.Users {
		project := resource.Resource{
			Owner:    owner,
			User1:    owner,
			Messages: []resource.Message{{Content: "project notes for " + owner, Owner: owner}},
		}
		if err := projects.Create(ctx, &project); err != nil {
			return nil, fmt.Errorf("failed to seed project for %s: %w", owner, err)
		}
		result.Projects = append(result.Projects, project)

		if len(cfg.Users) < 2 {
			continue
		}
		peer := cfg.Users[(i+1)%len(cfg.Users)]
		room := resource.Resource{
			Owner: owner,
			User1: owner,
			User2: peer,
			Messages: []resource.Message{
				{Content: "hi " + peer, Owner: owner},
				{Content: "hello " + owner, Owner: peer},
			},
		}
		if err := chatrooms.Create(ctx, &room); err != nil {
			return nil, fmt.Errorf("failed to seed chatroom for %s: %w", owner, err)
		}
		result.Chatrooms = append(result.Chatrooms, room)
	}

	l.Infof("Seeded %d projects and %d chatrooms", len(result.Projects), len(result.Chatrooms))
	return result, nil
}
