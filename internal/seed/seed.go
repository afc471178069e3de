// Package seed populates a friend graph with fake users and random directed
// edges. It is intended for development and demos only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"friendgraph/internal/models"
	"friendgraph/internal/observability"
	"friendgraph/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers int
	// MaxFriends caps the outgoing edges generated per user.
	MaxFriends int
	// RandSeed makes a run reproducible. Zero seeds from the clock.
	RandSeed int64
}

// Result summarizes one seeding run.
type Result struct {
	UsersCreated       int
	UsersSkipped       int
	FriendshipsCreated int
	FriendshipsSkipped int
}

// Seeder writes fake data through the repository layer so the same
// constraints apply as for API writes.
type Seeder struct {
	db    *gorm.DB
	store repository.Store
	opts  Options
	faker *gofakeit.Faker
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{
		db:    db,
		store: repository.NewStore(db),
		opts:  opts,
		faker: gofakeit.New(seed),
	}
}

// ClearAll removes every friendship and user.
func (s *Seeder) ClearAll(ctx context.Context) error {
	observability.Logger.InfoContext(ctx, "Clearing existing data")
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Friendship{}).Error; err != nil {
			return fmt.Errorf("clear friendships: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		return nil
	})
}

// Run seeds users and then edges between them.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	observability.Logger.InfoContext(ctx, "Starting database seeding",
		slog.Int("users", s.opts.NumUsers),
		slog.Int("max_friends", s.opts.MaxFriends),
	)

	result := &Result{}
	users, err := s.SeedUsers(ctx, s.opts.NumUsers, result)
	if err != nil {
		return result, fmt.Errorf("failed to create users: %w", err)
	}

	if err := s.SeedFriendships(ctx, users, s.opts.MaxFriends, result); err != nil {
		return result, fmt.Errorf("failed to create friendships: %w", err)
	}

	observability.Logger.InfoContext(ctx, "Database seeding completed",
		slog.Int("users_created", result.UsersCreated),
		slog.Int("users_skipped", result.UsersSkipped),
		slog.Int("friendships_created", result.FriendshipsCreated),
		slog.Int("friendships_skipped", result.FriendshipsSkipped),
	)
	return result, nil
}

// BuildUser constructs an unsaved user with a fake name and email.
func (s *Seeder) BuildUser() *models.User {
	first, last := s.faker.FirstName(), s.faker.LastName()
	return &models.User{
		Name:  first + " " + last,
		Email: strings.ToLower(fmt.Sprintf("%s.%s%d@%s", first, last, s.faker.Number(1, 9999), s.faker.DomainName())),
	}
}

// SeedUsers creates count users. Email collisions with existing rows are
// skipped, so re-running against a populated store is safe.
func (s *Seeder) SeedUsers(ctx context.Context, count int, result *Result) ([]models.User, error) {
	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		user := s.BuildUser()
		if err := s.store.Users().Create(ctx, user); err != nil {
			if models.IsConstraintViolation(err) {
				result.UsersSkipped++
				continue
			}
			return users, err
		}
		users = append(users, *user)
		result.UsersCreated++

		if result.UsersCreated%100 == 0 {
			observability.Logger.InfoContext(ctx, "Seeding users", slog.Int("created", result.UsersCreated))
		}
	}
	return users, nil
}

// SeedFriendships gives each user between zero and maxFriends outgoing edges
// to random other users. Duplicate edges are skipped.
func (s *Seeder) SeedFriendships(ctx context.Context, users []models.User, maxFriends int, result *Result) error {
	if len(users) < 2 || maxFriends <= 0 {
		return nil
	}
	if maxFriends > len(users)-1 {
		maxFriends = len(users) - 1
	}

	for _, user := range users {
		n := s.faker.Number(0, maxFriends)
		for j := 0; j < n; j++ {
			target := users[s.faker.Number(0, len(users)-1)]
			if target.ID == user.ID {
				continue
			}
			edge := &models.Friendship{UserID: user.ID, FriendID: target.ID}
			if err := s.store.Friends().Create(ctx, edge); err != nil {
				if models.IsConstraintViolation(err) {
					result.FriendshipsSkipped++
					continue
				}
				return err
			}
			result.FriendshipsCreated++
		}
	}
	return nil
}
