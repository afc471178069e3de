// Command main runs the database seeder for the friend graph.
package main

import (
	"context"
	"flag"
	"log"

	"friendgraph/internal/config"
	"friendgraph/internal/database"
	"friendgraph/internal/observability"
	"friendgraph/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	maxFriends := flag.Int("friends", 8, "Maximum outgoing friendships per user")
	randSeed := flag.Int64("seed", 0, "Random seed (0 uses the clock)")
	shouldClean := flag.Bool("clean", false, "Delete all users and friendships before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}
	observability.Configure(cfg.Env, cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	s := seed.NewSeeder(db, seed.Options{
		NumUsers:   *numUsers,
		MaxFriends: *maxFriends,
		RandSeed:   *randSeed,
	})

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	result, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Created %d users (%d skipped) and %d friendships (%d skipped)",
		result.UsersCreated, result.UsersSkipped, result.FriendshipsCreated, result.FriendshipsSkipped)
}
