// Command main runs the demo-data seeder for Squad.
package main

import (
	"context"
	"flag"
	"log"

	"squad/internal/config"
	"squad/internal/mirror"
	"squad/internal/seed"
	"squad/internal/snapshot"
	"squad/internal/store"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", seed.DefaultPlan.Users, "Number of users to create")
	postsPer := flag.Int("posts-per-user", seed.DefaultPlan.PostsPerUser, "Posts per user")
	shouldClean := flag.Bool("clean", true, "Discard the existing snapshot before seeding")
	flag.Parse()

	log.Println("🌱 Demo Data Seeder")
	log.Println("===================")
	log.Printf("Target: %d users, %d posts each, clean=%v\n", *numUsers, *postsPer, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	redisClient := snapshot.NewRedisClient(cfg.RedisURL)
	snapshots := snapshot.NewStore(redisClient, cfg.SnapshotNamespace)

	if *shouldClean {
		if err := snapshots.Clear(ctx); err != nil {
			log.Fatalf("❌ Snapshot cleanup failed: %v", err)
		}
	}

	opts := []store.Option{store.WithSnapshot(snapshots)}
	if cfg.MirrorEnabled {
		db, err := mirror.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to mirror database: %v", err)
		}
		opts = append(opts, store.WithRecorder(mirror.New(db)))
	}
	s := store.New(store.State{}, opts...)

	plan := seed.DefaultPlan
	plan.Users = *numUsers
	plan.PostsPerUser = *postsPer

	if err := seed.Run(ctx, s, plan, seed.Options{}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	state := s.Snapshot()
	log.Printf("✅ Seeded %d users, %d posts, %d friend requests, %d messages",
		len(state.Users), len(state.Posts), len(state.FriendRequests), len(state.Messages))
}
