// Command main runs the database seeder for VideoTube.
package main

import (
	"context"
	"flag"
	"log"

	"videotube/internal/config"
	"videotube/internal/database"
	"videotube/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of channels to create")
	videosPerUser := flag.Int("videos", 5, "Videos per channel")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Printf("Target: %d users, %d videos each, clean=%v\n", *numUsers, *videosPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	summary, err := s.Seed(ctx, seed.Options{
		NumUsers:      *numUsers,
		VideosPerUser: *videosPerUser,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! %s", summary)
}
