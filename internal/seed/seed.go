// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"videotube/internal/models"
	"videotube/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers      int
	VideosPerUser int
	// Seed makes the generated data reproducible when non-zero.
	Seed int64
}

// Summary counts the rows one Seed run created.
type Summary struct {
	Users         int
	Videos        int
	Comments      int
	Likes         int
	Subscriptions int
	Playlists     int
	Tweets        int
}

func (s Summary) String() string {
	return fmt.Sprintf("users=%d videos=%d comments=%d likes=%d subscriptions=%d playlists=%d tweets=%d",
		s.Users, s.Videos, s.Comments, s.Likes, s.Subscriptions, s.Playlists, s.Tweets)
}

// Seeder writes fake data through the repositories so the seeded rows obey
// the same constraints as live traffic.
type Seeder struct {
	db        *gorm.DB
	users     repository.UserRepository
	videos    repository.VideoRepository
	comments  repository.CommentRepository
	likes     repository.LikeRepository
	subs      repository.SubscriptionRepository
	playlists repository.PlaylistRepository
	tweets    repository.TweetRepository
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:        db,
		users:     repository.NewUserRepository(db),
		videos:    repository.NewVideoRepository(db),
		comments:  repository.NewCommentRepository(db),
		likes:     repository.NewLikeRepository(db),
		subs:      repository.NewSubscriptionRepository(db),
		playlists: repository.NewPlaylistRepository(db),
		tweets:    repository.NewTweetRepository(db),
	}
}

// ClearAll deletes every seeded table, children first.
func (s *Seeder) ClearAll(ctx context.Context) error {
	log.Println("🗑️  Clearing existing data...")
	tables := []interface{}{
		&models.PlaylistVideo{},
		&models.Playlist{},
		&models.Like{},
		&models.Comment{},
		&models.Subscription{},
		&models.Tweet{},
		&models.Video{},
		&models.User{},
	}
	for _, t := range tables {
		if err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(t).Error; err != nil {
			return fmt.Errorf("clear %T: %w", t, err)
		}
	}
	return nil
}

// Seed creates channels with videos, then has every user comment on, like and
// subscribe to a random sample of the others.
func (s *Seeder) Seed(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary
	if opts.NumUsers <= 0 {
		return sum, nil
	}

	faker := gofakeit.New(opts.Seed)
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(opts.Seed))

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u := newUser(faker, i)
		if err := s.users.Create(ctx, u); err != nil {
			return sum, fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, u)
	}
	sum.Users = len(users)
	log.Printf("✓ %d channels created", sum.Users)

	var videos []*models.Video
	for _, u := range users {
		for j := 0; j < opts.VideosPerUser; j++ {
			v := newVideo(faker, u.ID)
			if err := s.videos.Create(ctx, v); err != nil {
				return sum, fmt.Errorf("failed to create videos: %w", err)
			}
			videos = append(videos, v)
		}
	}
	sum.Videos = len(videos)
	log.Printf("✓ %d videos created", sum.Videos)

	for _, u := range users {
		for _, v := range sample(r, visibleTo(videos, u.ID), 3) {
			c := &models.Comment{Content: faker.Sentence(10), VideoID: v.ID, OwnerID: u.ID}
			if err := s.comments.Create(ctx, c); err != nil {
				return sum, fmt.Errorf("failed to create comments: %w", err)
			}
			sum.Comments++

			like := &models.Like{LikedByID: u.ID, Target: models.LikeTarget{Kind: models.LikeKindVideo, EntityID: v.ID}}
			outcome, err := s.likes.Toggle(ctx, like)
			if err != nil {
				return sum, fmt.Errorf("failed to create likes: %w", err)
			}
			if outcome == repository.ToggleAdded {
				sum.Likes++
			}
		}

		for _, ch := range sample(r, users, 3) {
			if ch.ID == u.ID {
				continue
			}
			outcome, err := s.subs.Toggle(ctx, &models.Subscription{SubscriberID: u.ID, ChannelID: ch.ID})
			if err != nil {
				return sum, fmt.Errorf("failed to create subscriptions: %w", err)
			}
			if outcome == repository.ToggleAdded {
				sum.Subscriptions++
			}
		}

		t := &models.Tweet{Content: truncate(faker.Sentence(12), 280), OwnerID: u.ID}
		if err := s.tweets.Create(ctx, t); err != nil {
			return sum, fmt.Errorf("failed to create tweets: %w", err)
		}
		sum.Tweets++

		p := &models.Playlist{Name: faker.HipsterWord() + " mix", Description: faker.Sentence(6), OwnerID: u.ID}
		if err := s.playlists.Create(ctx, p); err != nil {
			return sum, fmt.Errorf("failed to create playlists: %w", err)
		}
		for _, v := range sample(r, videos, 2) {
			if err := s.playlists.AddVideo(ctx, p.ID, v.ID); err != nil {
				return sum, fmt.Errorf("failed to fill playlists: %w", err)
			}
		}
		sum.Playlists++
	}

	log.Printf("🎉 Database seeding completed: %s", sum)
	return sum, nil
}

func newUser(faker *gofakeit.Faker, i int) *models.User {
	first, last := faker.FirstName(), faker.LastName()
	return &models.User{
		// The index suffix keeps usernames and emails unique within a run.
		Username: fmt.Sprintf("%s%d", faker.Username(), i),
		Email:    fmt.Sprintf("user%d.%s@videotube.dev", i, faker.LetterN(6)),
		FullName: first + " " + last,
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s%d", last, i),
	}
}

func newVideo(faker *gofakeit.Faker, owner uuid.UUID) *models.Video {
	slug := uuid.NewString()
	return &models.Video{
		VideoFile:   "http://localhost:9000/videotube/videos/" + slug + ".mp4",
		Thumbnail:   "http://localhost:9000/videotube/images/" + slug + ".webp",
		Title:       truncate(faker.Sentence(5), 120),
		Description: faker.Paragraph(1, 3, 12, " "),
		Duration:    faker.Float64Range(15, 1800),
		Views:       int64(faker.Number(0, 50000)),
		IsPublished: faker.Number(1, 10) > 2,
		OwnerID:     owner,
	}
}

// visibleTo keeps the videos user may interact with: published ones and
// their own drafts.
func visibleTo(videos []*models.Video, user uuid.UUID) []*models.Video {
	out := make([]*models.Video, 0, len(videos))
	for _, v := range videos {
		if v.IsPublished || v.OwnerID == user {
			out = append(out, v)
		}
	}
	return out
}

func sample[T any](r *rand.Rand, items []T, n int) []T {
	if n >= len(items) {
		return items
	}
	out := make([]T, 0, n)
	for _, i := range r.Perm(len(items))[:n] {
		out = append(out, items[i])
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
