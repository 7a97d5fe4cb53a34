package repository

import (
	"context"
	"testing"

	"videotube/internal/database"
	"videotube/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB returns a migrated in-memory SQLite database. A single connection
// keeps every query on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return gormDB, mock
}

func createUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Username: gofakeit.Username() + uuid.NewString()[:8],
		Email:    uuid.NewString() + "@example.com",
		FullName: gofakeit.Name(),
		Avatar:   gofakeit.URL(),
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createVideo(t *testing.T, db *gorm.DB, owner uuid.UUID, title string, published bool, overrides ...func(*models.Video)) *models.Video {
	t.Helper()
	video := &models.Video{
		VideoFile:   "https://media.example.com/videos/" + uuid.NewString() + ".mp4",
		Thumbnail:   "https://media.example.com/images/" + uuid.NewString() + ".jpg",
		Title:       title,
		Description: gofakeit.Sentence(8),
		Duration:    12.5,
		IsPublished: published,
		OwnerID:     owner,
	}
	for _, o := range overrides {
		o(video)
	}
	require.NoError(t, NewVideoRepository(db).Create(context.Background(), video))
	return video
}

func createComment(t *testing.T, db *gorm.DB, video, owner uuid.UUID, overrides ...func(*models.Comment)) *models.Comment {
	t.Helper()
	comment := &models.Comment{Content: gofakeit.Sentence(6), VideoID: video, OwnerID: owner}
	for _, o := range overrides {
		o(comment)
	}
	require.NoError(t, NewCommentRepository(db).Create(context.Background(), comment))
	return comment
}

func createTweet(t *testing.T, db *gorm.DB, owner uuid.UUID, overrides ...func(*models.Tweet)) *models.Tweet {
	t.Helper()
	tweet := &models.Tweet{Content: gofakeit.Sentence(6), OwnerID: owner}
	for _, o := range overrides {
		o(tweet)
	}
	require.NoError(t, NewTweetRepository(db).Create(context.Background(), tweet))
	return tweet
}

// insertLike writes a like row directly, bypassing the target check, to model
// likes whose target was hidden or removed afterwards.
func insertLike(t *testing.T, db *gorm.DB, user uuid.UUID, target models.LikeTarget) {
	t.Helper()
	require.NoError(t, db.Create(&models.Like{LikedByID: user, Target: target}).Error)
}
