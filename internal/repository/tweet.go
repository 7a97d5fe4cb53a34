package repository

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TweetRepository defines interface for tweet operations
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, opts ListOptions) ([]models.Tweet, int64, error)
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tweetRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewTweetRepository creates a new TweetRepository
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db, log: observability.NewRepoLogger("tweets")}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(tweet).Error; err != nil {
		return mapError(err, "Tweet", tweet.ID)
	}
	r.log.LogCreate(ctx, map[string]any{"id": tweet.ID, "owner_id": tweet.OwnerID})
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).Preload("Owner", profile).First(&tweet, "id = ?", id).Error; err != nil {
		return nil, mapError(err, "Tweet", id)
	}
	return &tweet, nil
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, opts ListOptions) ([]models.Tweet, int64, error) {
	defer observability.TrackQuery("list", "tweets")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Tweet{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, internal(err)
	}

	var tweets []models.Tweet
	err := paginate(r.db.WithContext(ctx).Where("owner_id = ?", ownerID), "tweets", opts).
		Preload("Owner", profile).
		Find(&tweets).Error
	if err != nil {
		return nil, 0, internal(err)
	}
	return tweets, total, nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(tweet).Error; err != nil {
		return mapError(err, "Tweet", tweet.ID)
	}
	r.log.LogUpdate(ctx, map[string]any{"id": tweet.ID})
	return nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteLikesOf(tx, models.LikeKindTweet, id); err != nil {
			return err
		}
		return tx.Delete(&models.Tweet{}, "id = ?", id).Error
	})
	if err != nil {
		return mapError(err, "Tweet", id)
	}
	r.log.LogDelete(ctx, map[string]any{"id": id})
	return nil
}
