package repository

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionRepository defines interface for subscription operations
type SubscriptionRepository interface {
	Toggle(ctx context.Context, sub *models.Subscription) (ToggleOutcome, error)
	ListSubscribers(ctx context.Context, channelID uuid.UUID, opts ListOptions) ([]models.Subscription, int64, error)
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, opts ListOptions) ([]models.Subscription, int64, error)
	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error)
}

type subscriptionRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db, log: observability.NewRepoLogger("subscriptions")}
}

func (r *subscriptionRepository) Toggle(ctx context.Context, sub *models.Subscription) (ToggleOutcome, error) {
	outcome, err := toggleRow(ctx, r.db, sub, map[string]any{
		"subscriber_id": sub.SubscriberID,
		"channel_id":    sub.ChannelID,
	}, nil)
	if err != nil {
		r.log.LogError(ctx, err, "toggle")
		return "", err
	}
	r.log.LogToggle(ctx, string(outcome), map[string]any{
		"subscriber_id": sub.SubscriberID,
		"channel_id":    sub.ChannelID,
	})
	return outcome, nil
}

func (r *subscriptionRepository) list(ctx context.Context, column string, id uuid.UUID, preload string, opts ListOptions) ([]models.Subscription, int64, error) {
	defer observability.TrackQuery("list_by_"+column, "subscriptions")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).Where(column+" = ?", id).Count(&total).Error; err != nil {
		return nil, 0, internal(err)
	}

	var subs []models.Subscription
	err := paginate(r.db.WithContext(ctx).Where(column+" = ?", id), "subscriptions", opts).
		Preload(preload, profile).
		Find(&subs).Error
	if err != nil {
		return nil, 0, internal(err)
	}
	return subs, total, nil
}

// ListSubscribers returns the channel's subscriptions with subscriber profiles.
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID, opts ListOptions) ([]models.Subscription, int64, error) {
	return r.list(ctx, "channel_id", channelID, "Subscriber", opts)
}

// ListSubscribedChannels returns the subscriber's subscriptions with channel profiles.
func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, opts ListOptions) ([]models.Subscription, int64, error) {
	return r.list(ctx, "subscriber_id", subscriberID, "Channel", opts)
}

func (r *subscriptionRepository) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error; err != nil {
		return 0, internal(err)
	}
	return count, nil
}
