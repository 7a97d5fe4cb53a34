package service

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"
	"videotube/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

type ToggleSubscriptionInput struct {
	SubscriberID uuid.UUID
	ChannelID    uuid.UUID
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// ToggleSubscription subscribes to the channel or cancels an existing
// subscription.
func (s *SubscriptionService) ToggleSubscription(ctx context.Context, in ToggleSubscriptionInput) (*ToggleResult[models.Subscription], error) {
	if in.SubscriberID == in.ChannelID {
		return nil, models.NewValidationError("You cannot subscribe to your own channel")
	}

	span, ctx := observability.NewSpan(ctx, "subscription.toggle",
		attribute.String("subscription.channel_id", in.ChannelID.String()),
	)
	defer span.End()

	if err := requireUser(ctx, s.userRepo, in.ChannelID); err != nil {
		span.SetError(err)
		return nil, err
	}

	sub := &models.Subscription{SubscriberID: in.SubscriberID, ChannelID: in.ChannelID}
	outcome, err := s.subRepo.Toggle(ctx, sub)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	span.AddAttributes(attribute.String("toggle.outcome", string(outcome)))
	observability.RelationToggles.WithLabelValues("subscription", string(outcome)).Inc()

	return &ToggleResult[models.Subscription]{Outcome: outcome, Record: sub}, nil
}

// ListChannelSubscribers pages through the subscribers of the caller's own channel.
func (s *SubscriptionService) ListChannelSubscribers(ctx context.Context, actorID, channelID uuid.UUID, q PageQuery) (*models.Page[models.Subscription], error) {
	if err := authorizeSelf(channelID, actorID, "You can only see the subscribers of your own channel"); err != nil {
		return nil, err
	}
	req, err := q.resolve(timeSortColumns)
	if err != nil {
		return nil, err
	}
	subs, total, err := s.subRepo.ListSubscribers(ctx, channelID, req.opts)
	if err != nil {
		return nil, err
	}
	return newPage(req, subs, total), nil
}

// ListSubscribedChannels pages through the channels the caller subscribes to.
func (s *SubscriptionService) ListSubscribedChannels(ctx context.Context, actorID, subscriberID uuid.UUID, q PageQuery) (*models.Page[models.Subscription], error) {
	if err := authorizeSelf(subscriberID, actorID, "You can only see your own subscriptions"); err != nil {
		return nil, err
	}
	req, err := q.resolve(timeSortColumns)
	if err != nil {
		return nil, err
	}
	subs, total, err := s.subRepo.ListSubscribedChannels(ctx, subscriberID, req.opts)
	if err != nil {
		return nil, err
	}
	return newPage(req, subs, total), nil
}
