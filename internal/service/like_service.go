package service

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"
	"videotube/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type LikeService struct {
	likeRepo repository.LikeRepository
}

type ToggleLikeInput struct {
	UserID uuid.UUID
	Target models.LikeTarget
}

// ToggleResult is the outcome of a relationship toggle together with the
// record that was added or removed.
type ToggleResult[T any] struct {
	Outcome repository.ToggleOutcome
	Record  *T
}

// Added reports whether the toggle created the relationship.
func (r *ToggleResult[T]) Added() bool {
	return r.Outcome == repository.ToggleAdded
}

func NewLikeService(likeRepo repository.LikeRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo}
}

// ToggleLike likes the target when the user has not liked it yet and unlikes
// it otherwise. Liking requires the target to exist and be visible to the
// user; unliking always succeeds.
func (s *LikeService) ToggleLike(ctx context.Context, in ToggleLikeInput) (*ToggleResult[models.Like], error) {
	if err := in.Target.Validate(); err != nil {
		return nil, err
	}

	span, ctx := observability.NewSpan(ctx, "like.toggle",
		attribute.String("like.kind", string(in.Target.Kind)),
		attribute.String("like.target_id", in.Target.EntityID.String()),
	)
	defer span.End()

	like := &models.Like{LikedByID: in.UserID, Target: in.Target}
	outcome, err := s.likeRepo.Toggle(ctx, like)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	span.AddAttributes(attribute.String("toggle.outcome", string(outcome)))
	observability.RelationToggles.WithLabelValues(string(in.Target.Kind), string(outcome)).Inc()

	return &ToggleResult[models.Like]{Outcome: outcome, Record: like}, nil
}

// ListLikedVideos pages through the videos the user liked.
func (s *LikeService) ListLikedVideos(ctx context.Context, userID uuid.UUID, q PageQuery) (*models.Page[models.Like], error) {
	req, err := q.resolve(timeSortColumns)
	if err != nil {
		return nil, err
	}
	likes, total, err := s.likeRepo.ListLikedVideos(ctx, userID, req.opts)
	if err != nil {
		return nil, err
	}
	return newPage(req, likes, total), nil
}
