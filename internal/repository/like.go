package repository

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeRepository defines interface for like operations
type LikeRepository interface {
	Toggle(ctx context.Context, like *models.Like) (ToggleOutcome, error)
	ListLikedVideos(ctx context.Context, userID uuid.UUID, opts ListOptions) ([]models.Like, int64, error)
	CountReceivedByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type likeRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db, log: observability.NewRepoLogger("likes")}
}

// Toggle adds the like when absent and removes it when present. like must
// carry LikedByID and Target; on return it holds the affected record. A like
// is only added when its target exists and, for videos, is visible to the
// liker. Removal never looks at the target, so likes on targets that were
// since hidden can still be taken back.
func (r *likeRepository) Toggle(ctx context.Context, like *models.Like) (ToggleOutcome, error) {
	outcome, err := toggleRow(ctx, r.db, like, map[string]any{
		"liked_by_id": like.LikedByID,
		"target_kind": like.Target.Kind,
		"target_id":   like.Target.EntityID,
	}, func(tx *gorm.DB) error {
		return requireLikeTarget(tx, like)
	})
	if err != nil {
		r.log.LogError(ctx, err, "toggle")
		return "", err
	}
	r.log.LogToggle(ctx, string(outcome), map[string]any{
		"liked_by_id": like.LikedByID,
		"target_kind": like.Target.Kind,
		"target_id":   like.Target.EntityID,
	})
	return outcome, nil
}

func (r *likeRepository) likedVideos(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Like{}).
		Joins("JOIN videos ON videos.id = likes.target_id").
		Where("likes.liked_by_id = ? AND likes.target_kind = ?", userID, models.LikeKindVideo).
		Where("videos.is_published = ? OR videos.owner_id = ?", true, userID)
}

// ListLikedVideos returns the user's video likes, newest first, each with its
// video attached. Likes whose video no longer exists are skipped.
func (r *likeRepository) ListLikedVideos(ctx context.Context, userID uuid.UUID, opts ListOptions) ([]models.Like, int64, error) {
	defer observability.TrackQuery("list_liked_videos", "likes")()

	var total int64
	if err := r.likedVideos(ctx, userID).Count(&total).Error; err != nil {
		return nil, 0, internal(err)
	}

	var likes []models.Like
	if err := paginate(r.likedVideos(ctx, userID).Select("likes.*"), "likes", opts).Find(&likes).Error; err != nil {
		return nil, 0, internal(err)
	}

	ids := make([]uuid.UUID, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.Target.EntityID)
	}
	var videos []models.Video
	if len(ids) > 0 {
		if err := r.db.WithContext(ctx).Preload("Owner", profile).Where("id IN ?", ids).Find(&videos).Error; err != nil {
			return nil, 0, internal(err)
		}
	}
	byID := make(map[uuid.UUID]*models.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}

	out := likes[:0]
	for _, l := range likes {
		if v, ok := byID[l.Target.EntityID]; ok {
			l.Video = v
			out = append(out, l)
		}
	}
	return out, total, nil
}

// CountReceivedByOwner counts likes on every video owned by ownerID.
func (r *likeRepository) CountReceivedByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Joins("JOIN videos ON videos.id = likes.target_id").
		Where("likes.target_kind = ? AND videos.owner_id = ?", models.LikeKindVideo, ownerID).
		Count(&count).Error
	if err != nil {
		return 0, internal(err)
	}
	return count, nil
}

// requireLikeTarget fails with NotFound unless the liked entity exists. Videos
// must also be published or owned by the liker.
func requireLikeTarget(tx *gorm.DB, like *models.Like) error {
	id := like.Target.EntityID
	var (
		q        *gorm.DB
		resource string
	)
	switch like.Target.Kind {
	case models.LikeKindVideo:
		q = tx.Model(&models.Video{}).
			Where("id = ?", id).
			Where("is_published = ? OR owner_id = ?", true, like.LikedByID)
		resource = "Video"
	case models.LikeKindComment:
		q = tx.Model(&models.Comment{}).Where("id = ?", id)
		resource = "Comment"
	case models.LikeKindTweet:
		q = tx.Model(&models.Tweet{}).Where("id = ?", id)
		resource = "Tweet"
	default:
		return like.Target.Validate()
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return models.NewNotFoundError(resource, id)
	}
	return nil
}

// deleteLikesOf removes every like pointing at the given targets. targets is
// an id or a subquery selecting ids.
func deleteLikesOf(tx *gorm.DB, kind models.LikeKind, targets any) error {
	return tx.Where("target_kind = ? AND target_id IN (?)", kind, targets).Delete(&models.Like{}).Error
}
