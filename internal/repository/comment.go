package repository

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID, opts ListOptions) ([]models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db, log: observability.NewRepoLogger("comments")}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return mapError(err, "Comment", comment.ID)
	}
	r.log.LogCreate(ctx, map[string]any{"id": comment.ID, "video_id": comment.VideoID})
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Owner", profile).First(&comment, "id = ?", id).Error; err != nil {
		return nil, mapError(err, "Comment", id)
	}
	return &comment, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, opts ListOptions) ([]models.Comment, int64, error) {
	defer observability.TrackQuery("list", "comments")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("video_id = ?", videoID).Count(&total).Error; err != nil {
		return nil, 0, internal(err)
	}

	var comments []models.Comment
	err := paginate(r.db.WithContext(ctx).Where("video_id = ?", videoID), "comments", opts).
		Preload("Owner", profile).
		Find(&comments).Error
	if err != nil {
		return nil, 0, internal(err)
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error; err != nil {
		return mapError(err, "Comment", comment.ID)
	}
	r.log.LogUpdate(ctx, map[string]any{"id": comment.ID})
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteLikesOf(tx, models.LikeKindComment, id); err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, "id = ?", id).Error
	})
	if err != nil {
		return mapError(err, "Comment", id)
	}
	r.log.LogDelete(ctx, map[string]any{"id": id})
	return nil
}
