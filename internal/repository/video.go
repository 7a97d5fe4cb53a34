package repository

import (
	"context"
	"strings"

	"videotube/internal/models"
	"videotube/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoFilter selects the videos of one channel. Search matches title or
// description case-insensitively.
type VideoFilter struct {
	OwnerID            uuid.UUID
	IncludeUnpublished bool
	Search             string
}

// VideoRepository defines interface for video operations
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter VideoFilter, opts ListOptions) ([]models.Video, int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Video, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	SumViewsByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type videoRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewVideoRepository creates a new VideoRepository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db, log: observability.NewRepoLogger("videos")}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(video).Error; err != nil {
		return mapError(err, "Video", video.ID)
	}
	r.log.LogCreate(ctx, map[string]any{"id": video.ID, "owner_id": video.OwnerID})
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).Preload("Owner", profile).First(&video, "id = ?", id).Error; err != nil {
		return nil, mapError(err, "Video", id)
	}
	return &video, nil
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(video).Error; err != nil {
		return mapError(err, "Video", video.ID)
	}
	r.log.LogUpdate(ctx, map[string]any{"id": video.ID})
	return nil
}

// Delete removes the video along with its comments, likes and playlist links.
func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := tx.Model(&models.Comment{}).Select("id").Where("video_id = ?", id)
		if err := deleteLikesOf(tx, models.LikeKindComment, comments); err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := deleteLikesOf(tx, models.LikeKindVideo, id); err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Video{}, "id = ?", id).Error
	})
	if err != nil {
		return mapError(err, "Video", id)
	}
	r.log.LogDelete(ctx, map[string]any{"id": id})
	return nil
}

// IncrementViews bumps the view counter in place.
func (r *videoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Video", id)
	}
	return nil
}

func (r *videoRepository) filtered(ctx context.Context, filter VideoFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Video{}).Where("videos.owner_id = ?", filter.OwnerID)
	if !filter.IncludeUnpublished {
		q = q.Where("videos.is_published = ?", true)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		q = q.Where("(LOWER(videos.title) LIKE ? ESCAPE '\\' OR LOWER(videos.description) LIKE ? ESCAPE '\\')", pattern, pattern)
	}
	return q
}

func (r *videoRepository) List(ctx context.Context, filter VideoFilter, opts ListOptions) ([]models.Video, int64, error) {
	defer observability.TrackQuery("list", "videos")()

	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, internal(err)
	}

	var videos []models.Video
	err := paginate(r.filtered(ctx, filter), "videos", opts).
		Preload("Owner", profile).
		Find(&videos).Error
	if err != nil {
		return nil, 0, internal(err)
	}
	return videos, total, nil
}

func (r *videoRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []models.Video
	if err := r.db.WithContext(ctx).Preload("Owner", profile).Where("id IN ?", ids).Find(&videos).Error; err != nil {
		return nil, internal(err)
	}
	return videos, nil
}

func (r *videoRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		return 0, internal(err)
	}
	return count, nil
}

func (r *videoRepository) SumViewsByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Video{}).
		Select("COALESCE(SUM(views), 0)").
		Where("owner_id = ?", ownerID).
		Scan(&total).Error
	if err != nil {
		return 0, internal(err)
	}
	return total, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
