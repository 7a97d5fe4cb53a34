package repository

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaylistRepository defines interface for playlist operations. Playlists are
// returned with their videos attached in playlist order.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, opts ListOptions) ([]models.Playlist, int64, error)
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
}

type playlistRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPlaylistRepository creates a new PlaylistRepository
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db, log: observability.NewRepoLogger("playlists")}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return mapError(err, "Playlist", playlist.ID)
	}
	playlist.Videos = []models.Video{}
	r.log.LogCreate(ctx, map[string]any{"id": playlist.ID, "owner_id": playlist.OwnerID})
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, "id = ?", id).Error; err != nil {
		return nil, mapError(err, "Playlist", id)
	}
	playlists := []models.Playlist{playlist}
	if err := r.attachVideos(ctx, playlists); err != nil {
		return nil, err
	}
	return &playlists[0], nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, opts ListOptions) ([]models.Playlist, int64, error) {
	defer observability.TrackQuery("list", "playlists")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Playlist{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, internal(err)
	}

	var playlists []models.Playlist
	if err := paginate(r.db.WithContext(ctx).Where("owner_id = ?", ownerID), "playlists", opts).Find(&playlists).Error; err != nil {
		return nil, 0, internal(err)
	}
	if err := r.attachVideos(ctx, playlists); err != nil {
		return nil, 0, err
	}
	return playlists, total, nil
}

// attachVideos fills Videos for every playlist in membership order. Videos
// that no longer exist, and unpublished videos of other channels, are left out.
func (r *playlistRepository) attachVideos(ctx context.Context, playlists []models.Playlist) error {
	if len(playlists) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(playlists))
	for i := range playlists {
		ids[i] = playlists[i].ID
		playlists[i].Videos = []models.Video{}
	}

	var links []models.PlaylistVideo
	err := r.db.WithContext(ctx).
		Where("playlist_id IN ?", ids).
		Order("position ASC").Order("created_at ASC").
		Find(&links).Error
	if err != nil || len(links) == 0 {
		return internal(err)
	}

	videoIDs := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		videoIDs = append(videoIDs, l.VideoID)
	}
	var videos []models.Video
	if err := r.db.WithContext(ctx).Where("id IN ?", videoIDs).Find(&videos).Error; err != nil {
		return internal(err)
	}
	byID := make(map[uuid.UUID]models.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	index := make(map[uuid.UUID]int, len(playlists))
	for i := range playlists {
		index[playlists[i].ID] = i
	}
	for _, l := range links {
		p := &playlists[index[l.PlaylistID]]
		v, ok := byID[l.VideoID]
		if !ok || (!v.IsPublished && v.OwnerID != p.OwnerID) {
			continue
		}
		p.Videos = append(p.Videos, v)
	}
	return nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	if err := r.db.WithContext(ctx).Save(playlist).Error; err != nil {
		return mapError(err, "Playlist", playlist.ID)
	}
	r.log.LogUpdate(ctx, map[string]any{"id": playlist.ID})
	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Playlist{}, "id = ?", id).Error
	})
	if err != nil {
		return mapError(err, "Playlist", id)
	}
	r.log.LogDelete(ctx, map[string]any{"id": id})
	return nil
}

// AddVideo appends videoID to the end of the playlist. Adding a video that is
// already present is a Conflict.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&models.PlaylistVideo{}).
			Select("COALESCE(MAX(position), 0)").
			Where("playlist_id = ?", playlistID).
			Scan(&last).Error; err != nil {
			return err
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.PlaylistVideo{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   last + 1,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewConflictError("Video already exists in the playlist")
		}
		return nil
	})
	if err != nil {
		return internal(err)
	}
	r.log.LogUpdate(ctx, map[string]any{"id": playlistID, "added_video_id": videoID})
	return nil
}

// RemoveVideo drops videoID from the playlist; the remaining order is kept.
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&models.PlaylistVideo{})
	if res.Error != nil {
		return internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Video in playlist", videoID)
	}
	r.log.LogUpdate(ctx, map[string]any{"id": playlistID, "removed_video_id": videoID})
	return nil
}
