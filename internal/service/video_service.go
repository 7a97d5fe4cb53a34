package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"videotube/internal/media"
	"videotube/internal/models"
	"videotube/internal/observability"
	"videotube/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type VideoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	uploader  media.Uploader
}

// PublishVideoInput carries the temp paths of the uploaded files. The service
// owns those files and removes them in every outcome.
type PublishVideoInput struct {
	UserID        uuid.UUID
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateVideoInput replaces only the fields that are set.
type UpdateVideoInput struct {
	UserID        uuid.UUID
	VideoID       uuid.UUID
	Title         *string
	Description   *string
	ThumbnailPath string
}

type ListVideosInput struct {
	ActorID uuid.UUID
	// ChannelID defaults to the actor when nil.
	ChannelID uuid.UUID
	Page      PageQuery
}

func NewVideoService(videoRepo repository.VideoRepository, userRepo repository.UserRepository, uploader media.Uploader) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		uploader:  uploader,
	}
}

// upload stores one file, mapping media errors onto application errors.
func (s *VideoService) upload(ctx context.Context, path, what string) (*media.UploadResult, error) {
	res, err := s.uploader.Upload(ctx, path)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedMedia) {
			return nil, models.NewValidationError("Unsupported " + what + " format")
		}
		slog.ErrorContext(ctx, "media upload failed", slog.String("kind", what), slog.String("error", err.Error()))
		return nil, models.NewInternalError(err)
	}
	return res, nil
}

// discardObjects removes stored media that no video ended up referencing.
// Failures are logged and otherwise ignored.
func (s *VideoService) discardObjects(ctx context.Context, urls ...string) {
	ctx = context.WithoutCancel(ctx)
	for _, url := range urls {
		if err := s.uploader.Delete(ctx, url); err != nil {
			slog.WarnContext(ctx, "failed to remove orphaned media", slog.String("url", url), slog.String("error", err.Error()))
		}
	}
}

func (s *VideoService) PublishVideo(ctx context.Context, in PublishVideoInput) (*models.Video, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	switch {
	case title == "" || description == "":
		discard(in.VideoPath, in.ThumbnailPath)
		return nil, models.NewValidationError("Title and description are required")
	case in.VideoPath == "":
		discard(in.ThumbnailPath)
		return nil, models.NewValidationError("Video file is required")
	case in.ThumbnailPath == "":
		discard(in.VideoPath)
		return nil, models.NewValidationError("Thumbnail is required")
	}

	span, ctx := observability.NewSpan(ctx, "video.publish", attribute.String("video.owner_id", in.UserID.String()))
	defer span.End()

	videoFile, err := s.upload(ctx, in.VideoPath, "video")
	if err != nil {
		discard(in.ThumbnailPath)
		span.SetError(err)
		return nil, err
	}
	thumbnail, err := s.upload(ctx, in.ThumbnailPath, "thumbnail")
	if err != nil {
		s.discardObjects(ctx, videoFile.URL)
		span.SetError(err)
		return nil, err
	}

	video := &models.Video{
		VideoFile:   videoFile.URL,
		Thumbnail:   thumbnail.URL,
		Title:       title,
		Description: description,
		Duration:    videoFile.Duration,
		IsPublished: true,
		OwnerID:     in.UserID,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		s.discardObjects(ctx, videoFile.URL, thumbnail.URL)
		span.SetError(err)
		return nil, err
	}
	return s.videoRepo.GetByID(ctx, video.ID)
}

// GetVideo returns a video visible to the actor and counts a view when the
// actor is not the owner.
func (s *VideoService) GetVideo(ctx context.Context, actorID, videoID uuid.UUID) (*models.Video, error) {
	video, err := visibleVideo(ctx, s.videoRepo, videoID, actorID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != actorID {
		if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
			return nil, err
		}
		video.Views++
	}
	return video, nil
}

func (s *VideoService) UpdateVideo(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, in.VideoID)
	if err != nil {
		discard(in.ThumbnailPath)
		return nil, err
	}
	if err := authorizeOwner(video.OwnerID, in.UserID, "videos"); err != nil {
		discard(in.ThumbnailPath)
		return nil, err
	}

	if in.Title != nil {
		if t := strings.TrimSpace(*in.Title); t != "" {
			video.Title = t
		}
	}
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			video.Description = d
		}
	}
	var uploaded string
	if in.ThumbnailPath != "" {
		thumbnail, err := s.upload(ctx, in.ThumbnailPath, "thumbnail")
		if err != nil {
			return nil, err
		}
		uploaded = thumbnail.URL
		video.Thumbnail = uploaded
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		if uploaded != "" {
			s.discardObjects(ctx, uploaded)
		}
		return nil, err
	}
	return video, nil
}

func (s *VideoService) DeleteVideo(ctx context.Context, actorID, videoID uuid.UUID) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(video.OwnerID, actorID, "videos"); err != nil {
		return nil, err
	}
	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) TogglePublish(ctx context.Context, actorID, videoID uuid.UUID) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(video.OwnerID, actorID, "videos"); err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// ListVideos pages through one channel's videos. Only the owner sees
// unpublished videos.
func (s *VideoService) ListVideos(ctx context.Context, in ListVideosInput) (*models.Page[models.Video], error) {
	req, err := in.Page.resolve(videoSortColumns)
	if err != nil {
		return nil, err
	}
	channelID := in.ChannelID
	if channelID == uuid.Nil {
		channelID = in.ActorID
	}
	if err := requireUser(ctx, s.userRepo, channelID); err != nil {
		return nil, err
	}

	filter := repository.VideoFilter{
		OwnerID:            channelID,
		IncludeUnpublished: channelID == in.ActorID,
		Search:             in.Page.Query,
	}
	videos, total, err := s.videoRepo.List(ctx, filter, req.opts)
	if err != nil {
		return nil, err
	}
	return newPage(req, videos, total), nil
}
