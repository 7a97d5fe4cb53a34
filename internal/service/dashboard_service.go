package service

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/repository"

	"github.com/google/uuid"
)

// ChannelStats summarises a channel for its owner.
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
}

type DashboardService struct {
	videoRepo repository.VideoRepository
	likeRepo  repository.LikeRepository
	subRepo   repository.SubscriptionRepository
}

func NewDashboardService(
	videoRepo repository.VideoRepository,
	likeRepo repository.LikeRepository,
	subRepo repository.SubscriptionRepository,
) *DashboardService {
	return &DashboardService{
		videoRepo: videoRepo,
		likeRepo:  likeRepo,
		subRepo:   subRepo,
	}
}

func (s *DashboardService) ChannelStats(ctx context.Context, channelID uuid.UUID) (*ChannelStats, error) {
	var (
		stats ChannelStats
		err   error
	)
	if stats.TotalSubscribers, err = s.subRepo.CountSubscribers(ctx, channelID); err != nil {
		return nil, err
	}
	if stats.TotalVideos, err = s.videoRepo.CountByOwner(ctx, channelID); err != nil {
		return nil, err
	}
	if stats.TotalViews, err = s.videoRepo.SumViewsByOwner(ctx, channelID); err != nil {
		return nil, err
	}
	if stats.TotalLikes, err = s.likeRepo.CountReceivedByOwner(ctx, channelID); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ChannelVideos returns every video of the channel, newest first, including
// unpublished ones.
func (s *DashboardService) ChannelVideos(ctx context.Context, channelID uuid.UUID) ([]models.Video, error) {
	filter := repository.VideoFilter{OwnerID: channelID, IncludeUnpublished: true}
	videos, _, err := s.videoRepo.List(ctx, filter, repository.ListOptions{SortColumn: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []models.Video{}
	}
	return videos, nil
}
