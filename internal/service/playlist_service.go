package service

import (
	"context"
	"strings"

	"videotube/internal/models"
	"videotube/internal/repository"

	"github.com/google/uuid"
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	userRepo     repository.UserRepository
}

type CreatePlaylistInput struct {
	UserID      uuid.UUID
	Name        string
	Description string
}

type UpdatePlaylistInput struct {
	UserID      uuid.UUID
	PlaylistID  uuid.UUID
	Name        *string
	Description *string
}

// PlaylistVideoInput names one video in one playlist.
type PlaylistVideoInput struct {
	UserID     uuid.UUID
	PlaylistID uuid.UUID
	VideoID    uuid.UUID
}

func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		userRepo:     userRepo,
	}
}

func (s *PlaylistService) CreatePlaylist(ctx context.Context, in CreatePlaylistInput) (*models.Playlist, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if name == "" || description == "" {
		return nil, models.NewValidationError("Name and description are required")
	}

	playlist := &models.Playlist{Name: name, Description: description, OwnerID: in.UserID}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) GetPlaylist(ctx context.Context, playlistID uuid.UUID) (*models.Playlist, error) {
	return s.playlistRepo.GetByID(ctx, playlistID)
}

func (s *PlaylistService) ListUserPlaylists(ctx context.Context, userID uuid.UUID, q PageQuery) (*models.Page[models.Playlist], error) {
	req, err := q.resolve(timeSortColumns)
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	playlists, total, err := s.playlistRepo.ListByOwner(ctx, userID, req.opts)
	if err != nil {
		return nil, err
	}
	return newPage(req, playlists, total), nil
}

// ownedPlaylist loads a playlist and checks that actorID owns it.
func (s *PlaylistService) ownedPlaylist(ctx context.Context, playlistID, actorID uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(playlist.OwnerID, actorID, "playlists"); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, in UpdatePlaylistInput) (*models.Playlist, error) {
	var name, description string
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		description = strings.TrimSpace(*in.Description)
	}
	if name == "" && description == "" {
		return nil, models.NewValidationError("Name or description is required")
	}

	playlist, err := s.ownedPlaylist(ctx, in.PlaylistID, in.UserID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		playlist.Name = name
	}
	if description != "" {
		playlist.Description = description
	}
	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, actorID, playlistID uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, playlistID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.playlistRepo.Delete(ctx, playlistID); err != nil {
		return nil, err
	}
	return playlist, nil
}

// AddVideo appends a video the owner can see to the playlist.
func (s *PlaylistService) AddVideo(ctx context.Context, in PlaylistVideoInput) (*models.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, in.PlaylistID, in.UserID); err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.videoRepo, in.VideoID, in.UserID); err != nil {
		return nil, err
	}
	if err := s.playlistRepo.AddVideo(ctx, in.PlaylistID, in.VideoID); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByID(ctx, in.PlaylistID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, in PlaylistVideoInput) (*models.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, in.PlaylistID, in.UserID); err != nil {
		return nil, err
	}
	if err := s.playlistRepo.RemoveVideo(ctx, in.PlaylistID, in.VideoID); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByID(ctx, in.PlaylistID)
}
