package server

import (
	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreatePlaylist handles POST /api/v1/playlist
// @Summary Create a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Param request body createPlaylistRequest true "Playlist"
// @Success 201 {object} models.APIResponse{data=models.Playlist}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /playlist [post]
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var req createPlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	playlist, err := s.playlistService.CreatePlaylist(ctx, service.CreatePlaylistInput{
		UserID:      middleware.UserID(c),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, playlist, "Playlist created successfully")
}

// ListUserPlaylists handles GET /api/v1/playlist/user/:userId
func (s *Server) ListUserPlaylists(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	q, err := parsePageQuery(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, err := s.playlistService.ListUserPlaylists(ctx, userID, q)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Playlists fetched successfully")
}

// GetPlaylist handles GET /api/v1/playlist/:playlistId
func (s *Server) GetPlaylist(c *fiber.Ctx) error {
	ctx := c.UserContext()
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.GetPlaylist(ctx, playlistID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist fetched successfully")
}

// UpdatePlaylist handles PATCH /api/v1/playlist/:playlistId
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	ctx := c.UserContext()
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	var req updatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	playlist, err := s.playlistService.UpdatePlaylist(ctx, service.UpdatePlaylistInput{
		UserID:      middleware.UserID(c),
		PlaylistID:  playlistID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist updated successfully")
}

// DeletePlaylist handles DELETE /api/v1/playlist/:playlistId
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	ctx := c.UserContext()
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.DeletePlaylist(ctx, middleware.UserID(c), playlistID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist deleted successfully")
}

func (s *Server) playlistVideoInput(c *fiber.Ctx) (service.PlaylistVideoInput, error) {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return service.PlaylistVideoInput{}, err
	}
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return service.PlaylistVideoInput{}, err
	}
	return service.PlaylistVideoInput{
		UserID:     middleware.UserID(c),
		PlaylistID: playlistID,
		VideoID:    videoID,
	}, nil
}

// AddVideoToPlaylist handles PATCH /api/v1/playlist/add/:videoId/:playlistId
func (s *Server) AddVideoToPlaylist(c *fiber.Ctx) error {
	in, err := s.playlistVideoInput(c)
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.AddVideo(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Video added to playlist successfully")
}

// RemoveVideoFromPlaylist handles PATCH /api/v1/playlist/remove/:videoId/:playlistId
func (s *Server) RemoveVideoFromPlaylist(c *fiber.Ctx) error {
	in, err := s.playlistVideoInput(c)
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.RemoveVideo(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Video removed from playlist successfully")
}
