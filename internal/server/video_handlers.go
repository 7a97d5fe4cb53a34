package server

import (
	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListVideos handles GET /api/v1/videos
// @Summary List a channel's videos
// @Description Lists the videos of userId (default: the caller). Drafts are only listed for their owner.
// @Tags videos
// @Produce json
// @Param userId query string false "Channel ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(3)
// @Param query query string false "Title or description search"
// @Param sortBy query string false "createdAt, updatedAt, title, duration or views"
// @Param sortType query string false "asc or desc" default(desc)
// @Success 200 {object} models.APIResponse{data=models.Page[models.Video]}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /videos [get]
func (s *Server) ListVideos(c *fiber.Ctx) error {
	ctx := c.UserContext()
	channelID, err := queryID(c, "userId")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	q, err := parsePageQuery(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, err := s.videoService.ListVideos(ctx, service.ListVideosInput{
		ActorID:   middleware.UserID(c),
		ChannelID: channelID,
		Page:      q,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Videos fetched successfully")
}

// PublishVideo handles POST /api/v1/videos
// @Summary Publish a video
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param videoFile formData file true "Video file"
// @Param thumbnail formData file true "Thumbnail image"
// @Success 201 {object} models.APIResponse{data=models.Video}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /videos [post]
func (s *Server) PublishVideo(c *fiber.Ctx) error {
	ctx := c.UserContext()
	videoPath, err := s.saveUpload(c, "videoFile")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	thumbPath, err := s.saveUpload(c, "thumbnail")
	if err != nil {
		removeUpload(videoPath)
		return models.RespondWithError(c, err)
	}

	video, err := s.videoService.PublishVideo(ctx, service.PublishVideoInput{
		UserID:        middleware.UserID(c),
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, video, "Video published successfully")
}

// GetVideo handles GET /api/v1/videos/:videoId
// @Summary Get a video
// @Tags videos
// @Produce json
// @Param videoId path string true "Video ID"
// @Success 200 {object} models.APIResponse{data=models.Video}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /videos/{videoId} [get]
func (s *Server) GetVideo(c *fiber.Ctx) error {
	ctx := c.UserContext()
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	video, err := s.videoService.GetVideo(ctx, middleware.UserID(c), videoID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Video fetched successfully")
}

// UpdateVideo handles PATCH /api/v1/videos/:videoId
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	ctx := c.UserContext()
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	thumbPath, err := s.saveUpload(c, "thumbnail")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	video, err := s.videoService.UpdateVideo(ctx, service.UpdateVideoInput{
		UserID:        middleware.UserID(c),
		VideoID:       videoID,
		Title:         optionalString(c, "title"),
		Description:   optionalString(c, "description"),
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Video updated successfully")
}

// DeleteVideo handles DELETE /api/v1/videos/:videoId
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	ctx := c.UserContext()
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	video, err := s.videoService.DeleteVideo(ctx, middleware.UserID(c), videoID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Video deleted successfully")
}

// TogglePublish handles PATCH /api/v1/videos/toggle/publish/:videoId
func (s *Server) TogglePublish(c *fiber.Ctx) error {
	ctx := c.UserContext()
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	video, err := s.videoService.TogglePublish(ctx, middleware.UserID(c), videoID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	msg := "Video unpublished successfully"
	if video.IsPublished {
		msg = "Video published successfully"
	}
	return models.Respond(c, fiber.StatusOK, video, msg)
}
