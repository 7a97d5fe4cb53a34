package server

import (
	"videotube/internal/middleware"
	"videotube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ChannelStats handles GET /api/v1/dashboard/stats
// @Summary Caller's channel statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.APIResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (s *Server) ChannelStats(c *fiber.Ctx) error {
	stats, err := s.dashboardService.ChannelStats(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, stats, "Channel stats fetched successfully")
}

// ChannelVideos handles GET /api/v1/dashboard/videos
func (s *Server) ChannelVideos(c *fiber.Ctx) error {
	videos, err := s.dashboardService.ChannelVideos(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, videos, "Channel videos fetched successfully")
}
