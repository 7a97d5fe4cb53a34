package server

import (
	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleSubscription handles POST /api/v1/subscriptions/c/:channelId
// @Summary Subscribe to or unsubscribe from a channel
// @Tags subscriptions
// @Produce json
// @Param channelId path string true "Channel ID"
// @Success 200 {object} models.APIResponse{data=models.Subscription}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/c/{channelId} [post]
func (s *Server) ToggleSubscription(c *fiber.Ctx) error {
	ctx := c.UserContext()
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}

	res, err := s.subscriptionService.ToggleSubscription(ctx, service.ToggleSubscriptionInput{
		SubscriberID: middleware.UserID(c),
		ChannelID:    channelID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if res.Added() {
		return models.Respond(c, fiber.StatusOK, res.Record, "Subscribed successfully")
	}
	return models.Respond(c, fiber.StatusOK, res.Record, "Unsubscribed successfully")
}

// ListChannelSubscribers handles GET /api/v1/subscriptions/c/:channelId/subscribers
func (s *Server) ListChannelSubscribers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}
	q, err := parsePageQuery(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, err := s.subscriptionService.ListChannelSubscribers(ctx, middleware.UserID(c), channelID, q)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Subscribers fetched successfully")
}

// ListSubscribedChannels handles GET /api/v1/subscriptions/u/:subscriberId
func (s *Server) ListSubscribedChannels(c *fiber.Ctx) error {
	ctx := c.UserContext()
	subscriberID, err := s.parseID(c, "subscriberId")
	if err != nil {
		return nil
	}
	q, err := parsePageQuery(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, err := s.subscriptionService.ListSubscribedChannels(ctx, middleware.UserID(c), subscriberID, q)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Subscribed channels fetched successfully")
}
