package server

import (
	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type tweetRequest struct {
	Content string `json:"content"`
}

// CreateTweet handles POST /api/v1/tweets
// @Summary Post a tweet
// @Tags tweets
// @Accept json
// @Produce json
// @Param request body tweetRequest true "Tweet"
// @Success 201 {object} models.APIResponse{data=models.Tweet}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tweets [post]
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var req tweetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.CreateTweet(ctx, service.CreateTweetInput{
		UserID:  middleware.UserID(c),
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, tweet, "Tweet created successfully")
}

// ListUserTweets handles GET /api/v1/tweets/user/:userId
func (s *Server) ListUserTweets(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	q, err := parsePageQuery(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, err := s.tweetService.ListUserTweets(ctx, userID, q)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Tweets fetched successfully")
}

// UpdateTweet handles PATCH /api/v1/tweets/:tweetId
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	var req tweetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.UpdateTweet(ctx, service.UpdateTweetInput{
		UserID:  middleware.UserID(c),
		TweetID: tweetID,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, tweet, "Tweet updated successfully")
}

// DeleteTweet handles DELETE /api/v1/tweets/:tweetId
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	tweet, err := s.tweetService.DeleteTweet(ctx, service.DeleteTweetInput{
		UserID:  middleware.UserID(c),
		TweetID: tweetID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, tweet, "Tweet deleted successfully")
}
