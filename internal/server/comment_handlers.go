package server

import (
	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Content string `json:"content"`
}

// ListVideoComments handles GET /api/v1/comments/:videoId
// @Summary List comments on a video
// @Tags comments
// @Produce json
// @Param videoId path string true "Video ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(3)
// @Success 200 {object} models.APIResponse{data=models.Page[models.Comment]}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /comments/{videoId} [get]
func (s *Server) ListVideoComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	q, err := parsePageQuery(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, err := s.commentService.ListVideoComments(ctx, middleware.UserID(c), videoID, q)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Comments fetched successfully")
}

// AddComment handles POST /api/v1/comments/:videoId
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		UserID:  middleware.UserID(c),
		VideoID: videoID,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, comment, "Comment added successfully")
}

// UpdateComment handles PATCH /api/v1/comments/c/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(ctx, service.UpdateCommentInput{
		UserID:    middleware.UserID(c),
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, comment, "Comment updated successfully")
}

// DeleteComment handles DELETE /api/v1/comments/c/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.DeleteComment(ctx, service.DeleteCommentInput{
		UserID:    middleware.UserID(c),
		CommentID: commentID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, comment, "Comment deleted successfully")
}
