package server

import (
	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

var likeNouns = map[models.LikeKind]string{
	models.LikeKindVideo:   "video",
	models.LikeKindComment: "comment",
	models.LikeKindTweet:   "tweet",
}

// toggleLike is shared by the three like routes; param names the route
// parameter that carries the target id.
func (s *Server) toggleLike(c *fiber.Ctx, kind models.LikeKind, param string) error {
	ctx := c.UserContext()
	targetID, err := s.parseID(c, param)
	if err != nil {
		return nil
	}

	res, err := s.likeService.ToggleLike(ctx, service.ToggleLikeInput{
		UserID: middleware.UserID(c),
		Target: models.LikeTarget{Kind: kind, EntityID: targetID},
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if res.Added() {
		return models.Respond(c, fiber.StatusOK, res.Record, "Liked the "+likeNouns[kind]+" successfully")
	}
	return models.Respond(c, fiber.StatusOK, res.Record, "Unliked the "+likeNouns[kind]+" successfully")
}

// ToggleVideoLike handles POST /api/v1/likes/toggle/v/:videoId
// @Summary Like or unlike a video
// @Tags likes
// @Produce json
// @Param videoId path string true "Video ID"
// @Success 200 {object} models.APIResponse{data=models.Like}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /likes/toggle/v/{videoId} [post]
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	return s.toggleLike(c, models.LikeKindVideo, "videoId")
}

// ToggleCommentLike handles POST /api/v1/likes/toggle/c/:commentId
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	return s.toggleLike(c, models.LikeKindComment, "commentId")
}

// ToggleTweetLike handles POST /api/v1/likes/toggle/t/:tweetId
func (s *Server) ToggleTweetLike(c *fiber.Ctx) error {
	return s.toggleLike(c, models.LikeKindTweet, "tweetId")
}

// ListLikedVideos handles GET /api/v1/likes/videos
func (s *Server) ListLikedVideos(c *fiber.Ctx) error {
	ctx := c.UserContext()
	q, err := parsePageQuery(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, err := s.likeService.ListLikedVideos(ctx, middleware.UserID(c), q)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Liked videos fetched successfully")
}
