package service

import (
	"context"
	"strings"
	"testing"

	"videotube/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	video := &models.Video{Base: models.Base{ID: uuid.New()}, OwnerID: uuid.New(), IsPublished: true}
	draft := &models.Video{Base: models.Base{ID: uuid.New()}, OwnerID: uuid.New()}

	newService := func(v *models.Video) *CommentService {
		comments := noopCommentRepo()
		var stored *models.Comment
		comments.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = uuid.New()
			stored = c
			return nil
		}
		comments.getByIDFn = func(_ context.Context, _ uuid.UUID) (*models.Comment, error) {
			return stored, nil
		}
		return NewCommentService(comments, noopVideoRepo().withVideo(v))
	}

	t.Run("success trims content", func(t *testing.T) {
		t.Parallel()
		c, err := newService(video).CreateComment(context.Background(), CreateCommentInput{
			UserID: userID, VideoID: video.ID, Content: "  great video  ",
		})
		require.NoError(t, err)
		assert.Equal(t, "great video", c.Content)
		assert.Equal(t, userID, c.OwnerID)
	})

	t.Run("blank content", func(t *testing.T) {
		t.Parallel()
		_, err := newService(video).CreateComment(context.Background(), CreateCommentInput{
			UserID: userID, VideoID: video.ID, Content: "   ",
		})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := newService(video).CreateComment(context.Background(), CreateCommentInput{
			UserID: userID, VideoID: video.ID, Content: strings.Repeat("x", maxCommentLen+1),
		})
		assertValidationError(t, err)
	})

	t.Run("video missing", func(t *testing.T) {
		t.Parallel()
		_, err := newService(video).CreateComment(context.Background(), CreateCommentInput{
			UserID: userID, VideoID: uuid.New(), Content: "hi",
		})
		assertNotFoundError(t, err)
	})

	t.Run("unpublished video of another channel", func(t *testing.T) {
		t.Parallel()
		_, err := newService(draft).CreateComment(context.Background(), CreateCommentInput{
			UserID: userID, VideoID: draft.ID, Content: "hi",
		})
		assertNotFoundError(t, err)
	})
}

func TestCommentService_Ownership(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()
	commentID := uuid.New()

	newService := func(deleted *bool) *CommentService {
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.Comment, error) {
			if id != commentID {
				return nil, models.NewNotFoundError("Comment", id)
			}
			return &models.Comment{Base: models.Base{ID: id}, OwnerID: owner, Content: "old"}, nil
		}
		comments.deleteFn = func(_ context.Context, _ uuid.UUID) error {
			*deleted = true
			return nil
		}
		return NewCommentService(comments, noopVideoRepo())
	}

	t.Run("owner updates", func(t *testing.T) {
		t.Parallel()
		var deleted bool
		c, err := newService(&deleted).UpdateComment(context.Background(), UpdateCommentInput{UserID: owner, CommentID: commentID, Content: "new"})
		require.NoError(t, err)
		assert.Equal(t, "new", c.Content)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		t.Parallel()
		var deleted bool
		_, err := newService(&deleted).UpdateComment(context.Background(), UpdateCommentInput{UserID: stranger, CommentID: commentID, Content: "new"})
		assertForbiddenError(t, err)
	})

	t.Run("owner update needs content", func(t *testing.T) {
		t.Parallel()
		var deleted bool
		_, err := newService(&deleted).UpdateComment(context.Background(), UpdateCommentInput{UserID: owner, CommentID: commentID})
		assertValidationError(t, err)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		t.Parallel()
		var deleted bool
		_, err := newService(&deleted).DeleteComment(context.Background(), DeleteCommentInput{UserID: stranger, CommentID: commentID})
		assertForbiddenError(t, err)
		assert.False(t, deleted)
	})

	t.Run("owner deletes and gets the record back", func(t *testing.T) {
		t.Parallel()
		var deleted bool
		c, err := newService(&deleted).DeleteComment(context.Background(), DeleteCommentInput{UserID: owner, CommentID: commentID})
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, commentID, c.ID)
	})

	t.Run("missing comment", func(t *testing.T) {
		t.Parallel()
		var deleted bool
		_, err := newService(&deleted).DeleteComment(context.Background(), DeleteCommentInput{UserID: owner, CommentID: uuid.New()})
		assertNotFoundError(t, err)
	})
}
