package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"videotube/internal/models"
	"videotube/internal/repository"

	"github.com/google/uuid"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

type CreateCommentInput struct {
	UserID  uuid.UUID
	VideoID uuid.UUID
	Content string
}

type UpdateCommentInput struct {
	UserID    uuid.UUID
	CommentID uuid.UUID
	Content   string
}

type DeleteCommentInput struct {
	UserID    uuid.UUID
	CommentID uuid.UUID
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
	}
}

func validateContent(content string, maxLen int) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > maxLen {
		return "", models.NewValidationError("Content is too long")
	}
	return content, nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content, err := validateContent(in.Content, maxCommentLen)
	if err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.videoRepo, in.VideoID, in.UserID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		VideoID: in.VideoID,
		OwnerID: in.UserID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListVideoComments pages through a video's comments with author profiles.
func (s *CommentService) ListVideoComments(ctx context.Context, actorID, videoID uuid.UUID, q PageQuery) (*models.Page[models.Comment], error) {
	req, err := q.resolve(timeSortColumns)
	if err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.videoRepo, videoID, actorID); err != nil {
		return nil, err
	}
	comments, total, err := s.commentRepo.ListByVideo(ctx, videoID, req.opts)
	if err != nil {
		return nil, err
	}
	return newPage(req, comments, total), nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(comment.OwnerID, in.UserID, "comments"); err != nil {
		return nil, err
	}
	content, err := validateContent(in.Content, maxCommentLen)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(comment.OwnerID, in.UserID, "comments"); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}
	return comment, nil
}
