package service

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/repository"

	"github.com/google/uuid"
)

const maxTweetLen = 280

type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

type CreateTweetInput struct {
	UserID  uuid.UUID
	Content string
}

type UpdateTweetInput struct {
	UserID  uuid.UUID
	TweetID uuid.UUID
	Content string
}

type DeleteTweetInput struct {
	UserID  uuid.UUID
	TweetID uuid.UUID
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

func (s *TweetService) CreateTweet(ctx context.Context, in CreateTweetInput) (*models.Tweet, error) {
	content, err := validateContent(in.Content, maxTweetLen)
	if err != nil {
		return nil, err
	}
	tweet := &models.Tweet{Content: content, OwnerID: in.UserID}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return s.tweetRepo.GetByID(ctx, tweet.ID)
}

func (s *TweetService) ListUserTweets(ctx context.Context, userID uuid.UUID, q PageQuery) (*models.Page[models.Tweet], error) {
	req, err := q.resolve(timeSortColumns)
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	tweets, total, err := s.tweetRepo.ListByOwner(ctx, userID, req.opts)
	if err != nil {
		return nil, err
	}
	return newPage(req, tweets, total), nil
}

func (s *TweetService) UpdateTweet(ctx context.Context, in UpdateTweetInput) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, in.TweetID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(tweet.OwnerID, in.UserID, "tweets"); err != nil {
		return nil, err
	}
	content, err := validateContent(in.Content, maxTweetLen)
	if err != nil {
		return nil, err
	}

	tweet.Content = content
	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) DeleteTweet(ctx context.Context, in DeleteTweetInput) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, in.TweetID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(tweet.OwnerID, in.UserID, "tweets"); err != nil {
		return nil, err
	}
	if err := s.tweetRepo.Delete(ctx, in.TweetID); err != nil {
		return nil, err
	}
	return tweet, nil
}
