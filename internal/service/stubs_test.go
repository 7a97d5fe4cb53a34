package service

import (
	"context"
	"errors"
	"testing"

	"videotube/internal/media"
	"videotube/internal/models"
	"videotube/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertErrorCode asserts that err is an AppError carrying code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertErrorCode(t, err, models.CodeValidation)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertErrorCode(t, err, models.CodeForbidden)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertErrorCode(t, err, models.CodeNotFound)
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	known map[uuid.UUID]bool
}

func (s *userRepoStub) Create(_ context.Context, _ *models.User) error { return nil }
func (s *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if !s.known[id] {
		return nil, models.NewNotFoundError("User", id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}
func (s *userRepoStub) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return s.known[id], nil
}

func usersOf(ids ...uuid.UUID) *userRepoStub {
	known := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return &userRepoStub{known: known}
}

// videoRepoStub is a stub for repository.VideoRepository.
type videoRepoStub struct {
	createFn         func(context.Context, *models.Video) error
	getByIDFn        func(context.Context, uuid.UUID) (*models.Video, error)
	updateFn         func(context.Context, *models.Video) error
	deleteFn         func(context.Context, uuid.UUID) error
	incrementViewsFn func(context.Context, uuid.UUID) error
	listFn           func(context.Context, repository.VideoFilter, repository.ListOptions) ([]models.Video, int64, error)
	countByOwnerFn   func(context.Context, uuid.UUID) (int64, error)
	sumViewsFn       func(context.Context, uuid.UUID) (int64, error)
}

func (s *videoRepoStub) Create(ctx context.Context, v *models.Video) error { return s.createFn(ctx, v) }
func (s *videoRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	return s.getByIDFn(ctx, id)
}
func (s *videoRepoStub) Update(ctx context.Context, v *models.Video) error { return s.updateFn(ctx, v) }
func (s *videoRepoStub) Delete(ctx context.Context, id uuid.UUID) error   { return s.deleteFn(ctx, id) }
func (s *videoRepoStub) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *videoRepoStub) List(ctx context.Context, f repository.VideoFilter, o repository.ListOptions) ([]models.Video, int64, error) {
	return s.listFn(ctx, f, o)
}
func (s *videoRepoStub) FindByIDs(_ context.Context, _ []uuid.UUID) ([]models.Video, error) {
	return nil, nil
}
func (s *videoRepoStub) CountByOwner(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.countByOwnerFn(ctx, id)
}
func (s *videoRepoStub) SumViewsByOwner(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.sumViewsFn(ctx, id)
}

func noopVideoRepo() *videoRepoStub {
	return &videoRepoStub{
		createFn: func(_ context.Context, v *models.Video) error {
			v.ID = uuid.New()
			return nil
		},
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Video, error) {
			return nil, models.NewNotFoundError("Video", id)
		},
		updateFn:         func(_ context.Context, _ *models.Video) error { return nil },
		deleteFn:         func(_ context.Context, _ uuid.UUID) error { return nil },
		incrementViewsFn: func(_ context.Context, _ uuid.UUID) error { return nil },
		listFn: func(_ context.Context, _ repository.VideoFilter, _ repository.ListOptions) ([]models.Video, int64, error) {
			return nil, 0, nil
		},
		countByOwnerFn: func(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil },
		sumViewsFn:     func(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil },
	}
}

// withVideo makes GetByID return v for its ID and NotFound otherwise.
func (s *videoRepoStub) withVideo(v *models.Video) *videoRepoStub {
	s.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.Video, error) {
		if id != v.ID {
			return nil, models.NewNotFoundError("Video", id)
		}
		cp := *v
		return &cp, nil
	}
	return s
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uuid.UUID) (*models.Comment, error)
	listByVideoFn func(context.Context, uuid.UUID, repository.ListOptions) ([]models.Comment, int64, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uuid.UUID) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByVideo(ctx context.Context, id uuid.UUID, o repository.ListOptions) ([]models.Comment, int64, error) {
	return s.listByVideoFn(ctx, id, o)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uuid.UUID) error { return s.deleteFn(ctx, id) }

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = uuid.New()
			return nil
		},
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Comment, error) {
			return nil, models.NewNotFoundError("Comment", id)
		},
		listByVideoFn: func(_ context.Context, _ uuid.UUID, _ repository.ListOptions) ([]models.Comment, int64, error) {
			return nil, 0, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

// tweetRepoStub is a stub for repository.TweetRepository.
type tweetRepoStub struct {
	createFn      func(context.Context, *models.Tweet) error
	getByIDFn     func(context.Context, uuid.UUID) (*models.Tweet, error)
	listByOwnerFn func(context.Context, uuid.UUID, repository.ListOptions) ([]models.Tweet, int64, error)
	updateFn      func(context.Context, *models.Tweet) error
	deleteFn      func(context.Context, uuid.UUID) error
}

func (s *tweetRepoStub) Create(ctx context.Context, t *models.Tweet) error { return s.createFn(ctx, t) }
func (s *tweetRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tweetRepoStub) ListByOwner(ctx context.Context, id uuid.UUID, o repository.ListOptions) ([]models.Tweet, int64, error) {
	return s.listByOwnerFn(ctx, id, o)
}
func (s *tweetRepoStub) Update(ctx context.Context, t *models.Tweet) error { return s.updateFn(ctx, t) }
func (s *tweetRepoStub) Delete(ctx context.Context, id uuid.UUID) error   { return s.deleteFn(ctx, id) }

func noopTweetRepo() *tweetRepoStub {
	return &tweetRepoStub{
		createFn: func(_ context.Context, t *models.Tweet) error {
			t.ID = uuid.New()
			return nil
		},
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Tweet, error) {
			return nil, models.NewNotFoundError("Tweet", id)
		},
		listByOwnerFn: func(_ context.Context, _ uuid.UUID, _ repository.ListOptions) ([]models.Tweet, int64, error) {
			return nil, 0, nil
		},
		updateFn: func(_ context.Context, _ *models.Tweet) error { return nil },
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn        func(context.Context, *models.Like) (repository.ToggleOutcome, error)
	listLikedFn     func(context.Context, uuid.UUID, repository.ListOptions) ([]models.Like, int64, error)
	countReceivedFn func(context.Context, uuid.UUID) (int64, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, l *models.Like) (repository.ToggleOutcome, error) {
	return s.toggleFn(ctx, l)
}
func (s *likeRepoStub) ListLikedVideos(ctx context.Context, id uuid.UUID, o repository.ListOptions) ([]models.Like, int64, error) {
	return s.listLikedFn(ctx, id, o)
}
func (s *likeRepoStub) CountReceivedByOwner(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.countReceivedFn(ctx, id)
}

// subRepoStub is a stub for repository.SubscriptionRepository.
type subRepoStub struct {
	toggleFn          func(context.Context, *models.Subscription) (repository.ToggleOutcome, error)
	listSubscribersFn func(context.Context, uuid.UUID, repository.ListOptions) ([]models.Subscription, int64, error)
	listChannelsFn    func(context.Context, uuid.UUID, repository.ListOptions) ([]models.Subscription, int64, error)
	countFn           func(context.Context, uuid.UUID) (int64, error)
}

func (s *subRepoStub) Toggle(ctx context.Context, sub *models.Subscription) (repository.ToggleOutcome, error) {
	return s.toggleFn(ctx, sub)
}
func (s *subRepoStub) ListSubscribers(ctx context.Context, id uuid.UUID, o repository.ListOptions) ([]models.Subscription, int64, error) {
	return s.listSubscribersFn(ctx, id, o)
}
func (s *subRepoStub) ListSubscribedChannels(ctx context.Context, id uuid.UUID, o repository.ListOptions) ([]models.Subscription, int64, error) {
	return s.listChannelsFn(ctx, id, o)
}
func (s *subRepoStub) CountSubscribers(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.countFn(ctx, id)
}

// playlistRepoStub is a stub for repository.PlaylistRepository.
type playlistRepoStub struct {
	createFn      func(context.Context, *models.Playlist) error
	getByIDFn     func(context.Context, uuid.UUID) (*models.Playlist, error)
	listByOwnerFn func(context.Context, uuid.UUID, repository.ListOptions) ([]models.Playlist, int64, error)
	updateFn      func(context.Context, *models.Playlist) error
	deleteFn      func(context.Context, uuid.UUID) error
	addVideoFn    func(context.Context, uuid.UUID, uuid.UUID) error
	removeVideoFn func(context.Context, uuid.UUID, uuid.UUID) error
}

func (s *playlistRepoStub) Create(ctx context.Context, p *models.Playlist) error {
	return s.createFn(ctx, p)
}
func (s *playlistRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	return s.getByIDFn(ctx, id)
}
func (s *playlistRepoStub) ListByOwner(ctx context.Context, id uuid.UUID, o repository.ListOptions) ([]models.Playlist, int64, error) {
	return s.listByOwnerFn(ctx, id, o)
}
func (s *playlistRepoStub) Update(ctx context.Context, p *models.Playlist) error {
	return s.updateFn(ctx, p)
}
func (s *playlistRepoStub) Delete(ctx context.Context, id uuid.UUID) error { return s.deleteFn(ctx, id) }
func (s *playlistRepoStub) AddVideo(ctx context.Context, p, v uuid.UUID) error {
	return s.addVideoFn(ctx, p, v)
}
func (s *playlistRepoStub) RemoveVideo(ctx context.Context, p, v uuid.UUID) error {
	return s.removeVideoFn(ctx, p, v)
}

func playlistRepoWith(p *models.Playlist) *playlistRepoStub {
	return &playlistRepoStub{
		createFn: func(_ context.Context, pl *models.Playlist) error {
			pl.ID = uuid.New()
			return nil
		},
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Playlist, error) {
			if p == nil || id != p.ID {
				return nil, models.NewNotFoundError("Playlist", id)
			}
			cp := *p
			return &cp, nil
		},
		listByOwnerFn: func(_ context.Context, _ uuid.UUID, _ repository.ListOptions) ([]models.Playlist, int64, error) {
			return nil, 0, nil
		},
		updateFn:      func(_ context.Context, _ *models.Playlist) error { return nil },
		deleteFn:      func(_ context.Context, _ uuid.UUID) error { return nil },
		addVideoFn:    func(_ context.Context, _, _ uuid.UUID) error { return nil },
		removeVideoFn: func(_ context.Context, _, _ uuid.UUID) error { return nil },
	}
}

// fakeUploader records uploaded paths and deleted URLs. Videos report a fixed
// duration. failOn makes only that path fail with err.
type fakeUploader struct {
	uploaded  []string
	deleted   []string
	err       error
	failOn    string
	deleteErr error
}

func (f *fakeUploader) Upload(_ context.Context, path string) (*media.UploadResult, error) {
	if f.err != nil && (f.failOn == "" || f.failOn == path) {
		return nil, f.err
	}
	f.uploaded = append(f.uploaded, path)
	res := &media.UploadResult{URL: "https://media.test/" + path}
	if class, _ := media.Classify(path); class == media.ClassVideo {
		res.Duration = 42
	}
	return res, nil
}

func (f *fakeUploader) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return f.deleteErr
}
