package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"videotube/internal/media"
	"videotube/internal/models"
	"videotube/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempUpload(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))
	return path
}

func assertRemoved(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), "%s should be removed", p)
	}
}

func TestVideoService_PublishVideo(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		videos := noopVideoRepo()
		var stored models.Video
		videos.createFn = func(_ context.Context, v *models.Video) error {
			v.ID = uuid.New()
			stored = *v
			return nil
		}
		videos.getByIDFn = func(_ context.Context, _ uuid.UUID) (*models.Video, error) {
			cp := stored
			return &cp, nil
		}
		uploader := &fakeUploader{}
		svc := NewVideoService(videos, usersOf(userID), uploader)

		video, err := svc.PublishVideo(context.Background(), PublishVideoInput{
			UserID:        userID,
			Title:         " Intro ",
			Description:   "first upload",
			VideoPath:     "clip.mp4",
			ThumbnailPath: "cover.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "Intro", video.Title)
		assert.Equal(t, "https://media.test/clip.mp4", video.VideoFile)
		assert.Equal(t, "https://media.test/cover.png", video.Thumbnail)
		assert.Equal(t, 42.0, video.Duration)
		assert.True(t, video.IsPublished)
		assert.Equal(t, userID, video.OwnerID)
		assert.Equal(t, []string{"clip.mp4", "cover.png"}, uploader.uploaded)
	})

	t.Run("missing fields discard uploads", func(t *testing.T) {
		t.Parallel()
		uploader := &fakeUploader{}
		svc := NewVideoService(noopVideoRepo(), usersOf(userID), uploader)

		videoPath := tempUpload(t, "clip.mp4")
		thumbPath := tempUpload(t, "cover.png")
		_, err := svc.PublishVideo(context.Background(), PublishVideoInput{
			UserID: userID, Title: "t", VideoPath: videoPath, ThumbnailPath: thumbPath,
		})
		assertValidationError(t, err)
		assertRemoved(t, videoPath, thumbPath)
		assert.Empty(t, uploader.uploaded)
	})

	t.Run("missing thumbnail", func(t *testing.T) {
		t.Parallel()
		svc := NewVideoService(noopVideoRepo(), usersOf(userID), &fakeUploader{})
		videoPath := tempUpload(t, "clip.mp4")
		_, err := svc.PublishVideo(context.Background(), PublishVideoInput{
			UserID: userID, Title: "t", Description: "d", VideoPath: videoPath,
		})
		assertValidationError(t, err)
		assertRemoved(t, videoPath)
	})

	t.Run("unsupported media", func(t *testing.T) {
		t.Parallel()
		uploader := &fakeUploader{err: media.ErrUnsupportedMedia}
		svc := NewVideoService(noopVideoRepo(), usersOf(userID), uploader)
		thumbPath := tempUpload(t, "cover.png")
		_, err := svc.PublishVideo(context.Background(), PublishVideoInput{
			UserID: userID, Title: "t", Description: "d", VideoPath: "clip.txt", ThumbnailPath: thumbPath,
		})
		assertValidationError(t, err)
		assertRemoved(t, thumbPath)
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		t.Parallel()
		uploader := &fakeUploader{err: errors.New("bucket unreachable")}
		svc := NewVideoService(noopVideoRepo(), usersOf(userID), uploader)
		_, err := svc.PublishVideo(context.Background(), PublishVideoInput{
			UserID: userID, Title: "t", Description: "d", VideoPath: "clip.mp4", ThumbnailPath: "cover.png",
		})
		assertErrorCode(t, err, models.CodeInternal)
	})

	t.Run("thumbnail failure removes stored video", func(t *testing.T) {
		t.Parallel()
		uploader := &fakeUploader{err: media.ErrUnsupportedMedia, failOn: "cover.png"}
		svc := NewVideoService(noopVideoRepo(), usersOf(userID), uploader)
		_, err := svc.PublishVideo(context.Background(), PublishVideoInput{
			UserID: userID, Title: "t", Description: "d", VideoPath: "clip.mp4", ThumbnailPath: "cover.png",
		})
		assertValidationError(t, err)
		assert.Equal(t, []string{"https://media.test/clip.mp4"}, uploader.deleted)
	})

	t.Run("create failure removes both objects", func(t *testing.T) {
		t.Parallel()
		videos := noopVideoRepo()
		videos.createFn = func(_ context.Context, _ *models.Video) error {
			return models.NewInternalError(errors.New("db down"))
		}
		uploader := &fakeUploader{deleteErr: errors.New("already gone")}
		svc := NewVideoService(videos, usersOf(userID), uploader)
		_, err := svc.PublishVideo(context.Background(), PublishVideoInput{
			UserID: userID, Title: "t", Description: "d", VideoPath: "clip.mp4", ThumbnailPath: "cover.png",
		})
		assertErrorCode(t, err, models.CodeInternal)
		assert.Equal(t, []string{"https://media.test/clip.mp4", "https://media.test/cover.png"}, uploader.deleted)
	})

	t.Run("success keeps objects", func(t *testing.T) {
		t.Parallel()
		uploader := &fakeUploader{}
		videos := noopVideoRepo()
		videos.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.Video, error) {
			return &models.Video{Base: models.Base{ID: id}}, nil
		}
		svc := NewVideoService(videos, usersOf(userID), uploader)
		_, err := svc.PublishVideo(context.Background(), PublishVideoInput{
			UserID: userID, Title: "t", Description: "d", VideoPath: "clip.mp4", ThumbnailPath: "cover.png",
		})
		require.NoError(t, err)
		assert.Empty(t, uploader.deleted)
	})
}

func TestVideoService_GetVideo(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	viewer := uuid.New()
	public := &models.Video{Base: models.Base{ID: uuid.New()}, OwnerID: owner, IsPublished: true, Views: 9}
	draft := &models.Video{Base: models.Base{ID: uuid.New()}, OwnerID: owner}

	newService := func(v *models.Video, views *int) *VideoService {
		videos := noopVideoRepo().withVideo(v)
		videos.incrementViewsFn = func(_ context.Context, _ uuid.UUID) error {
			*views++
			return nil
		}
		return NewVideoService(videos, usersOf(owner, viewer), &fakeUploader{})
	}

	t.Run("viewer counts a view", func(t *testing.T) {
		t.Parallel()
		var views int
		got, err := newService(public, &views).GetVideo(context.Background(), viewer, public.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, views)
		assert.Equal(t, int64(10), got.Views)
	})

	t.Run("owner does not count", func(t *testing.T) {
		t.Parallel()
		var views int
		_, err := newService(public, &views).GetVideo(context.Background(), owner, public.ID)
		require.NoError(t, err)
		assert.Zero(t, views)
	})

	t.Run("draft hidden from others", func(t *testing.T) {
		t.Parallel()
		var views int
		_, err := newService(draft, &views).GetVideo(context.Background(), viewer, draft.ID)
		assertNotFoundError(t, err)
	})

	t.Run("draft visible to owner", func(t *testing.T) {
		t.Parallel()
		var views int
		_, err := newService(draft, &views).GetVideo(context.Background(), owner, draft.ID)
		require.NoError(t, err)
	})
}

func TestVideoService_OwnerMutations(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()
	base := &models.Video{Base: models.Base{ID: uuid.New()}, OwnerID: owner, Title: "old", Description: "old desc", Thumbnail: "old.png", IsPublished: true}

	t.Run("update replaces supplied fields only", func(t *testing.T) {
		t.Parallel()
		uploader := &fakeUploader{}
		svc := NewVideoService(noopVideoRepo().withVideo(base), usersOf(owner), uploader)
		title := "new title"
		blank := "  "
		v, err := svc.UpdateVideo(context.Background(), UpdateVideoInput{
			UserID: owner, VideoID: base.ID, Title: &title, Description: &blank, ThumbnailPath: "new.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "new title", v.Title)
		assert.Equal(t, "old desc", v.Description)
		assert.Equal(t, "https://media.test/new.png", v.Thumbnail)
	})

	t.Run("stranger update discards thumbnail", func(t *testing.T) {
		t.Parallel()
		uploader := &fakeUploader{}
		svc := NewVideoService(noopVideoRepo().withVideo(base), usersOf(owner), uploader)
		thumb := tempUpload(t, "cover.png")
		_, err := svc.UpdateVideo(context.Background(), UpdateVideoInput{UserID: stranger, VideoID: base.ID, ThumbnailPath: thumb})
		assertForbiddenError(t, err)
		assertRemoved(t, thumb)
		assert.Empty(t, uploader.uploaded)
	})

	t.Run("failed update removes new thumbnail", func(t *testing.T) {
		t.Parallel()
		videos := noopVideoRepo().withVideo(base)
		videos.updateFn = func(_ context.Context, _ *models.Video) error {
			return models.NewInternalError(errors.New("db down"))
		}
		uploader := &fakeUploader{}
		svc := NewVideoService(videos, usersOf(owner), uploader)
		_, err := svc.UpdateVideo(context.Background(), UpdateVideoInput{UserID: owner, VideoID: base.ID, ThumbnailPath: "new.png"})
		assertErrorCode(t, err, models.CodeInternal)
		assert.Equal(t, []string{"https://media.test/new.png"}, uploader.deleted)
	})

	t.Run("toggle publish", func(t *testing.T) {
		t.Parallel()
		svc := NewVideoService(noopVideoRepo().withVideo(base), usersOf(owner), &fakeUploader{})
		v, err := svc.TogglePublish(context.Background(), owner, base.ID)
		require.NoError(t, err)
		assert.False(t, v.IsPublished)

		_, err = svc.TogglePublish(context.Background(), stranger, base.ID)
		assertForbiddenError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		videos := noopVideoRepo().withVideo(base)
		var deleted uuid.UUID
		videos.deleteFn = func(_ context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		}
		svc := NewVideoService(videos, usersOf(owner), &fakeUploader{})

		_, err := svc.DeleteVideo(context.Background(), stranger, base.ID)
		assertForbiddenError(t, err)
		assert.Equal(t, uuid.Nil, deleted)

		v, err := svc.DeleteVideo(context.Background(), owner, base.ID)
		require.NoError(t, err)
		assert.Equal(t, base.ID, deleted)
		assert.Equal(t, "old", v.Title)

		_, err = svc.DeleteVideo(context.Background(), owner, uuid.New())
		assertNotFoundError(t, err)
	})
}

func TestVideoService_ListVideos(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	viewer := uuid.New()
	var gotFilter repository.VideoFilter
	var gotOpts repository.ListOptions
	videos := noopVideoRepo()
	videos.listFn = func(_ context.Context, f repository.VideoFilter, o repository.ListOptions) ([]models.Video, int64, error) {
		gotFilter, gotOpts = f, o
		return []models.Video{{OwnerID: f.OwnerID}}, 4, nil
	}
	svc := NewVideoService(videos, usersOf(owner, viewer), &fakeUploader{})
	ctx := context.Background()

	page, err := svc.ListVideos(ctx, ListVideosInput{
		ActorID:   viewer,
		ChannelID: owner,
		Page:      PageQuery{Page: 2, Limit: 2, Query: "go", SortBy: "title", SortType: "asc"},
	})
	require.NoError(t, err)
	assert.Equal(t, owner, gotFilter.OwnerID)
	assert.False(t, gotFilter.IncludeUnpublished)
	assert.Equal(t, "go", gotFilter.Search)
	assert.Equal(t, repository.ListOptions{Offset: 2, Limit: 2, SortColumn: "title"}, gotOpts)
	assert.Equal(t, int64(4), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)

	_, err = svc.ListVideos(ctx, ListVideosInput{ActorID: owner, Page: NewPageQuery()})
	require.NoError(t, err)
	assert.Equal(t, owner, gotFilter.OwnerID, "channel defaults to the caller")
	assert.True(t, gotFilter.IncludeUnpublished)

	_, err = svc.ListVideos(ctx, ListVideosInput{ActorID: owner, ChannelID: uuid.New(), Page: NewPageQuery()})
	assertNotFoundError(t, err)

	_, err = svc.ListVideos(ctx, ListVideosInput{ActorID: owner, Page: PageQuery{Page: 1, Limit: 3, SortBy: "owner_id"}})
	assertValidationError(t, err)
}
