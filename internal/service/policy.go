package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"videotube/internal/models"
	"videotube/internal/repository"

	"github.com/google/uuid"
)

// authorizeOwner is the single ownership check used by every mutation of an
// owned entity.
func authorizeOwner(ownerID, actorID uuid.UUID, what string) error {
	if ownerID != actorID {
		return models.NewForbiddenError(fmt.Sprintf("You can only modify your own %s", what))
	}
	return nil
}

// authorizeSelf allows an operation only on the caller's own account.
func authorizeSelf(subjectID, actorID uuid.UUID, message string) error {
	if subjectID != actorID {
		return models.NewForbiddenError(message)
	}
	return nil
}

// canView reports whether actorID may see video.
func canView(video *models.Video, actorID uuid.UUID) bool {
	return video.IsPublished || video.OwnerID == actorID
}

// visibleVideo loads a video the actor may see. Unpublished videos of other
// channels are reported as not found.
func visibleVideo(ctx context.Context, videos repository.VideoRepository, id, actorID uuid.UUID) (*models.Video, error) {
	video, err := videos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(video, actorID) {
		return nil, models.NewNotFoundError("Video", id)
	}
	return video, nil
}

// requireUser fails with NotFound when id is not a known account.
func requireUser(ctx context.Context, users repository.UserRepository, id uuid.UUID) error {
	ok, err := users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

// discard removes temp uploads that will not reach the uploader.
func discard(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove temp upload", slog.String("path", p), slog.String("error", err.Error()))
		}
	}
}
