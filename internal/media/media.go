// Package media stores uploaded files in object storage and extracts the
// metadata the catalogue needs (video duration).
package media

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedMedia is returned for files whose extension or content is not
// an accepted video or image format.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// Class is the storage class of an uploaded file.
type Class string

const (
	ClassVideo Class = "videos"
	ClassImage Class = "images"
)

// UploadResult describes a stored object. Duration is in seconds and only set
// for videos.
type UploadResult struct {
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
}

// Uploader stores a local file and returns its public location. The local
// file is removed whether or not the upload succeeds. Delete removes an object
// previously returned by Upload, given its URL.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (*UploadResult, error)
	Delete(ctx context.Context, url string) error
}

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".mkv": true, ".webm": true, ".avi": true, ".m4v": true,
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Classify picks the storage class from the file extension.
func Classify(path string) (Class, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case videoExts[ext]:
		return ClassVideo, nil
	case imageExts[ext]:
		return ClassImage, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedMedia, "extension %q", ext)
	}
}
