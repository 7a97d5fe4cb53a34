package media

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"videotube/internal/config"
	"videotube/internal/observability"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const defaultRegion = "us-east-1"

// objectStore is the subset of *minio.Client the uploader needs.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioUploader stores media in a single MinIO bucket under videos/ and
// images/ prefixes. Object URLs are publicURL/bucket/object.
type MinioUploader struct {
	store     objectStore
	bucket    string
	publicURL string
	probe     Prober

	bucketMu    sync.Mutex
	bucketReady bool
}

// NewMinioUploader connects to the MinIO endpoint from cfg.
func NewMinioUploader(cfg *config.Config) (*MinioUploader, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}

	publicURL := cfg.MediaPublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, cfg.MinioEndpoint)
	}

	slog.Info("MinIO uploader configured",
		slog.String("endpoint", cfg.MinioEndpoint),
		slog.String("bucket", cfg.MinioBucket))
	return newMinioUploader(client, cfg.MinioBucket, publicURL, FFProbe), nil
}

func newMinioUploader(store objectStore, bucket, publicURL string, probe Prober) *MinioUploader {
	return &MinioUploader{
		store:     store,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		probe:     probe,
	}
}

// Upload stores the file at localPath. Images are re-encoded as WebP
// thumbnails; videos are probed for their duration first.
func (u *MinioUploader) Upload(ctx context.Context, localPath string) (result *UploadResult, err error) {
	cleanup := []string{localPath}
	defer func() {
		for _, p := range cleanup {
			if rmErr := os.Remove(p); rmErr != nil && !os.IsNotExist(rmErr) {
				slog.WarnContext(ctx, "failed to remove temp upload", slog.String("path", p), slog.String("error", rmErr.Error()))
			}
		}
	}()

	class, err := Classify(localPath)
	if err != nil {
		return nil, err
	}

	span, ctx := observability.NewSpan(ctx, "media.upload", attribute.String("media.class", string(class)))
	defer func() {
		span.SetError(err)
		span.End()
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		observability.MediaUploads.WithLabelValues(string(class), outcome).Inc()
	}()

	result = &UploadResult{}
	source := localPath
	switch class {
	case ClassVideo:
		if result.Duration, err = probeDuration(u.probe, localPath); err != nil {
			return nil, err
		}
	case ClassImage:
		if source, err = transcodeThumbnail(localPath); err != nil {
			return nil, err
		}
		cleanup = append(cleanup, source)
	}

	if err = u.ensureBucket(ctx); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(source))
	object := string(class) + "/" + uuid.NewString() + ext
	opts := minio.PutObjectOptions{ContentType: contentType(ext)}
	if _, err = u.store.FPutObject(ctx, u.bucket, object, source, opts); err != nil {
		return nil, errors.Wrapf(err, "put object %s", object)
	}

	result.URL = u.publicURL + "/" + u.bucket + "/" + object
	return result, nil
}

// Delete removes the object behind a URL produced by Upload. URLs outside
// this bucket are rejected.
func (u *MinioUploader) Delete(ctx context.Context, url string) error {
	prefix := u.publicURL + "/" + u.bucket + "/"
	object, ok := strings.CutPrefix(url, prefix)
	if !ok || object == "" {
		return errors.Errorf("object %q is not in bucket %s", url, u.bucket)
	}
	if err := u.store.RemoveObject(ctx, u.bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "remove object %s", object)
	}
	return nil
}

func (u *MinioUploader) ensureBucket(ctx context.Context) error {
	u.bucketMu.Lock()
	defer u.bucketMu.Unlock()
	if u.bucketReady {
		return nil
	}

	exists, err := u.store.BucketExists(ctx, u.bucket)
	if err != nil {
		return errors.Wrap(err, "check bucket")
	}
	if !exists {
		if err := u.store.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{Region: defaultRegion}); err != nil {
			return errors.Wrap(err, "create bucket")
		}
	}
	u.bucketReady = true
	return nil
}

func contentType(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
