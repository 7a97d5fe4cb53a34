package media

import (
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	ThumbnailMaxWidth  = 1280
	ThumbnailMaxHeight = 720
	ThumbnailQuality   = 80

	// MaxSourcePixels caps the decoded size of an uploaded image.
	MaxSourcePixels = 40_000_000
)

// transcodeThumbnail decodes the image at path, shrinks it to fit the
// thumbnail box and writes it next to the source as WebP. It returns the path
// of the new file; the caller owns both files.
func transcodeThumbnail(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "open thumbnail")
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return "", errors.Wrap(ErrUnsupportedMedia, err.Error())
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return "", errors.Wrapf(ErrUnsupportedMedia, "image is %dx%d", cfg.Width, cfg.Height)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", errors.Wrap(err, "rewind thumbnail")
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return "", errors.Wrap(ErrUnsupportedMedia, err.Error())
	}
	img = resizeToFit(img, ThumbnailMaxWidth, ThumbnailMaxHeight)

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".thumb.webp"
	out, err := os.Create(outPath)
	if err != nil {
		return "", errors.Wrap(err, "create thumbnail")
	}
	if err := webp.Encode(out, img, &webp.Options{Quality: ThumbnailQuality}); err != nil {
		out.Close()
		os.Remove(outPath)
		return "", errors.Wrap(err, "encode thumbnail")
	}
	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return "", errors.Wrap(err, "write thumbnail")
	}
	return outPath, nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || (w <= maxWidth && h <= maxHeight) {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
