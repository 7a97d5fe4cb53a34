package media

import (
	"encoding/json"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Prober returns the raw ffprobe JSON for a file.
type Prober func(path string) (string, error)

// FFProbe runs ffprobe through ffmpeg-go.
func FFProbe(path string) (string, error) {
	return ffmpeg.Probe(path)
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// parseDuration reads format.duration (seconds) from ffprobe JSON output.
func parseDuration(raw string) (float64, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return 0, errors.Wrap(err, "decode probe output")
	}
	if out.Format.Duration == "" {
		return 0, errors.Wrap(ErrUnsupportedMedia, "probe reported no duration")
	}
	d, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrUnsupportedMedia, "duration %q", out.Format.Duration)
	}
	return d, nil
}

// probeDuration returns the duration of the video at path in seconds.
func probeDuration(probe Prober, path string) (float64, error) {
	raw, err := probe(path)
	switch {
	case errors.Is(err, exec.ErrNotFound):
		return 0, errors.Wrap(err, "run ffprobe")
	case err != nil:
		// ffprobe exits non-zero for files it cannot parse.
		return 0, errors.Wrap(ErrUnsupportedMedia, err.Error())
	}
	return parseDuration(raw)
}
