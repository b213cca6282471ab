package thumbs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"birdcam-gallery/internal/logging"
)

// FrameExtractor decodes one video frame at the given offset and returns it
// as an encoded still image. Implementations must honor ctx cancellation.
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, source string, offset time.Duration) ([]byte, error)
}

// FFmpeg extracts frames by shelling out to ffmpeg, which reads the video
// straight from its URL and writes a single PNG frame to stdout.
type FFmpeg struct{}

// ExtractFrame runs ffmpeg against source, seeking to offset first.
func (FFmpeg) ExtractFrame(ctx context.Context, source string, offset time.Duration) ([]byte, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}

	args := []string{
		"-ss", fmt.Sprintf("%.3f", offset.Seconds()),
		"-i", source,
		"-vframes", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %v, stderr: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output for %s", source)
	}

	logging.Debug("ffmpeg frame for %s at %v: %d bytes", source, offset, stdout.Len())
	return stdout.Bytes(), nil
}
