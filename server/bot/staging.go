package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
)

// StagedImage is the working copy of a submitted photo, held only for the
// duration of one processing attempt. The attempt that created it owns it
// exclusively and removes it on every exit path.
type StagedImage struct {
	Path string
}

// stagePhoto downloads the highest-resolution variant of the submitted photo
// into a per-attempt file. The path carries a generated attempt id so that
// concurrent attempts, including from the same chat, never collide.
func (b *Bot) stagePhoto(ctx context.Context, evt *Event) (*StagedImage, error) {
	photo, ok := evt.LargestPhoto()
	if !ok {
		return nil, errors.New("event carries no photo variants")
	}

	if err := os.MkdirAll(b.profile.StagingDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create staging directory")
	}

	name := fmt.Sprintf("%d_%s_input.jpg", evt.ChatID, shortuuid.New())
	path := filepath.Join(b.profile.StagingDir, name)

	if err := b.transport.DownloadPhoto(ctx, photo.FileID, path); err != nil {
		_ = os.Remove(path) // partial download
		return nil, errors.Wrap(err, "failed to download photo")
	}
	return &StagedImage{Path: path}, nil
}

// Bytes reads the staged file.
func (s *StagedImage) Bytes() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read staged image")
	}
	return data, nil
}

// Remove deletes the staged file. Failures other than the file already being
// gone are logged, not returned; cleanup never blocks the caller's exit path.
func (s *StagedImage) Remove(logger *slog.Logger) {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to remove staged image", "path", s.Path, "error", err)
	}
}
