package videomatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"greenline/internal/logging"
)

// Watcher reruns a mapping whenever video files are created, renamed or
// removed in Dir. Bursts of events inside Debounce collapse into one run.
type Watcher struct {
	Dir       string
	Extension string
	Debounce  time.Duration
	Logger    *slog.Logger
	// OnChange is called after each settled burst. Errors are logged and the
	// watcher keeps running.
	OnChange func(ctx context.Context) error
}

// Run blocks until ctx is cancelled or the underlying watcher fails to start.
func (w *Watcher) Run(ctx context.Context) error {
	logger := logging.NewComponentLogger(w.Logger, "videos-watch")
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.Dir, err)
	}
	logger.Info("watching videos directory", logging.String("dir", w.Dir))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("videos directory changed",
				logging.String("path", event.Name),
				logging.String("op", event.Op.String()))
			pending = true
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(logger, "videos watcher error", "videos_watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "some directory changes may be missed until the next event"))

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := w.OnChange(ctx); err != nil {
				logging.ErrorWithContext(logger, "video mapping rerun failed", "videos_watch_apply_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "fix the dataset and touch a video file to retry"))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	if w.Extension == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(event.Name), strings.ToLower(w.Extension))
}
