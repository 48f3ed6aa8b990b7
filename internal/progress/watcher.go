package progress

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/haerye/jindo/internal/constants"
)

// Watcher periodically checks for a calendar-day change while a
// long-running process (the TUI) keeps the tracker in memory across
// midnight. It is a correction mechanism only; the tracker also rolls the
// day lazily on load and on every completion.
type Watcher struct {
	tracker   *Tracker
	log       *slog.Logger
	scheduler *gocron.Scheduler
}

func NewWatcher(t *Tracker, log *slog.Logger) *Watcher {
	return &Watcher{tracker: t, log: log}
}

// Start schedules the day-boundary check on a background goroutine.
func (w *Watcher) Start() error {
	if w.scheduler != nil {
		return fmt.Errorf("watcher already started")
	}

	s := gocron.NewScheduler(time.Local)
	_, err := s.Every(constants.WatcherInterval).Do(func() {
		w.tracker.RollDayIfNeeded()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule day-boundary watcher: %w", err)
	}

	s.StartAsync()
	w.scheduler = s
	w.log.Debug("day-boundary watcher started", "interval", constants.WatcherInterval)
	return nil
}

// Stop halts the watcher. Safe to call when never started.
func (w *Watcher) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
		w.scheduler = nil
	}
}
