package cli

import (
	"log/slog"

	"github.com/haerye/jindo/internal/backup"
	"github.com/haerye/jindo/internal/mastery"
	"github.com/haerye/jindo/internal/progress"
	"github.com/haerye/jindo/internal/storage"
)

// Context carries the storage provider and the trackers into every command.
// Trackers are constructed lazily on first Load so commands like init can
// run against an empty store.
type Context struct {
	Store  storage.Provider
	Logger *slog.Logger

	Progress *progress.Tracker
	Words    *mastery.WordTracker
	Grammar  *mastery.GrammarTracker

	loaded bool
}

// Load opens the store and constructs the trackers. Safe to call more than
// once.
func (c *Context) Load() error {
	if c.loaded {
		return nil
	}
	if err := c.Store.Load(); err != nil {
		return err
	}
	c.Progress = progress.NewTracker(c.Store, c.Logger)
	c.Words = mastery.NewWordTracker(c.Store, c.Logger)
	c.Grammar = mastery.NewGrammarTracker(c.Store, c.Logger)
	c.loaded = true
	return nil
}

// PerformAutomaticBackup backs the store up on a best-effort basis; used
// when the TUI starts. Failures are logged, never fatal.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetDataPath())
	if _, err := mgr.CreateBackup(); err != nil {
		c.Logger.Warn("automatic backup failed", "error", err)
	}
}
