package constants

import "time"

const (
	// Word strength classification:
	// - strong requires both a high accuracy and a minimum number of
	//   correct answers, so a single lucky guess never counts as mastery.
	// - weak is anything below WeakAccuracy.
	// - everything in between is medium.
	StrongAccuracy   = 0.8
	StrongMinCorrect = 2
	WeakAccuracy     = 0.4

	// RecentWrongWindow bounds the "recently missed words" list; entries
	// whose last wrong answer is older than this are not shown.
	RecentWrongWindow = 7 * 24 * time.Hour
	RecentWrongLimit  = 10

	// HeatmapWindow is the recency window for grammar heatmap levels.
	// Units untouched for longer stop contributing regardless of how
	// often they were studied historically.
	HeatmapWindow       = 30 * 24 * time.Hour
	HeatmapActiveUnits  = 3 // recent units needed for level 2
	HeatmapStartedUnits = 1 // recent units needed for level 1
)

// WatcherInterval is how often the day-boundary watcher checks for a date
// change. The interval is a correction mechanism, not a contract; the
// authoritative reset also happens lazily on load and on completion.
const WatcherInterval = time.Minute
