// Package progress tracks the daily study goal: per-category completion
// counts, a derived percentage and score, and a consecutive-day streak.
package progress

import (
	"log/slog"
	"sync"
	"time"

	"github.com/haerye/jindo/internal/dateutil"
	"github.com/haerye/jindo/internal/models"
	"github.com/haerye/jindo/internal/storage"
)

// Listener receives a snapshot of the progress record after every mutation.
// The snapshot is a deep copy taken after the persisted write completed.
type Listener func(models.DailyProgress)

// Tracker owns the app-progress record. All public methods are safe for
// concurrent use; the mutex exists because the day-boundary watcher runs on
// its own goroutine. Mutating methods never return errors: a failed
// persist is logged and the in-memory state stays authoritative until the
// next successful write.
type Tracker struct {
	mu    sync.Mutex
	store storage.Provider
	log   *slog.Logger
	now   func() time.Time

	data        models.DailyProgress
	lastSeenDay string

	listeners     []Listener
	goalListeners []Listener
}

// NewTracker loads the persisted record (falling back to defaults on
// missing or corrupt data), applies the lazy new-day reset, and persists
// the repaired state once.
func NewTracker(store storage.Provider, log *slog.Logger) *Tracker {
	t := &Tracker{
		store: store,
		log:   log,
		now:   time.Now,
	}
	t.load()
	return t
}

func (t *Tracker) load() {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := t.store.GetProgress()
	if err != nil {
		t.log.Warn("failed to load progress, starting from defaults", "error", err)
	}
	t.data = data
	t.lastSeenDay = dateutil.FormatDay(t.now())

	today := dateutil.FormatDay(t.now())
	if t.data.LastStudyDate != "" && t.data.LastStudyDate != today {
		t.resetForNewDay()
	}
	t.commit()
}

// Subscribe registers a listener for every progress mutation.
func (t *Tracker) Subscribe(fn Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// SubscribeGoalReached registers a listener for the one-shot signal fired
// when the daily percent first reaches 100. It fires at most once per day.
func (t *Tracker) SubscribeGoalReached(fn Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.goalListeners = append(t.goalListeners, fn)
}

// Summary returns a read-only snapshot of the current record.
func (t *Tracker) Summary() models.DailyProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data.Clone()
}

// CompleteItem records one completion event. category says which daily
// bucket the item counts toward; CategoryNone items count toward the
// aggregate total only. itemKey deduplicates repeat completions of the
// same item within one day; an empty key always counts (aggregate only,
// no dedup, mirroring keyless completions). sectionHint overrides the
// section stored for the resume affordance.
func (t *Tracker) CompleteItem(category models.Category, itemKey, sectionHint string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := dateutil.FormatDay(t.now())
	last := t.data.LastStudyDate

	streak := t.data.Streak
	switch {
	case last == "":
		streak = 1
	case last == today:
		if streak < 1 {
			streak = 1
		}
	default:
		if dateutil.DayDiff(last, today) == 1 {
			streak++
		} else {
			streak = 1
		}
	}

	// First study after midnight starts today's counters from zero.
	if last != "" && last != today {
		t.resetForNewDay()
	}

	section := sectionHint
	if section == "" {
		section = category.Section()
	}

	if itemKey != "" && t.data.HasItemKey(itemKey) {
		// Already counted today: only streak, date and section move.
		t.data.LastStudyDate = today
		t.data.Streak = streak
		t.data.LastSection = section
		t.commit()
		return
	}

	if itemKey != "" {
		t.data.CompletedItemKeys = append(t.data.CompletedItemKeys, itemKey)
		t.data.CompletedItems++
		if category.Known() {
			t.data.CompletedByCategory[string(category)]++
		}
	} else {
		t.data.CompletedItems++
	}

	t.data.LastStudyDate = today
	t.data.Streak = streak
	t.data.LastSection = section
	t.commit()
}

// SetGoals updates the per-category daily targets and recomputes the
// derived fields immediately. Goals for unknown or non-goal categories are
// ignored; negative targets are ignored.
func (t *Tracker) SetGoals(goals map[models.Category]int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, c := range models.GoalCategories() {
		if v, ok := goals[c]; ok && v >= 0 {
			t.data.Goals[string(c)] = v
		}
	}
	t.commit()
}

// RollDayIfNeeded is the day-boundary correction for long-running
// processes: when the calendar day has changed since the last check it
// resets the daily counters and re-derives the record. Calling it twice in
// one tick, or after a post-midnight completion already rolled the day
// lazily, is harmless: the reset only applies when the record still points
// at a previous study date.
func (t *Tracker) RollDayIfNeeded() {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := dateutil.FormatDay(t.now())
	if today == t.lastSeenDay {
		return
	}
	t.lastSeenDay = today

	if t.data.LastStudyDate != "" && t.data.LastStudyDate != today {
		t.resetForNewDay()
	}
	t.commit()
}

// resetForNewDay zeroes the per-day counters. Streak, goals and
// lastStudyDate are left alone; callers decide those. mu must be held.
func (t *Tracker) resetForNewDay() {
	t.data.CompletedItems = 0
	t.data.Percent = 0
	t.data.Score = 0
	t.data.CompletedItemKeys = []string{}
	t.data.GoalCelebrated = false
	for _, c := range models.Categories() {
		t.data.CompletedByCategory[string(c)] = 0
	}
}

// commit re-derives totalItems, percent and score, persists the record,
// and notifies listeners with a post-write snapshot. The goal-reached
// signal fires only on the upward edge past 100 percent. mu must be held.
func (t *Tracker) commit() {
	t.data.Normalize()

	total := t.data.GoalSum()
	if total <= 0 {
		total = models.FallbackTotalItems
	}
	t.data.TotalItems = total

	pct := 100 * t.data.CompletedItems / total
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	t.data.Percent = pct
	t.data.Score = TotalScore(t.data.CompletedByCategory)

	goalEdge := false
	if t.data.Percent >= 100 && !t.data.GoalCelebrated {
		t.data.GoalCelebrated = true
		goalEdge = true
	}

	if err := t.store.SaveProgress(t.data); err != nil {
		t.log.Warn("failed to persist progress", "error", err)
	}

	snap := t.data.Clone()
	for _, fn := range t.listeners {
		fn(snap)
	}
	if goalEdge {
		for _, fn := range t.goalListeners {
			fn(snap)
		}
	}
}
