package progress

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/haerye/jindo/internal/models"
	"github.com/haerye/jindo/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	store := storage.NewJSONStore(t.TempDir())
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return NewTracker(store, testLogger())
}

// setDay pins the tracker's clock to local noon of a YYYY-MM-DD day.
func setDay(t *testing.T, tr *Tracker, day string) {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		t.Fatalf("bad day %q: %v", day, err)
	}
	fixed := parsed.Add(12 * time.Hour)
	tr.now = func() time.Time { return fixed }
}

func TestCompleteItem_CountsCategoryAndAggregate(t *testing.T) {
	tr := newTestTracker(t)
	setDay(t, tr, "2026-03-02")

	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")

	p := tr.Summary()
	if p.CompletedItems != 1 {
		t.Errorf("Expected 1 completed item, got %d", p.CompletedItems)
	}
	if p.CompletedByCategory["hangul"] != 1 {
		t.Errorf("Expected hangul bucket 1, got %d", p.CompletedByCategory["hangul"])
	}
	if p.LastStudyDate != "2026-03-02" {
		t.Errorf("Expected last study date 2026-03-02, got %s", p.LastStudyDate)
	}
	if p.Streak != 1 {
		t.Errorf("Expected streak 1 on first study, got %d", p.Streak)
	}
	if p.LastSection != "hangul-section" {
		t.Errorf("Expected section hangul-section, got %s", p.LastSection)
	}
}

func TestCompleteItem_SameKeyCountsOncePerDay(t *testing.T) {
	tr := newTestTracker(t)
	setDay(t, tr, "2026-03-02")

	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")
	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")

	p := tr.Summary()
	if p.CompletedItems != 1 {
		t.Errorf("Expected duplicate key to count once, got %d items", p.CompletedItems)
	}
	if p.CompletedByCategory["hangul"] != 1 {
		t.Errorf("Expected hangul bucket 1, got %d", p.CompletedByCategory["hangul"])
	}
}

func TestCompleteItem_EmptyKeyAlwaysCounts(t *testing.T) {
	tr := newTestTracker(t)
	setDay(t, tr, "2026-03-02")

	tr.CompleteItem(models.CategoryNone, "", "")
	tr.CompleteItem(models.CategoryNone, "", "")

	p := tr.Summary()
	if p.CompletedItems != 2 {
		t.Errorf("Expected keyless completions to always count, got %d", p.CompletedItems)
	}
	if len(p.CompletedItemKeys) != 0 {
		t.Errorf("Expected no stored keys, got %v", p.CompletedItemKeys)
	}
}

func TestCompleteItem_UnknownCategoryCountsAggregateOnly(t *testing.T) {
	tr := newTestTracker(t)
	setDay(t, tr, "2026-03-02")

	tr.CompleteItem(models.CategoryNone, "listening:ep1", "")

	p := tr.Summary()
	if p.CompletedItems != 1 {
		t.Errorf("Expected 1 completed item, got %d", p.CompletedItems)
	}
	for cat, n := range p.CompletedByCategory {
		if n != 0 {
			t.Errorf("Expected empty %s bucket, got %d", cat, n)
		}
	}
	if p.Score != 0 {
		t.Errorf("Expected uncategorized item to add no score, got %v", p.Score)
	}
}

func TestCompleteItem_PercentDerivedFromGoalSum(t *testing.T) {
	tr := newTestTracker(t)
	setDay(t, tr, "2026-03-02")

	tr.SetGoals(map[models.Category]int{
		models.CategoryHangul:     2,
		models.CategoryVocabulary: 1,
		models.CategoryGrammar:    1,
	})
	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")

	p := tr.Summary()
	if p.TotalItems != 4 {
		t.Errorf("Expected total items 4, got %d", p.TotalItems)
	}
	if p.Percent != 25 {
		t.Errorf("Expected 25 percent, got %d", p.Percent)
	}
}

func TestCompleteItem_StreakIncrementsOnConsecutiveDay(t *testing.T) {
	tr := newTestTracker(t)

	setDay(t, tr, "2026-03-02")
	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")

	setDay(t, tr, "2026-03-03")
	tr.CompleteItem(models.CategoryHangul, "hangul:g2", "")

	p := tr.Summary()
	if p.Streak != 2 {
		t.Errorf("Expected streak 2 after consecutive days, got %d", p.Streak)
	}
}

func TestCompleteItem_StreakResetsAfterGap(t *testing.T) {
	tr := newTestTracker(t)

	setDay(t, tr, "2026-03-02")
	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")

	setDay(t, tr, "2026-03-05")
	tr.CompleteItem(models.CategoryHangul, "hangul:g2", "")

	p := tr.Summary()
	if p.Streak != 1 {
		t.Errorf("Expected streak reset to 1 after a gap, got %d", p.Streak)
	}
}

func TestCompleteItem_NewDayResetsCountersButCountsNewItem(t *testing.T) {
	tr := newTestTracker(t)

	setDay(t, tr, "2026-03-02")
	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")
	tr.CompleteItem(models.CategoryVocabulary, "vocab:w1", "")

	setDay(t, tr, "2026-03-03")
	tr.CompleteItem(models.CategoryGrammar, "grammar:u1", "")

	p := tr.Summary()
	if p.CompletedItems != 1 {
		t.Errorf("Expected fresh day to hold 1 item, got %d", p.CompletedItems)
	}
	if p.CompletedByCategory["hangul"] != 0 {
		t.Errorf("Expected hangul bucket reset, got %d", p.CompletedByCategory["hangul"])
	}
	if p.CompletedByCategory["grammar"] != 1 {
		t.Errorf("Expected grammar bucket 1, got %d", p.CompletedByCategory["grammar"])
	}
	// The same key counts again on a new day.
	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")
	if got := tr.Summary().CompletedItems; got != 2 {
		t.Errorf("Expected yesterday's key to count again today, got %d items", got)
	}
}

func TestGoalReached_FiresOncePerDay(t *testing.T) {
	tr := newTestTracker(t)
	setDay(t, tr, "2026-03-02")

	fired := 0
	tr.SubscribeGoalReached(func(p models.DailyProgress) {
		fired++
		if !p.GoalCelebrated {
			t.Errorf("Expected goal-reached snapshot to be celebrated")
		}
	})

	tr.SetGoals(map[models.Category]int{
		models.CategoryHangul:     1,
		models.CategoryVocabulary: 0,
		models.CategoryGrammar:    0,
	})
	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")
	tr.CompleteItem(models.CategoryHangul, "hangul:g2", "")

	if fired != 1 {
		t.Errorf("Expected goal-reached to fire exactly once, fired %d times", fired)
	}

	// The next day re-arms the signal.
	setDay(t, tr, "2026-03-03")
	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")
	if fired != 2 {
		t.Errorf("Expected goal-reached to fire again the next day, fired %d times", fired)
	}
}

func TestSubscribe_ReceivesSnapshotAfterEveryMutation(t *testing.T) {
	tr := newTestTracker(t)
	setDay(t, tr, "2026-03-02")

	var got []models.DailyProgress
	tr.Subscribe(func(p models.DailyProgress) { got = append(got, p) })

	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")
	tr.CompleteItem(models.CategoryVocabulary, "vocab:w1", "")

	if len(got) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(got))
	}
	if got[1].CompletedItems != 2 {
		t.Errorf("Expected second snapshot to hold 2 items, got %d", got[1].CompletedItems)
	}

	// Mutating the snapshot must not leak into the tracker.
	got[1].CompletedByCategory["hangul"] = 99
	if tr.Summary().CompletedByCategory["hangul"] != 1 {
		t.Errorf("Listener snapshot mutation leaked into the tracker")
	}
}

func TestSetGoals_IgnoresNegativeAndNonGoalCategories(t *testing.T) {
	tr := newTestTracker(t)
	setDay(t, tr, "2026-03-02")

	tr.SetGoals(map[models.Category]int{
		models.CategoryHangul:    -5,
		models.CategoryFlashcard: 7,
	})

	p := tr.Summary()
	if p.Goals["hangul"] != models.DefaultHangulGoal {
		t.Errorf("Expected negative goal ignored, got %d", p.Goals["hangul"])
	}
	if _, ok := p.Goals["flashcard"]; ok {
		t.Errorf("Expected flashcard to carry no goal")
	}
}

func TestSetGoals_ZeroSumFallsBackToFiftyItems(t *testing.T) {
	tr := newTestTracker(t)
	setDay(t, tr, "2026-03-02")

	tr.SetGoals(map[models.Category]int{
		models.CategoryHangul:     0,
		models.CategoryVocabulary: 0,
		models.CategoryGrammar:    0,
	})

	if got := tr.Summary().TotalItems; got != models.FallbackTotalItems {
		t.Errorf("Expected fallback total of %d, got %d", models.FallbackTotalItems, got)
	}
}

func TestRollDayIfNeeded_ResetsAfterMidnight(t *testing.T) {
	tr := newTestTracker(t)

	setDay(t, tr, "2026-03-02")
	tr.lastSeenDay = "2026-03-02"
	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")

	setDay(t, tr, "2026-03-03")
	tr.RollDayIfNeeded()

	p := tr.Summary()
	if p.CompletedItems != 0 {
		t.Errorf("Expected counters reset after midnight, got %d items", p.CompletedItems)
	}
	if p.Streak != 1 {
		t.Errorf("Expected streak untouched by the day roll, got %d", p.Streak)
	}
}

func TestRollDayIfNeeded_DoesNotWipePostMidnightProgress(t *testing.T) {
	tr := newTestTracker(t)

	setDay(t, tr, "2026-03-02")
	tr.lastSeenDay = "2026-03-02"
	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")

	// A completion just after midnight already rolled the day lazily.
	setDay(t, tr, "2026-03-03")
	tr.CompleteItem(models.CategoryHangul, "hangul:g2", "")

	tr.RollDayIfNeeded()

	if got := tr.Summary().CompletedItems; got != 1 {
		t.Errorf("Expected the watcher to keep today's progress, got %d items", got)
	}
}

func TestRollDayIfNeeded_IdempotentWithinADay(t *testing.T) {
	tr := newTestTracker(t)

	setDay(t, tr, "2026-03-02")
	tr.lastSeenDay = "2026-03-02"
	tr.CompleteItem(models.CategoryHangul, "hangul:g1", "")

	tr.RollDayIfNeeded()
	tr.RollDayIfNeeded()

	if got := tr.Summary().CompletedItems; got != 1 {
		t.Errorf("Expected same-day rolls to be no-ops, got %d items", got)
	}
}

func TestNewTracker_StaleRecordResetsOnLoad(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewJSONStore(dir)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	stale := models.DefaultProgress()
	stale.LastStudyDate = "2020-01-01"
	stale.CompletedItems = 30
	stale.CompletedItemKeys = []string{"hangul:g1"}
	stale.Streak = 4
	if err := store.SaveProgress(stale); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}

	tr := NewTracker(store, testLogger())

	p := tr.Summary()
	if p.CompletedItems != 0 {
		t.Errorf("Expected stale counters cleared on load, got %d items", p.CompletedItems)
	}
	if p.Streak != 4 {
		t.Errorf("Expected streak preserved until the next completion, got %d", p.Streak)
	}
	if p.LastStudyDate != "2020-01-01" {
		t.Errorf("Expected last study date untouched by the load reset, got %s", p.LastStudyDate)
	}
}

func TestNewTracker_PersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewJSONStore(dir)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tr := NewTracker(store, testLogger())
	tr.CompleteItem(models.CategoryVocabulary, "vocab:w1", "")

	reloaded := NewTracker(store, testLogger())
	p := reloaded.Summary()
	if p.CompletedItems != 1 {
		t.Errorf("Expected progress to survive a restart, got %d items", p.CompletedItems)
	}
	if !p.HasItemKey("vocab:w1") {
		t.Errorf("Expected completed key to survive a restart")
	}
}
