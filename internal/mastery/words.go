// Package mastery tracks long-term per-item performance, separate from the
// daily goal counters: word-level correct/wrong tallies with a strength
// classification, and grammar-unit study counts rolled up into per-category
// recency heatmap levels.
package mastery

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/haerye/jindo/internal/constants"
	"github.com/haerye/jindo/internal/models"
	"github.com/haerye/jindo/internal/storage"
)

// Strength buckets for a word's historical accuracy.
type Strength int

const (
	StrengthWeak Strength = iota
	StrengthMedium
	StrengthStrong
)

// Classify buckets an entry by accuracy. Strong needs both accuracy of at
// least 0.8 and two correct answers; weak is accuracy under 0.4. Entries
// with zero attempts must be excluded by the caller before classifying.
func Classify(e models.WordMasteryEntry) Strength {
	attempts := e.Attempts()
	if attempts == 0 {
		return StrengthWeak
	}
	accuracy := float64(e.Correct) / float64(attempts)
	switch {
	case accuracy >= constants.StrongAccuracy && e.Correct >= constants.StrongMinCorrect:
		return StrengthStrong
	case accuracy >= constants.WeakAccuracy:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}

// RecentWrong is one recently missed word in the summary projection.
type RecentWrong struct {
	Text        string
	Meaning     string
	Wrong       int
	LastWrongAt time.Time
}

// WordSummary aggregates the tracked words. Entries with zero attempts are
// skipped entirely: they are neither counted nor classified.
type WordSummary struct {
	TotalTracked   int
	StrongCount    int
	MediumCount    int
	WeakCount      int
	RecentWrongTop []RecentWrong
}

// WordTracker owns the pkc-word-mastery record.
type WordTracker struct {
	mu    sync.Mutex
	store storage.Provider
	log   *slog.Logger
	now   func() time.Time
	data  models.WordMasteryData
}

func NewWordTracker(store storage.Provider, log *slog.Logger) *WordTracker {
	t := &WordTracker{
		store: store,
		log:   log,
		now:   time.Now,
	}
	data, err := store.GetWordMastery()
	if err != nil {
		log.Warn("failed to load word mastery, starting from defaults", "error", err)
	}
	t.data = data
	return t
}

// RecordResult tallies one flashcard answer for word. Words without a
// display text are ignored; the entry is keyed by the word's explicit ID
// when present, otherwise by its text.
func (t *WordTracker) RecordResult(word models.VocabWord, isCorrect bool) {
	if word.Text == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := word.MasteryKey()
	now := t.now()

	entry, ok := t.data.Words[key]
	if !ok {
		entry = models.WordMasteryEntry{
			ID:      key,
			Text:    word.Text,
			Meaning: word.Meaning,
		}
	}

	if isCorrect {
		entry.Correct++
		entry.LastCorrectAt = &now
	} else {
		entry.Wrong++
		entry.LastWrongAt = &now
	}

	t.data.Words[key] = entry
	t.persist()
}

// Summary classifies every tracked word and projects the words missed
// within the last seven days, most recent first, capped at ten.
func (t *WordTracker) Summary() WordSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := WordSummary{RecentWrongTop: []RecentWrong{}}
	now := t.now()
	var recent []models.WordMasteryEntry

	for _, entry := range t.data.Words {
		if entry.Attempts() == 0 {
			continue
		}
		out.TotalTracked++

		switch Classify(entry) {
		case StrengthStrong:
			out.StrongCount++
		case StrengthMedium:
			out.MediumCount++
		default:
			out.WeakCount++
		}

		if entry.LastWrongAt != nil && now.Sub(*entry.LastWrongAt) <= constants.RecentWrongWindow {
			recent = append(recent, entry)
		}
	}

	sort.Slice(recent, func(i, j int) bool {
		return recent[i].LastWrongAt.After(*recent[j].LastWrongAt)
	})
	if len(recent) > constants.RecentWrongLimit {
		recent = recent[:constants.RecentWrongLimit]
	}
	for _, e := range recent {
		out.RecentWrongTop = append(out.RecentWrongTop, RecentWrong{
			Text:        e.Text,
			Meaning:     e.Meaning,
			Wrong:       e.Wrong,
			LastWrongAt: *e.LastWrongAt,
		})
	}

	return out
}

func (t *WordTracker) persist() {
	now := t.now()
	t.data.LastUpdated = &now
	if err := t.store.SaveWordMastery(t.data); err != nil {
		t.log.Warn("failed to persist word mastery", "error", err)
	}
}
