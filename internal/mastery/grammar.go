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

// GrammarTracker owns the pkc-grammar-mastery record.
type GrammarTracker struct {
	mu    sync.Mutex
	store storage.Provider
	log   *slog.Logger
	now   func() time.Time
	data  models.GrammarMasteryData
}

func NewGrammarTracker(store storage.Provider, log *slog.Logger) *GrammarTracker {
	t := &GrammarTracker{
		store: store,
		log:   log,
		now:   time.Now,
	}
	data, err := store.GetGrammarMastery()
	if err != nil {
		log.Warn("failed to load grammar mastery, starting from defaults", "error", err)
	}
	t.data = data
	return t
}

// RecordUnitStudy upserts the unit entry and rolls the event up into the
// owning category. The category's distinct-unit count only moves the first
// time a unit is ever studied; its label is overwritten with the latest
// supplied one so a locale switch relabels without losing counts. Missing
// unit or category IDs degrade to a no-op.
func (t *GrammarTracker) RecordUnitStudy(unitID, categoryID, categoryLabel string) {
	if unitID == "" || categoryID == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	unit, ok := t.data.Units[unitID]
	if !ok {
		unit = models.GrammarUnitEntry{ID: unitID}
	}
	unit.CategoryID = categoryID
	unit.TimesStudied++
	unit.LastStudiedAt = &now
	t.data.Units[unitID] = unit

	cat, ok := t.data.Categories[categoryID]
	if !ok {
		cat = models.GrammarCategoryAggregate{ID: categoryID, Label: categoryID}
	}
	if categoryLabel != "" {
		cat.Label = categoryLabel
	}
	if unit.TimesStudied == 1 {
		cat.StudiedUnits++
	}
	cat.TotalStudies++
	cat.LastStudiedAt = &now
	t.data.Categories[categoryID] = cat

	t.persist()
}

// CategoryHeatmap returns one cell per known category, leveled by how many
// of its units were studied within the last 30 days: none is 0, one or two
// is 1, three or more is 2. Historic study outside the window does not
// count. Cells are ordered by category ID for stable output.
func (t *GrammarTracker) CategoryHeatmap() []models.HeatmapCell {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	recentByCategory := map[string]int{}
	for _, unit := range t.data.Units {
		if unit.LastStudiedAt == nil {
			continue
		}
		age := now.Sub(*unit.LastStudiedAt)
		if age >= 0 && age <= constants.HeatmapWindow {
			recentByCategory[unit.CategoryID]++
		}
	}

	cells := make([]models.HeatmapCell, 0, len(t.data.Categories))
	for _, cat := range t.data.Categories {
		recent := recentByCategory[cat.ID]
		level := 0
		switch {
		case recent >= constants.HeatmapActiveUnits:
			level = 2
		case recent >= constants.HeatmapStartedUnits:
			level = 1
		}
		label := cat.Label
		if label == "" {
			label = cat.ID
		}
		cells = append(cells, models.HeatmapCell{ID: cat.ID, Label: label, Level: level})
	}

	sort.Slice(cells, func(i, j int) bool { return cells[i].ID < cells[j].ID })
	return cells
}

// Snapshot returns a copy of the raw mastery data for display.
func (t *GrammarTracker) Snapshot() models.GrammarMasteryData {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := models.DefaultGrammarMastery()
	for k, v := range t.data.Categories {
		out.Categories[k] = v
	}
	for k, v := range t.data.Units {
		out.Units[k] = v
	}
	out.LastUpdated = t.data.LastUpdated
	return out
}

func (t *GrammarTracker) persist() {
	now := t.now()
	t.data.LastUpdated = &now
	if err := t.store.SaveGrammarMastery(t.data); err != nil {
		t.log.Warn("failed to persist grammar mastery", "error", err)
	}
}
