package models

import "time"

// WordMasteryEntry is the per-word correct/incorrect tally.
type WordMasteryEntry struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Meaning       string     `json:"meaning,omitempty"`
	Correct       int        `json:"correct"`
	Wrong         int        `json:"wrong"`
	LastCorrectAt *time.Time `json:"last_correct_at,omitempty"`
	LastWrongAt   *time.Time `json:"last_wrong_at,omitempty"`
}

// Attempts returns the total number of recorded answers.
func (e WordMasteryEntry) Attempts() int {
	return e.Correct + e.Wrong
}

// WordMasteryData is the persisted pkc-word-mastery record.
type WordMasteryData struct {
	Words       map[string]WordMasteryEntry `json:"words"`
	LastUpdated *time.Time                  `json:"last_updated,omitempty"`
}

func DefaultWordMastery() WordMasteryData {
	return WordMasteryData{Words: map[string]WordMasteryEntry{}}
}

// GrammarUnitEntry tracks study counts for a single grammar unit.
type GrammarUnitEntry struct {
	ID            string     `json:"id"`
	CategoryID    string     `json:"category_id"`
	TimesStudied  int        `json:"times_studied"`
	LastStudiedAt *time.Time `json:"last_studied_at,omitempty"`
}

// GrammarCategoryAggregate rolls unit studies up to the category level.
// StudiedUnits counts distinct units; TotalStudies counts every event.
type GrammarCategoryAggregate struct {
	ID            string     `json:"id"`
	Label         string     `json:"label"`
	StudiedUnits  int        `json:"studied_units"`
	TotalStudies  int        `json:"total_studies"`
	LastStudiedAt *time.Time `json:"last_studied_at,omitempty"`
}

// GrammarMasteryData is the persisted pkc-grammar-mastery record.
type GrammarMasteryData struct {
	Categories  map[string]GrammarCategoryAggregate `json:"categories"`
	Units       map[string]GrammarUnitEntry         `json:"units"`
	LastUpdated *time.Time                          `json:"last_updated,omitempty"`
}

func DefaultGrammarMastery() GrammarMasteryData {
	return GrammarMasteryData{
		Categories: map[string]GrammarCategoryAggregate{},
		Units:      map[string]GrammarUnitEntry{},
	}
}

// HeatmapCell is one grammar category's recency-weighted proficiency level.
// Level is 0 (untouched), 1 (some recent study) or 2 (active).
type HeatmapCell struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Level int    `json:"level"`
}
