package models

// DailyProgress is the single daily-goal record, overwritten in place.
// Percent, Score and TotalItems are derived fields; the tracker recomputes
// them on every mutation.
type DailyProgress struct {
	Percent             int            `json:"percent"`
	Score               float64        `json:"score"`
	Streak              int            `json:"streak"`
	LastStudyDate       string         `json:"last_study_date,omitempty"` // YYYY-MM-DD
	TotalItems          int            `json:"total_items"`
	CompletedItems      int            `json:"completed_items"`
	CompletedItemKeys   []string       `json:"completed_item_keys"`
	Goals               map[string]int `json:"goals"`
	CompletedByCategory map[string]int `json:"completed_by_category"`
	LastSection         string         `json:"last_section,omitempty"`
	GoalCelebrated      bool           `json:"goal_celebrated"`
}

const (
	DefaultHangulGoal     = 10
	DefaultVocabularyGoal = 20
	DefaultGrammarGoal    = 20

	// FallbackTotalItems is used when the goal sum is zero.
	FallbackTotalItems = 50
)

// DefaultProgress returns the record created on first load.
func DefaultProgress() DailyProgress {
	p := DailyProgress{
		TotalItems:        FallbackTotalItems,
		CompletedItemKeys: []string{},
		Goals: map[string]int{
			string(CategoryHangul):     DefaultHangulGoal,
			string(CategoryVocabulary): DefaultVocabularyGoal,
			string(CategoryGrammar):    DefaultGrammarGoal,
		},
		CompletedByCategory: map[string]int{},
	}
	for _, c := range Categories() {
		p.CompletedByCategory[string(c)] = 0
	}
	return p
}

// Normalize repairs a record loaded from storage: missing maps and slices
// are filled in, and the category key sets are forced back to the fixed
// closed sets. Unknown keys in either map are dropped.
func (p *DailyProgress) Normalize() {
	if p.CompletedItemKeys == nil {
		p.CompletedItemKeys = []string{}
	}

	goals := map[string]int{
		string(CategoryHangul):     DefaultHangulGoal,
		string(CategoryVocabulary): DefaultVocabularyGoal,
		string(CategoryGrammar):    DefaultGrammarGoal,
	}
	for _, c := range GoalCategories() {
		if v, ok := p.Goals[string(c)]; ok && v >= 0 {
			goals[string(c)] = v
		}
	}
	p.Goals = goals

	counts := map[string]int{}
	for _, c := range Categories() {
		counts[string(c)] = 0
		if v, ok := p.CompletedByCategory[string(c)]; ok && v > 0 {
			counts[string(c)] = v
		}
	}
	p.CompletedByCategory = counts

	if p.Streak < 0 {
		p.Streak = 0
	}
	if p.CompletedItems < 0 {
		p.CompletedItems = 0
	}
}

// HasItemKey reports whether key was already counted today.
func (p DailyProgress) HasItemKey(key string) bool {
	for _, k := range p.CompletedItemKeys {
		if k == key {
			return true
		}
	}
	return false
}

// GoalSum returns the sum of all per-category daily targets.
func (p DailyProgress) GoalSum() int {
	sum := 0
	for _, v := range p.Goals {
		sum += v
	}
	return sum
}

// Clone returns a deep copy safe to hand to listeners.
func (p DailyProgress) Clone() DailyProgress {
	out := p
	out.CompletedItemKeys = append([]string{}, p.CompletedItemKeys...)
	out.Goals = make(map[string]int, len(p.Goals))
	for k, v := range p.Goals {
		out.Goals[k] = v
	}
	out.CompletedByCategory = make(map[string]int, len(p.CompletedByCategory))
	for k, v := range p.CompletedByCategory {
		out.CompletedByCategory[k] = v
	}
	return out
}
