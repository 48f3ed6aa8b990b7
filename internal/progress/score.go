package progress

import "github.com/haerye/jindo/internal/models"

// ScoreRule defines how one category's completions convert into daily
// score points: each completion is worth PerClick points, capped at Cap.
type ScoreRule struct {
	Cap      float64
	PerClick float64
}

// ScoreRules is the fixed daily score table. The four caps sum to exactly
// 100, so a full day in every category scores a round 100.
var ScoreRules = map[models.Category]ScoreRule{
	models.CategoryHangul:     {Cap: 15, PerClick: 1},
	models.CategoryVocabulary: {Cap: 15, PerClick: 1},
	models.CategoryFlashcard:  {Cap: 35, PerClick: 2.5},
	models.CategoryGrammar:    {Cap: 35, PerClick: 2.5},
}

// MaxTotalScore is the ceiling applied to the summed points.
const MaxTotalScore = 100

// CategoryScore is one category's contribution to the daily score.
type CategoryScore struct {
	Count    int
	PerClick float64
	Cap      float64
	Points   float64
}

// ScoreBreakdown converts per-category completion counts into per-category
// point contributions. Unknown keys in counts are ignored.
func ScoreBreakdown(counts map[string]int) map[models.Category]CategoryScore {
	out := make(map[models.Category]CategoryScore, len(ScoreRules))
	for _, cat := range models.Categories() {
		rule := ScoreRules[cat]
		count := counts[string(cat)]
		points := float64(count) * rule.PerClick
		if points > rule.Cap {
			points = rule.Cap
		}
		out[cat] = CategoryScore{
			Count:    count,
			PerClick: rule.PerClick,
			Cap:      rule.Cap,
			Points:   points,
		}
	}
	return out
}

// TotalScore returns min(MaxTotalScore, sum of capped per-category points).
func TotalScore(counts map[string]int) float64 {
	total := 0.0
	for _, cs := range ScoreBreakdown(counts) {
		total += cs.Points
	}
	if total > MaxTotalScore {
		return MaxTotalScore
	}
	return total
}
