package progress

import (
	"testing"

	"github.com/haerye/jindo/internal/models"
)

func TestScoreRules_CapsSumToMax(t *testing.T) {
	var sum float64
	for _, cat := range models.Categories() {
		sum += ScoreRules[cat].Cap
	}
	if sum != MaxTotalScore {
		t.Errorf("Expected caps to sum to %d, got %v", MaxTotalScore, sum)
	}
}

func TestTotalScore_FullDayScoresExactlyOneHundred(t *testing.T) {
	counts := map[string]int{
		"hangul":     20,
		"vocabulary": 20,
		"flashcard":  20,
		"grammar":    20,
	}

	score := TotalScore(counts)
	if score != 100 {
		t.Errorf("Expected a full day to score 100, got %v", score)
	}
}

func TestTotalScore_CapsEachCategory(t *testing.T) {
	// 50 hangul clicks are worth at most the 15-point cap.
	counts := map[string]int{"hangul": 50}

	score := TotalScore(counts)
	if score != 15 {
		t.Errorf("Expected capped hangul score of 15, got %v", score)
	}
}

func TestTotalScore_FractionalPerClick(t *testing.T) {
	counts := map[string]int{"flashcard": 3}

	score := TotalScore(counts)
	if score != 7.5 {
		t.Errorf("Expected 3 flashcards to score 7.5, got %v", score)
	}
}

func TestScoreBreakdown_IgnoresUnknownKeys(t *testing.T) {
	counts := map[string]int{"hangul": 2, "listening": 99}

	breakdown := ScoreBreakdown(counts)
	if len(breakdown) != 4 {
		t.Fatalf("Expected 4 categories in breakdown, got %d", len(breakdown))
	}
	if breakdown[models.CategoryHangul].Points != 2 {
		t.Errorf("Expected hangul points 2, got %v", breakdown[models.CategoryHangul].Points)
	}
}

func TestTotalScore_EmptyCounts(t *testing.T) {
	if score := TotalScore(map[string]int{}); score != 0 {
		t.Errorf("Expected empty counts to score 0, got %v", score)
	}
}
