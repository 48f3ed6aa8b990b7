package cli

import (
	"fmt"

	"github.com/haerye/jindo/internal/models"
	"github.com/haerye/jindo/internal/progress"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	p := ctx.Progress.Summary()

	fmt.Printf("Today's goal: %d/%d items (%d%%)\n", p.CompletedItems, p.TotalItems, p.Percent)
	fmt.Printf("Score: %.1f/100\n", p.Score)
	fmt.Printf("Streak: %d day(s)\n", p.Streak)
	if p.LastStudyDate != "" {
		fmt.Printf("Last studied: %s\n", p.LastStudyDate)
	}
	if p.LastSection != "" {
		fmt.Printf("Resume: %s\n", p.LastSection)
	}

	fmt.Println()
	fmt.Println("Score breakdown:")
	breakdown := progress.ScoreBreakdown(p.CompletedByCategory)
	for _, cat := range models.Categories() {
		cs := breakdown[cat]
		fmt.Printf("  %-11s %3d done  %5.1f/%.0f pts\n", cat, cs.Count, cs.Points, cs.Cap)
	}

	fmt.Println()
	fmt.Println("Daily goals:")
	for _, cat := range models.GoalCategories() {
		fmt.Printf("  %-11s %d/%d\n", cat, p.CompletedByCategory[string(cat)], p.Goals[string(cat)])
	}

	if p.GoalCelebrated && p.Percent >= 100 {
		fmt.Println("\nDaily goal reached! 🎉")
	}
	return nil
}
