package cli

import (
	"fmt"

	"github.com/haerye/jindo/internal/models"
)

type StudyCmd struct {
	ItemKey  string `arg:"" help:"Item key, e.g. hangul:ga, vocab:123, grammar:u1."`
	Category string `short:"c" help:"Category override (hangul|vocabulary|flashcard|grammar); defaults to the key prefix."`
	Section  string `short:"s" help:"Section hint stored for the resume affordance."`
}

func (c *StudyCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	category := models.ParseItemKey(c.ItemKey)
	if c.Category != "" {
		var err error
		category, err = models.ParseCategory(c.Category)
		if err != nil {
			return err
		}
	}

	ctx.Progress.CompleteItem(category, c.ItemKey, c.Section)

	summary := ctx.Progress.Summary()
	if category.Known() {
		fmt.Printf("Recorded %s completion: %s\n", category, c.ItemKey)
	} else {
		fmt.Printf("Recorded completion: %s (uncategorized)\n", c.ItemKey)
	}
	fmt.Printf("Today: %d/%d items (%d%%), streak %d day(s)\n",
		summary.CompletedItems, summary.TotalItems, summary.Percent, summary.Streak)
	if summary.GoalCelebrated && summary.Percent >= 100 {
		fmt.Println("Daily goal reached! 🎉")
	}
	return nil
}
