package cli

import (
	"fmt"

	"github.com/haerye/jindo/internal/models"
)

type GrammarCmd struct {
	UnitID   string `arg:"" help:"Grammar unit identifier."`
	Category string `short:"c" required:"" help:"Owning grammar category ID, e.g. tenses."`
	Label    string `short:"l" help:"Display label for the category (defaults to its ID)."`
}

func (c *GrammarCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	ctx.Grammar.RecordUnitStudy(c.UnitID, c.Category, c.Label)
	ctx.Progress.CompleteItem(models.CategoryGrammar, "grammar:"+c.UnitID, "")

	snap := ctx.Grammar.Snapshot()
	unit := snap.Units[c.UnitID]
	cat := snap.Categories[c.Category]
	fmt.Printf("Studied unit %s (%d time(s)); category %s: %d unit(s), %d study event(s)\n",
		c.UnitID, unit.TimesStudied, cat.Label, cat.StudiedUnits, cat.TotalStudies)
	return nil
}
