package cli

import (
	"fmt"

	"github.com/haerye/jindo/internal/models"
)

type CardCmd struct {
	Word   string `arg:"" help:"Word text or deck ID."`
	Result string `short:"r" enum:"correct,wrong" required:"" help:"Answer result (correct|wrong)."`
}

func (c *CardCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	// Resolve against the deck so mastery entries carry the meaning; an
	// unknown word is still tracked by its text alone.
	word, ok, err := ctx.Store.GetWord(c.Word)
	if err != nil {
		ctx.Logger.Warn("failed to look up word in deck", "error", err)
	}
	if !ok {
		word = c.findByText(ctx, c.Word)
	}
	if word.Text == "" {
		word = models.VocabWord{Text: c.Word}
	}

	isCorrect := c.Result == "correct"
	ctx.Words.RecordResult(word, isCorrect)
	ctx.Progress.CompleteItem(models.CategoryFlashcard, "flashcard:"+word.MasteryKey(), "")

	if isCorrect {
		fmt.Printf("Marked %q as known.\n", word.Text)
	} else {
		fmt.Printf("Marked %q for review.\n", word.Text)
	}

	summary := ctx.Progress.Summary()
	fmt.Printf("Today: %d/%d items (%d%%)\n", summary.CompletedItems, summary.TotalItems, summary.Percent)
	return nil
}

func (c *CardCmd) findByText(ctx *Context, text string) models.VocabWord {
	words, err := ctx.Store.GetAllWords()
	if err != nil {
		return models.VocabWord{}
	}
	for _, w := range words {
		if w.Text == text {
			return w
		}
	}
	return models.VocabWord{}
}
