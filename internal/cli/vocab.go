package cli

import (
	"fmt"

	"github.com/haerye/jindo/internal/vocab"
)

type VocabCmd struct {
	Import VocabImportCmd `cmd:"" help:"Import words from an Excel or CSV file."`
	List   VocabListCmd   `cmd:"" help:"List the vocabulary deck."`
}

type VocabImportCmd struct {
	File     string `arg:"" type:"existingfile" help:"Path to the .xlsx or .csv file."`
	Sheet    string `help:"Excel sheet name." default:"Sheet1"`
	StartRow int    `help:"First data row (1-based)." default:"2"`
}

func (c *VocabImportCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	cfg := vocab.DefaultImportConfig(c.File)
	cfg.SheetName = c.Sheet
	cfg.StartRow = c.StartRow

	result, err := vocab.ImportWords(ctx.Store, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d row(s): %d created, %d updated, %d skipped\n",
		result.TotalProcessed, result.Created, result.Updated, result.Skipped)
	for _, e := range result.Errors {
		fmt.Printf("  warning: %s\n", e)
	}
	return nil
}

type VocabListCmd struct{}

func (c *VocabListCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	words, err := ctx.Store.GetAllWords()
	if err != nil {
		return err
	}
	if len(words) == 0 {
		fmt.Println("The vocabulary deck is empty. Import words with 'jindo vocab import'.")
		return nil
	}

	for _, w := range words {
		topic := w.Topic
		if topic == "" {
			topic = "-"
		}
		fmt.Printf("  %-16s %-24s %s\n", w.Text, w.Meaning, topic)
	}
	fmt.Printf("%d word(s) in the deck\n", len(words))
	return nil
}
