package cli

import "fmt"

type WordsCmd struct{}

func (c *WordsCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	s := ctx.Words.Summary()

	fmt.Printf("Tracked words: %d\n", s.TotalTracked)
	fmt.Printf("  strong: %d  medium: %d  weak: %d\n", s.StrongCount, s.MediumCount, s.WeakCount)

	if len(s.RecentWrongTop) == 0 {
		fmt.Println("\nNo words missed in the last 7 days.")
		return nil
	}

	fmt.Println("\nRecently missed:")
	for _, w := range s.RecentWrongTop {
		meaning := w.Meaning
		if meaning == "" {
			meaning = "-"
		}
		fmt.Printf("  %-16s %-20s missed %d time(s), last %s\n",
			w.Text, meaning, w.Wrong, w.LastWrongAt.Format("2006-01-02 15:04"))
	}
	return nil
}
