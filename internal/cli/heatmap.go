package cli

import "fmt"

type HeatmapCmd struct{}

func (c *HeatmapCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	cells := ctx.Grammar.CategoryHeatmap()
	if len(cells) == 0 {
		fmt.Println("No grammar categories studied yet.")
		return nil
	}

	labels := [3]string{"needs work", "in progress", "active"}
	for _, cell := range cells {
		fmt.Printf("  %-20s level %d (%s)\n", cell.Label, cell.Level, labels[cell.Level])
	}
	return nil
}
