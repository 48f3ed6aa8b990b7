package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/haerye/jindo/internal/progress"
	"github.com/haerye/jindo/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	// The dashboard can stay open across midnight; the watcher rolls the
	// day over while it runs.
	watcher := progress.NewWatcher(ctx.Progress, ctx.Logger)
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	model := tui.NewModel(ctx.Progress, ctx.Words, ctx.Grammar)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
