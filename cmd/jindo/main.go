package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/haerye/jindo/internal/cli"
	"github.com/haerye/jindo/internal/models"
	"github.com/haerye/jindo/internal/progress"
	"github.com/haerye/jindo/internal/storage"
)

func init() {
	// Compile-time assertion: the per-category score caps must sum to the
	// total score ceiling.
	var sum float64
	for _, cat := range models.Categories() {
		sum += progress.ScoreRules[cat].Cap
	}
	if sum != progress.MaxTotalScore {
		panic("progress.ScoreRules caps must sum to progress.MaxTotalScore")
	}
}

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Data path: a directory for JSON storage or a .db file for SQLite." env:"JINDO_DATA" type:"path" default:"~/.local/share/jindo"`
	Debug   bool   `help:"Enable debug logging."`

	Init    cli.InitCmd    `cmd:"" help:"Initialize jindo storage."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Study   cli.StudyCmd   `cmd:"" help:"Record a completed study item."`
	Card    cli.CardCmd    `cmd:"" help:"Record a flashcard answer."`
	Grammar cli.GrammarCmd `cmd:"" help:"Record a grammar unit study."`
	Status  cli.StatusCmd  `cmd:"" help:"Show today's progress."`
	Words   cli.WordsCmd   `cmd:"" help:"Show word mastery."`
	Heatmap cli.HeatmapCmd `cmd:"" help:"Show the grammar category heatmap."`
	Goals   cli.GoalsCmd   `cmd:"" help:"Show or set daily goals."`
	Vocab   cli.VocabCmd   `cmd:"" help:"Manage the vocabulary deck."`
	Backup  cli.BackupCmd  `cmd:"" help:"Create or list backups."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks."`
}

func main() {
	// A .env next to the binary can set JINDO_DATA and friends; absence is
	// not an error.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("jindo"),
		kong.Description("Korean study progress tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	level := slog.LevelInfo
	if CLI.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	var store storage.Provider
	if strings.HasSuffix(CLI.Data, ".db") {
		store = storage.NewSQLiteStore(CLI.Data)
	} else {
		store = storage.NewJSONStore(CLI.Data)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:  store,
		Logger: logger,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
