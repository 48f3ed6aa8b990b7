package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"

	"github.com/haerye/jindo/internal/mastery"
	"github.com/haerye/jindo/internal/models"
	progresspkg "github.com/haerye/jindo/internal/progress"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateWords
	StateGrammar
)

const tabCount = 3

// progressMsg is delivered whenever the tracker commits an update while the
// dashboard is open.
type progressMsg models.DailyProgress

// goalReachedMsg fires once per day, on the update that first meets the goal
// sum.
type goalReachedMsg models.DailyProgress

type Model struct {
	tracker *progresspkg.Tracker
	words   *mastery.WordTracker
	grammar *mastery.GrammarTracker

	state     SessionState
	keys      KeyMap
	help      help.Model
	bar       progress.Model
	today     models.DailyProgress
	celebrate bool

	updates  chan tea.Msg
	quitting bool
	width    int
	height   int
}

// NewModel wires the dashboard to the trackers. Tracker updates arrive over
// an internal channel so the completion path never blocks on rendering.
func NewModel(tracker *progresspkg.Tracker, words *mastery.WordTracker, grammar *mastery.GrammarTracker) Model {
	m := Model{
		tracker: tracker,
		words:   words,
		grammar: grammar,
		state:   StateToday,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient()),
		today:   tracker.Summary(),
		updates: make(chan tea.Msg, 16),
	}

	tracker.Subscribe(func(p models.DailyProgress) {
		select {
		case m.updates <- progressMsg(p):
		default:
		}
	})
	tracker.SubscribeGoalReached(func(p models.DailyProgress) {
		select {
		case m.updates <- goalReachedMsg(p):
		default:
		}
	})

	return m
}

func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return <-m.updates
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab},
		{m.keys.Refresh, m.keys.Help, m.keys.Quit},
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}
