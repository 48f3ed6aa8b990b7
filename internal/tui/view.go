package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/haerye/jindo/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateWords:
		content = m.viewWords()
	case StateGrammar:
		content = m.viewGrammar()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Words", "Grammar"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	p := m.today
	var b strings.Builder

	b.WriteString(titleStyle.Render("Today's progress"))
	b.WriteString("\n\n")
	b.WriteString(m.bar.View())
	b.WriteString(fmt.Sprintf("\n%d%% (%d/%d items), score %.1f/100\n\n",
		p.Percent, p.CompletedItems, p.TotalItems, p.Score))

	for _, cat := range models.GoalCategories() {
		done := p.CompletedByCategory[string(cat)]
		goal := p.Goals[string(cat)]
		b.WriteString(fmt.Sprintf("  %-11s %d/%d\n", cat, done, goal))
	}
	b.WriteString(fmt.Sprintf("  %-11s %d\n", models.CategoryFlashcard,
		p.CompletedByCategory[string(models.CategoryFlashcard)]))

	b.WriteString(fmt.Sprintf("\nStreak: %d day(s)\n", p.Streak))
	if p.LastSection != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Resume at: %s", p.LastSection)))
		b.WriteString("\n")
	}
	if m.celebrate {
		b.WriteString("\n")
		b.WriteString(celebrateStyle.Render("🎉 Daily goal reached!"))
	}
	return b.String()
}

func (m Model) viewWords() string {
	s := m.words.Summary()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Word mastery"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  tracked %d   strong %d   medium %d   weak %d\n",
		s.TotalTracked, s.StrongCount, s.MediumCount, s.WeakCount))

	if len(s.RecentWrongTop) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Recently missed"))
		b.WriteString("\n")
		for _, w := range s.RecentWrongTop {
			b.WriteString(fmt.Sprintf("  %-16s %-24s %d wrong\n", w.Text, w.Meaning, w.Wrong))
		}
	} else {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("No misses in the last week."))
	}
	return b.String()
}

func (m Model) viewGrammar() string {
	cells := m.grammar.CategoryHeatmap()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Grammar heatmap (last 30 days)"))
	b.WriteString("\n\n")
	if len(cells) == 0 {
		b.WriteString(dimStyle.Render("No grammar categories studied yet."))
		return b.String()
	}

	marks := [3]string{"░░", "▒▒", "██"}
	for _, cell := range cells {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			heatLevelStyles[cell.Level].Render(marks[cell.Level]), cell.Label))
	}
	return b.String()
}
