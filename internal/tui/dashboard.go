package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func card(title string, lines ...string) string {
	content := cardTitleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	return cardStyle.Render(content)
}

func statLine(label string, value any) string {
	return labelStyle.Render(label+" ") + cardValueStyle.Render(fmt.Sprint(value))
}

func (m *Model) viewDashboard() string {
	cache := m.ctrl.Cache()
	stats, _ := cache.Stats()

	user := card("profile",
		statLine("user", cache.Username()),
		statLine("xp", cache.TotalXP()),
		statLine("streak", fmt.Sprintf("%d days", cache.StreakDays())),
		statLine("level", cache.SkillLevel()),
		statLine("languages", strings.Join(cache.PreferredLanguages(), ", ")),
	)
	activity := card("activity",
		statLine("snippets", stats.Activity.SnippetsCreated),
		statLine("questions", stats.Activity.QuestionsSolved),
		statLine("explanations", stats.Activity.ExplanationsViewed),
	)
	progress := card("progress",
		statLine("concepts", stats.Progress.ConceptsMastered),
		statLine("level", stats.Progress.CurrentLevel),
		statLine("next level", fmt.Sprintf("%d xp", stats.Progress.NextLevelXP)),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("codetutor — dashboard"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, user, activity, progress))

	if snippets := cache.Snippets(); len(snippets) > 0 {
		b.WriteString("\n\n" + cardTitleStyle.Render("recent snippets"))
		limit := len(snippets)
		if limit > 5 {
			limit = 5
		}
		for _, s := range snippets[:limit] {
			b.WriteString("\n  " + s.Title + labelStyle.Render(" ("+s.Language+")"))
		}
	}

	b.WriteString("\n\n" + m.connectivityLine())
	b.WriteString("\n" + footerStyle.Render("ctrl+d: sign out · q: quit"))
	return b.String()
}

func (m *Model) connectivityLine() string {
	if m.online {
		return onlineStyle.Render("● online")
	}
	return offlineStyle.Render("● offline")
}
