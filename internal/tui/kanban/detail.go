package kanban

import (
	"fmt"
	"strings"
	"taskflow/internal/kanban/dates"
	"taskflow/internal/kanban/models"
	"taskflow/internal/kanban/store"

	"github.com/charmbracelet/lipgloss"
)

const detailActivityLimit = 8

func (m BoardModel) renderDetail() string {
	board, col, card, ok := m.data.ResolveCard(m.detailRef)
	if !ok {
		return m.styles.detailBox.Render(m.styles.Error.Render("That card no longer exists") +
			"\n\n" + m.styles.ModalHelp.Render("esc: back"))
	}

	var s strings.Builder
	field := func(name, value string) {
		s.WriteString(m.styles.Bold.Render(fmt.Sprintf("%-10s", name)))
		s.WriteString(value)
		s.WriteString("\n")
	}

	s.WriteString(m.styles.ModalTitle.Render(card.Title))
	s.WriteString("\n")
	s.WriteString(m.styles.Muted.Render(board.Title + " › " + col.Title))
	s.WriteString("\n\n")

	priorityStyle := lipgloss.NewStyle().Bold(true).Foreground(m.styles.priorityColor(card.Priority))
	field("Priority", priorityStyle.Render(string(card.Priority)))
	if card.DueDate != nil {
		now := m.now()
		dueStyle := lipgloss.NewStyle().Foreground(m.styles.dueColor(dates.Classify(*card.DueDate, now)))
		field("Due", dueStyle.Render(fmt.Sprintf("%s (%s)", dates.Format(*card.DueDate), dates.StatusText(*card.DueDate, now))))
	}
	if badges := m.labelBadges(card.Labels); badges != "" {
		field("Labels", badges)
	}
	if len(card.Assignees) > 0 {
		names := make([]string, len(card.Assignees))
		for i, id := range card.Assignees {
			names[i] = "@" + m.userName(id)
		}
		field("Assigned", strings.Join(names, " "))
	}
	field("Created", card.CreatedAt.Local().Format("2006-01-02 15:04"))

	if preview := store.Preview(card.Description, 0); preview != "" {
		s.WriteString("\n")
		s.WriteString(m.styles.Subtitle.Render("Description"))
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Width(64).Render(preview))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Comments (%d)", len(card.Comments))))
	s.WriteString("\n")
	for _, c := range card.Comments {
		s.WriteString(m.styles.Muted.Render(fmt.Sprintf("%s @%s", c.CreatedAt.Local().Format("2006-01-02 15:04"), m.userName(c.UserID))))
		s.WriteString("\n  ")
		s.WriteString(c.Text)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.styles.Subtitle.Render("Activity"))
	s.WriteString("\n")
	for _, a := range recentActivity(card, detailActivityLimit) {
		s.WriteString(m.styles.Muted.Render(a.Timestamp.Local().Format("2006-01-02 15:04")))
		s.WriteString(fmt.Sprintf(" @%s %s\n", m.userName(a.UserID), a.Describe()))
	}

	s.WriteString("\n")
	s.WriteString(m.styles.ModalHelp.Render("a: add comment • esc: back"))
	return m.styles.detailBox.Render(s.String())
}

// recentActivity returns up to limit entries, newest first
func recentActivity(card models.Card, limit int) []models.Activity {
	n := min(len(card.Activity), limit)
	out := make([]models.Activity, 0, n)
	for i := len(card.Activity) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, card.Activity[i])
	}
	return out
}

func (m BoardModel) userName(id string) string {
	if u, ok := m.data.FindUser(id); ok {
		return u.Name
	}
	return id
}
