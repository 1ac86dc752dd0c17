package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/edupilot/internal/client/store"
	"github.com/dmitrijs2005/edupilot/internal/insights"
	"github.com/dmitrijs2005/edupilot/internal/records"
)

const dateLayout = "Jan 2, 2006"

// TaskCard renders one task. Records not yet confirmed by the server get a
// plain border and a "saving" marker.
func (s *Styles) TaskCard(t records.Task) string {
	head := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Value.Render(t.Title),
		"  ",
		s.Priority[t.Priority].Render(strings.ToUpper(string(t.Priority))),
	)

	meta := fmt.Sprintf("%s  %s",
		s.Status[t.Status].Render(string(t.Status)),
		s.Muted.Render("due "+t.DueDate.Format(dateLayout)),
	)

	lines := []string{head, meta}
	if t.Description != "" {
		lines = append(lines, t.Description)
	}
	if len(t.Tags) > 0 {
		tags := make([]string, 0, len(t.Tags))
		for _, tag := range t.Tags {
			tags = append(tags, s.Tag.Render("#"+tag))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tags...))
	}

	card := s.Card
	if strings.HasPrefix(t.ID, store.TempIDPrefix) {
		card = s.Pending
		lines = append(lines, s.Muted.Render("saving..."))
	} else {
		lines = append(lines, s.Muted.Render("id "+t.ID))
	}
	return card.Render(strings.Join(lines, "\n"))
}

// TaskList renders tasks as a column of cards under the active filter.
func (s *Styles) TaskList(tasks []records.Task, f insights.Filter) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("Tasks (%d)", len(tasks))))
	if !f.IsZero() {
		b.WriteString("  " + s.Muted.Render(describeFilter(f)))
	}
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(s.Muted.Render("No tasks."))
		return b.String()
	}
	cards := make([]string, 0, len(tasks))
	for _, t := range tasks {
		cards = append(cards, s.TaskCard(t))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	return b.String()
}

func describeFilter(f insights.Filter) string {
	var parts []string
	if f.Status != "" {
		parts = append(parts, "status="+string(f.Status))
	}
	if f.Priority != "" {
		parts = append(parts, "priority="+string(f.Priority))
	}
	if f.Tag != "" {
		parts = append(parts, "tag="+f.Tag)
	}
	return "filter: " + strings.Join(parts, " ")
}

// StudyLogList renders study sessions one per line, newest first as given.
func (s *Styles) StudyLogList(logs []records.StudyLog) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("Study log (%d)", len(logs))))
	b.WriteString("\n")

	if len(logs) == 0 {
		b.WriteString(s.Muted.Render("No study sessions yet."))
		return b.String()
	}
	for _, l := range logs {
		line := fmt.Sprintf("%s  %-20s %4d min  %s",
			s.Muted.Render(l.Date.Format(dateLayout)),
			l.Subject,
			l.Duration,
			s.Mood[l.Mood].Render(string(l.Mood)),
		)
		if l.Notes != "" {
			line += "  " + s.Muted.Render(l.Notes)
		}
		b.WriteString(line + "  " + s.Muted.Render(l.ID) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Styles) row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.Label.Render(label), s.Value.Render(value))
}

// Dashboard renders the task metrics, study totals and the upcoming tasks.
func (s *Styles) Dashboard(m store.TaskMetrics, study insights.StudySummary) string {
	rows := []string{
		s.Title.Render("Dashboard"),
		s.row("Completion", fmt.Sprintf("%d%%", m.Completion)),
	}
	for _, st := range records.Statuses {
		rows = append(rows, s.row(string(st), fmt.Sprintf("%d", m.Counts[st])))
	}
	rows = append(rows,
		s.row("Study time", formatMinutes(study.TotalMinutes)),
		s.row("Sessions", fmt.Sprintf("%d", study.Sessions)),
	)
	for _, mood := range records.Moods {
		rows = append(rows, s.row("  "+string(mood), formatMinutes(study.ByMood[mood])))
	}
	if len(m.Tags) > 0 {
		rows = append(rows, s.row("Tags", strings.Join(m.Tags, ", ")))
	}

	rows = append(rows, "", s.Title.Render("Upcoming"))
	if len(m.Upcoming) == 0 {
		rows = append(rows, s.Muted.Render("Nothing due."))
	}
	for _, t := range m.Upcoming {
		rows = append(rows, fmt.Sprintf("%s  %s",
			s.Muted.Render(t.DueDate.Format(dateLayout)),
			t.Title,
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// ErrorLine renders a user-facing error message.
func (s *Styles) ErrorLine(msg string) string {
	return s.Error.Render("! " + msg)
}

func formatMinutes(total int) string {
	if total < 60 {
		return fmt.Sprintf("%d min", total)
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}
