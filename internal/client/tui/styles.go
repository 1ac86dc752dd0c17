// Package tui renders client state for the terminal and runs the focus
// timer.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/edupilot/internal/records"
)

// Theme is the palette used by every renderer.
type Theme struct {
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color
	Primary       lipgloss.Color
	Accent        lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Border        lipgloss.Color
}

var TokyoNight = Theme{
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),
	Primary:       lipgloss.Color("#7aa2f7"),
	Accent:        lipgloss.Color("#7dcfff"),
	Success:       lipgloss.Color("#9ece6a"),
	Warning:       lipgloss.Color("#e0af68"),
	Error:         lipgloss.Color("#f7768e"),
	Border:        lipgloss.Color("#3b4261"),
}

// CardWidth is the outer width of a task card.
const CardWidth = 60

type Styles struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Card     lipgloss.Style
	Pending  lipgloss.Style
	Tag      lipgloss.Style
	Error    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Timer    lipgloss.Style
	Help     lipgloss.Style
	Priority map[records.Priority]lipgloss.Style
	Status   map[records.Status]lipgloss.Style
	Mood     map[records.Mood]lipgloss.Style
}

func NewStyles(t Theme) *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1).
			Width(CardWidth - 2),

		Pending: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.ForegroundDim).
			Padding(0, 1).
			Width(CardWidth - 2),

		Tag: lipgloss.NewStyle().
			Foreground(t.Accent).
			MarginRight(1),

		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Width(14),

		Value: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		Timer: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(t.Primary),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			PaddingTop(1),

		Priority: map[records.Priority]lipgloss.Style{
			records.PriorityLow:    lipgloss.NewStyle().Foreground(t.ForegroundDim),
			records.PriorityMedium: lipgloss.NewStyle().Foreground(t.Warning),
			records.PriorityHigh:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		},

		Status: map[records.Status]lipgloss.Style{
			records.StatusTodo:       lipgloss.NewStyle().Foreground(t.Foreground),
			records.StatusInProgress: lipgloss.NewStyle().Foreground(t.Primary),
			records.StatusBlocked:    lipgloss.NewStyle().Foreground(t.Error),
			records.StatusDone:       lipgloss.NewStyle().Foreground(t.Success).Strikethrough(true),
		},

		Mood: map[records.Mood]lipgloss.Style{
			records.MoodFocused: lipgloss.NewStyle().Foreground(t.Success),
			records.MoodAverage: lipgloss.NewStyle().Foreground(t.Warning),
			records.MoodTired:   lipgloss.NewStyle().Foreground(t.Error),
		},
	}
}

// DefaultStyles uses TokyoNight.
func DefaultStyles() *Styles { return NewStyles(TokyoNight) }
