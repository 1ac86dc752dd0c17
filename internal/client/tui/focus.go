package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultFocusMinutes is the length of one pomodoro.
const DefaultFocusMinutes = 25

// FocusResult is how a focus session ended.
type FocusResult struct {
	Completed bool
	Focused   time.Duration
}

// Minutes is the focused time rounded to whole minutes.
func (r FocusResult) Minutes() int {
	return int(r.Focused.Round(time.Minute) / time.Minute)
}

type focusKeyMap struct {
	Toggle key.Binding
	Stop   key.Binding
}

func (k focusKeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Toggle, k.Stop} }
func (k focusKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultFocusKeys() focusKeyMap {
	return focusKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause/resume"),
		),
		Stop: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "stop"),
		),
	}
}

// FocusModel is a countdown for one study session.
type FocusModel struct {
	timer  timer.Model
	total  time.Duration
	keys   focusKeyMap
	help   help.Model
	styles *Styles
	result FocusResult
	done   bool
}

func NewFocusModel(d time.Duration, s *Styles) FocusModel {
	return FocusModel{
		timer:  timer.NewWithInterval(d, time.Second),
		total:  d,
		keys:   defaultFocusKeys(),
		help:   help.New(),
		styles: s,
	}
}

func (m FocusModel) Init() tea.Cmd {
	return m.timer.Init()
}

func (m FocusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timer.TickMsg, timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		if msg.ID != m.timer.ID() {
			return m, nil
		}
		m.done = true
		m.result = FocusResult{Completed: true, Focused: m.total}
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			return m, m.timer.Toggle()
		case key.Matches(msg, m.keys.Stop):
			m.done = true
			m.result = FocusResult{Focused: m.elapsed()}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m FocusModel) elapsed() time.Duration {
	left := m.timer.Timeout
	if left < 0 {
		left = 0
	}
	return m.total - left
}

func (m FocusModel) View() string {
	if m.done {
		return ""
	}
	state := "focus"
	if !m.timer.Running() {
		state = "paused"
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render(state),
		m.styles.Timer.Render(m.timer.View()),
		m.styles.Help.Render(m.help.View(m.keys)),
	)
}

// Result reports how the session ended.
func (m FocusModel) Result() FocusResult { return m.result }

// newProgram is a test seam.
var newProgram = func(ctx context.Context, m tea.Model, in io.Reader, out io.Writer) interface {
	Run() (tea.Model, error)
} {
	return tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
}

// RunFocus runs a focus session of d on the terminal and reports its
// outcome.
func RunFocus(ctx context.Context, d time.Duration, s *Styles, in io.Reader, out io.Writer) (FocusResult, error) {
	final, err := newProgram(ctx, NewFocusModel(d, s), in, out).Run()
	if err != nil {
		return FocusResult{}, err
	}
	m, ok := final.(FocusModel)
	if !ok {
		return FocusResult{}, nil
	}
	return m.Result(), nil
}
