// Package chat_tui implements the interview chat interface: a role
// picker, a scrolling transcript, and an input region that switches
// between free text and multiple-choice buttons depending on the latest
// question.
package chat_tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hireloop/intervue/pkg/interview"
)

// Model is the state of the TUI. The interview session itself lives in
// pkg/interview; the model only adds presentation state (cursors, sizes,
// widgets) on top.
type Model struct {
	client  *interview.Client
	session *interview.Session

	roles      []string
	roleCursor int

	optionCursor int
	input        textinput.Model
	viewport     viewport.Model
	spinner      spinner.Model
	keys         KeyMap

	width  int
	height int
	ready  bool
}

func New(client *interview.Client, roles []string) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your answer..."
	ti.CharLimit = 2000
	ti.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		client:  client,
		session: interview.NewSession(),
		roles:   roles,
		input:   ti,
		spinner: sp,
		keys:    NewKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// inMultipleChoice reports whether the input region should render option
// buttons instead of the text field. Only the newest turn counts; earlier
// MCQ turns must not re-trigger the affordance.
func (m Model) inMultipleChoice() bool {
	if m.session.Loading() {
		return false
	}
	latest, ok := m.session.Latest()
	return ok && latest.IsMultipleChoice()
}

func (m Model) currentOptions() []string {
	latest, ok := m.session.Latest()
	if !ok {
		return nil
	}
	return latest.Options
}
