package chat_tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, 3)
			m.ready = true
		}
		m.input.Width = msg.Width - 4
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		if !m.session.Loading() {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		// The indicator is rendered inside the transcript, so the
		// viewport content changes on every frame.
		m.refreshTranscript()
		return m, cmd

	case QuestionResultMsg:
		if !m.session.ApplyQuestion(msg.Gen, msg.Question, msg.Err) {
			return m, nil
		}
		m.optionCursor = 0
		if !m.inMultipleChoice() {
			m.input.Focus()
		}
		m.refreshTranscript()
		return m, nil

	case FeedbackResultMsg:
		if !m.session.ApplyFeedback(msg.Gen, msg.Feedback, msg.Err) {
			return m, nil
		}
		m.refreshTranscript()
		if msg.Err == nil {
			return m, cooldownCmd(msg.Gen)
		}
		// Failed evaluation: no follow-up, the user resubmits.
		m.input.Focus()
		return m, nil

	case CooldownDoneMsg:
		if !m.session.BeginFollowUp(msg.Gen) {
			return m, nil
		}
		m.refreshTranscript()
		// Snapshot the history after BeginFollowUp so the feedback turn
		// is included.
		return m, tea.Batch(
			fetchQuestionCmd(m.client, msg.Gen, m.session.Role(), m.session.Transcript()),
			m.spinner.Tick,
		)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if !m.session.Started() {
		return m.handleRolePickerKey(msg)
	}

	if key.Matches(msg, m.keys.End) {
		// In-flight results will fail the generation check and be
		// dropped; no cancellation is needed.
		m.session.End()
		m.roleCursor = 0
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}

	// Hard guarantee of at-most-one outstanding request: all input is
	// swallowed while loading, not just visually disabled.
	if m.session.Loading() {
		return m, nil
	}

	if m.inMultipleChoice() {
		return m.handleOptionKey(msg)
	}
	return m.handleTextKey(msg)
}

func (m Model) handleRolePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PickerQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.roleCursor > 0 {
			m.roleCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.roleCursor < len(m.roles)-1 {
			m.roleCursor++
		}
	case key.Matches(msg, m.keys.Select):
		role := m.roles[m.roleCursor]
		if err := m.session.Start(role); err != nil {
			return m, nil
		}
		m.refreshTranscript()
		gen := m.session.Generation()
		return m, tea.Batch(
			fetchQuestionCmd(m.client, gen, role, m.session.Transcript()),
			m.spinner.Tick,
		)
	}
	return m, nil
}

func (m Model) handleOptionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.currentOptions()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.optionCursor > 0 {
			m.optionCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.optionCursor < len(options)-1 {
			m.optionCursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.optionCursor < len(options) {
			// The raw option text is the answer, not the A/B/C label.
			return m.submitAnswer(options[m.optionCursor])
		}
	}
	return m, nil
}

func (m Model) handleTextKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Select) {
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.Reset()
		return m.submitAnswer(text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitAnswer(text string) (tea.Model, tea.Cmd) {
	if err := m.session.SubmitAnswer(text); err != nil {
		return m, nil
	}
	m.input.Blur()
	m.refreshTranscript()
	gen := m.session.Generation()
	return m, tea.Batch(
		evaluateCmd(m.client, gen, m.session.Role(), text, m.session.Transcript()),
		m.spinner.Tick,
	)
}

// refreshTranscript resizes the viewport for the current input region,
// re-renders its content, and keeps the newest turn in view. Every state
// change that affects layout goes through here.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.width
	vpHeight := m.height - m.chromeHeight()
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Height = vpHeight
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
