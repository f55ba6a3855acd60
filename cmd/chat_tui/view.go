package chat_tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hireloop/intervue/pkg/interview"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	interviewerLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render("Interviewer")
	candidateLabel   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Render("You")

	cursorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectedOptionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

// chromeHeight is the number of lines outside the viewport: the header
// with its margin, the spacer, and the input region at its current size.
// The backend does not cap MCQ option counts, so the reserve follows the
// rendered option list rather than a fixed worst case.
func (m Model) chromeHeight() int {
	region := 2
	if n := len(m.currentOptions()); m.inMultipleChoice() && n+2 > region {
		region = n + 2
	}
	return 3 + region
}

func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}
	if !m.session.Started() {
		return m.renderRolePicker()
	}

	header := headerStyle.Render(fmt.Sprintf("Mock Interview — %s", m.session.Role())) +
		mutedStyle.Render("  (esc to end)")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.viewport.View(),
		"",
		m.renderInputRegion(),
	)
}

func (m Model) renderRolePicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pick the role you want to interview for"))
	b.WriteString("\n\n")
	for i, role := range m.roles {
		if i == m.roleCursor {
			b.WriteString(cursorStyle.Render("❯ " + role))
		} else {
			b.WriteString("  " + role)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("↑/↓ move · enter start · q quit"))
	return lipgloss.NewStyle().Margin(1, 2).Render(b.String())
}

func (m Model) renderTranscript() string {
	width := m.viewport.Width - 2
	if width < 20 {
		width = 20
	}
	body := lipgloss.NewStyle().Width(width).PaddingLeft(2)

	var b strings.Builder
	for _, turn := range m.session.Transcript() {
		label := interviewerLabel
		if turn.Role == interview.RoleUser {
			label = candidateLabel
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(body.Render(turn.Content))
		if turn.IsMultipleChoice() {
			b.WriteString("\n")
			b.WriteString(body.Render(renderOptionLabels(turn.Options)))
		}
		b.WriteString("\n\n")
	}
	if m.session.Loading() {
		b.WriteString(m.spinner.View())
		b.WriteString(mutedStyle.Render(" thinking..."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderInputRegion() string {
	if m.session.Loading() {
		return mutedStyle.Render("  waiting for the interviewer...")
	}
	if m.inMultipleChoice() {
		var b strings.Builder
		b.WriteString(mutedStyle.Render("Choose an answer:"))
		b.WriteString("\n")
		for i, opt := range m.currentOptions() {
			line := fmt.Sprintf("%s %s", optionLabel(i), opt)
			if i == m.optionCursor {
				b.WriteString(selectedOptionStyle.Render("❯ " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString(mutedStyle.Render("↑/↓ choose · enter submit"))
		return b.String()
	}
	return m.input.View() + "\n" + mutedStyle.Render("enter to submit")
}

func renderOptionLabels(options []string) string {
	var b strings.Builder
	for i, opt := range options {
		b.WriteString(fmt.Sprintf("%s %s", optionLabel(i), opt))
		if i < len(options)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func optionLabel(i int) string {
	return fmt.Sprintf("%c.", 'A'+i)
}
