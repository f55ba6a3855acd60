package chat_tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/hireloop/intervue/pkg/interview"
)

// Message types. Every asynchronous result carries the generation it was
// issued under so the session can drop results that outlived their
// interview.
type QuestionResultMsg struct {
	Gen      uuid.UUID
	Question *interview.Question
	Err      error
}

type FeedbackResultMsg struct {
	Gen      uuid.UUID
	Feedback *interview.Feedback
	Err      error
}

type CooldownDoneMsg struct {
	Gen uuid.UUID
}

func fetchQuestionCmd(client *interview.Client, gen uuid.UUID, role string, history []interview.Turn) tea.Cmd {
	return func() tea.Msg {
		q, err := client.NextQuestion(context.Background(), role, history)
		return QuestionResultMsg{Gen: gen, Question: q, Err: err}
	}
}

func evaluateCmd(client *interview.Client, gen uuid.UUID, role, answer string, history []interview.Turn) tea.Cmd {
	return func() tea.Msg {
		fb, err := client.Evaluate(context.Background(), role, answer, history)
		return FeedbackResultMsg{Gen: gen, Feedback: fb, Err: err}
	}
}

// cooldownCmd schedules the follow-up question fetch. The pause is a
// tea.Tick so the event loop stays responsive throughout.
func cooldownCmd(gen uuid.UUID) tea.Cmd {
	return tea.Tick(interview.CooldownDelay, func(time.Time) tea.Msg {
		return CooldownDoneMsg{Gen: gen}
	})
}
