package interview

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Phase describes where a session is in the question/answer cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingQuestion
	PhaseAwaitingAnswer
	PhaseAwaitingEvaluation
	PhaseCooldown
)

func (p Phase) String() string {
	return [...]string{"idle", "awaiting_question", "awaiting_answer", "awaiting_evaluation", "cooldown"}[p]
}

// CooldownDelay is the pause between receiving evaluation feedback and
// requesting the next question.
const CooldownDelay = 1500 * time.Millisecond

// Warning turns appended in place of a result when a call fails. The two
// strings distinguish the call site so the user knows whether to restart
// the backend or just resubmit.
const (
	ConnectivityWarning = "⚠️ Error connecting to the interview service. Make sure the backend is running and try again."
	EvaluationWarning   = "⚠️ Error evaluating your answer. Please submit it again."
)

var (
	// ErrBusy is returned when a mutator is called while a request is
	// outstanding. The transcript and phase are left untouched.
	ErrBusy = errors.New("interview: a request is already in flight")
	// ErrNotStarted is returned when answering before Start.
	ErrNotStarted = errors.New("interview: session not started")
	// ErrAlreadyStarted is returned when Start is called twice without End.
	ErrAlreadyStarted = errors.New("interview: session already started")
)

// Session holds the state of one interview: the selected role, the
// append-only transcript, and the loading/phase flags. It is not safe for
// concurrent use; all mutation is expected to happen on a single event
// loop (the Bubble Tea update loop in the TUI).
//
// Every Start mints a new generation id. Asynchronous results must present
// the generation they were issued under; results from an ended or
// restarted session are discarded instead of mutating fresh state.
type Session struct {
	role       string
	phase      Phase
	loading    bool
	generation uuid.UUID
	transcript []Turn
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Role() string          { return s.role }
func (s *Session) Started() bool         { return s.phase != PhaseIdle }
func (s *Session) Loading() bool         { return s.loading }
func (s *Session) Phase() Phase          { return s.phase }
func (s *Session) Generation() uuid.UUID { return s.generation }

// Transcript returns a snapshot copy of the transcript. Callers building a
// request history must use this rather than holding on to an earlier
// snapshot, so follow-up question requests always include the evaluation
// feedback turn.
func (s *Session) Transcript() []Turn {
	out := make([]Turn, len(s.transcript))
	copy(out, s.transcript)
	// Options must be copied per turn as well, or a snapshot holder could
	// mutate the stored turn through the shared backing array.
	for i := range out {
		out[i].Options = append([]string(nil), out[i].Options...)
	}
	return out
}

// Latest returns the newest turn, or false when the transcript is empty.
func (s *Session) Latest() (Turn, bool) {
	if len(s.transcript) == 0 {
		return Turn{}, false
	}
	t := s.transcript[len(s.transcript)-1]
	t.Options = append([]string(nil), t.Options...)
	return t, true
}

// Start begins an interview for the given role. It seeds the transcript
// with a single welcome turn and moves to PhaseAwaitingQuestion; the
// caller is expected to issue the first question fetch immediately.
func (s *Session) Start(role string) error {
	if s.phase != PhaseIdle {
		return ErrAlreadyStarted
	}
	s.role = role
	s.generation = uuid.New()
	s.transcript = []Turn{newAssistantTurn(fmt.Sprintf(
		"Welcome to your %s interview! I'll ask you a mix of multiple-choice, short-answer, and coding questions. Let's begin.", role))}
	s.phase = PhaseAwaitingQuestion
	s.loading = true
	return nil
}

// SubmitAnswer appends the user's answer and moves to
// PhaseAwaitingEvaluation. Option selection goes through the same path
// with the raw option text as the answer.
func (s *Session) SubmitAnswer(text string) error {
	if s.phase == PhaseIdle {
		return ErrNotStarted
	}
	if s.loading {
		return ErrBusy
	}
	if s.phase != PhaseAwaitingAnswer {
		return ErrBusy
	}
	s.transcript = append(s.transcript, newUserTurn(text))
	s.phase = PhaseAwaitingEvaluation
	s.loading = true
	return nil
}

// ApplyQuestion lands the result of a question fetch. A transport or
// decode failure appends the fixed connectivity warning instead of a
// question turn; either way loading is cleared and the session waits for
// an answer (resubmitting is the recovery path).
func (s *Session) ApplyQuestion(gen uuid.UUID, q *Question, err error) bool {
	if !s.accepts(gen) {
		return false
	}
	if err != nil {
		s.transcript = append(s.transcript, newAssistantTurn(ConnectivityWarning))
	} else {
		t := newAssistantTurn(q.Question)
		t.Type = q.Type
		t.Options = append([]string(nil), q.Options...)
		s.transcript = append(s.transcript, t)
	}
	s.phase = PhaseAwaitingAnswer
	s.loading = false
	return true
}

// ApplyFeedback lands the result of an evaluation. On success the session
// enters PhaseCooldown and the caller should schedule BeginFollowUp after
// CooldownDelay. On failure the fixed evaluation warning is appended and
// no follow-up question is requested; the session returns to
// PhaseAwaitingAnswer so the user can submit again.
func (s *Session) ApplyFeedback(gen uuid.UUID, fb *Feedback, err error) bool {
	if !s.accepts(gen) {
		return false
	}
	if err != nil {
		s.transcript = append(s.transcript, newAssistantTurn(EvaluationWarning))
		s.phase = PhaseAwaitingAnswer
		s.loading = false
		return true
	}
	s.transcript = append(s.transcript, newAssistantTurn(fb.Feedback))
	s.phase = PhaseCooldown
	s.loading = false
	return true
}

// BeginFollowUp transitions from cooldown into the next question fetch.
// The caller must snapshot Transcript() *after* this call when building
// the request history.
func (s *Session) BeginFollowUp(gen uuid.UUID) bool {
	if !s.accepts(gen) {
		return false
	}
	if s.phase != PhaseCooldown {
		return false
	}
	s.phase = PhaseAwaitingQuestion
	s.loading = true
	return true
}

// End discards the transcript and role and returns to the idle state.
// Results from requests still in flight will fail the generation check
// and be dropped.
func (s *Session) End() {
	*s = Session{}
}

func (s *Session) accepts(gen uuid.UUID) bool {
	return s.phase != PhaseIdle && gen == s.generation
}
