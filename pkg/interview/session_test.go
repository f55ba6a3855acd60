package interview

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSeedsSingleWelcomeTurn(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start("Backend Developer"))

	assert.True(t, s.Started())
	assert.True(t, s.Loading())
	assert.Equal(t, PhaseAwaitingQuestion, s.Phase())
	assert.Equal(t, "Backend Developer", s.Role())

	tr := s.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, RoleAssistant, tr[0].Role)
	assert.Contains(t, tr[0].Content, "Backend Developer")
}

func TestStartTwiceFails(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start("Data Science"))
	assert.ErrorIs(t, s.Start("Data Science"), ErrAlreadyStarted)
}

func TestApplyQuestionAppendsQuestionTurn(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start("Backend Developer"))

	ok := s.ApplyQuestion(s.Generation(), &Question{Question: "What is a REST API?", Type: TypeShort}, nil)
	require.True(t, ok)

	tr := s.Transcript()
	require.Len(t, tr, 2)
	assert.Equal(t, "What is a REST API?", tr[1].Content)
	assert.Equal(t, TypeShort, tr[1].Type)
	assert.False(t, s.Loading())
	assert.Equal(t, PhaseAwaitingAnswer, s.Phase())
}

func TestApplyQuestionFailureAppendsWarningAndClearsLoading(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start("Python Developer"))

	ok := s.ApplyQuestion(s.Generation(), nil, errors.New("connection refused"))
	require.True(t, ok)

	tr := s.Transcript()
	require.Len(t, tr, 2)
	assert.Equal(t, ConnectivityWarning, tr[1].Content)
	assert.Equal(t, RoleAssistant, tr[1].Role)
	assert.False(t, s.Loading())
}

func TestSubmitAnswerWhileLoadingIsNoOp(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start("Backend Developer"))

	// Still awaiting the first question.
	err := s.SubmitAnswer("too eager")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Len(t, s.Transcript(), 1)
}

func TestSubmitAnswerBeforeStart(t *testing.T) {
	s := NewSession()
	assert.ErrorIs(t, s.SubmitAnswer("hello"), ErrNotStarted)
}

func TestEvaluationCycle(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start("Backend Developer"))
	gen := s.Generation()
	require.True(t, s.ApplyQuestion(gen, &Question{Question: "What is a REST API?", Type: TypeShort}, nil))

	require.NoError(t, s.SubmitAnswer("An architectural style for networked applications"))
	assert.True(t, s.Loading())
	assert.Equal(t, PhaseAwaitingEvaluation, s.Phase())

	require.True(t, s.ApplyFeedback(gen, &Feedback{Feedback: "Good answer!"}, nil))
	assert.Equal(t, PhaseCooldown, s.Phase())
	assert.False(t, s.Loading())

	// The follow-up history must include both the answer and the feedback.
	require.True(t, s.BeginFollowUp(gen))
	tr := s.Transcript()
	require.Len(t, tr, 4)
	assert.Equal(t, "An architectural style for networked applications", tr[2].Content)
	assert.Equal(t, "Good answer!", tr[3].Content)
	assert.Equal(t, PhaseAwaitingQuestion, s.Phase())
	assert.True(t, s.Loading())
}

func TestFailedEvaluationStallsWithoutFollowUp(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start("Backend Developer"))
	gen := s.Generation()
	require.True(t, s.ApplyQuestion(gen, &Question{Question: "Q1?", Type: TypeShort}, nil))
	require.NoError(t, s.SubmitAnswer("an answer"))

	require.True(t, s.ApplyFeedback(gen, nil, errors.New("boom")))
	tr := s.Transcript()
	assert.Equal(t, EvaluationWarning, tr[len(tr)-1].Content)
	assert.Equal(t, PhaseAwaitingAnswer, s.Phase())

	// No cooldown was entered, so a follow-up must be rejected.
	assert.False(t, s.BeginFollowUp(gen))

	// Recovery is resubmitting the same answer.
	assert.NoError(t, s.SubmitAnswer("an answer"))
}

func TestStaleGenerationResultsAreDiscarded(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start("Backend Developer"))
	stale := s.Generation()

	s.End()
	assert.False(t, s.ApplyQuestion(stale, &Question{Question: "late"}, nil))
	assert.False(t, s.Started())
	assert.Empty(t, s.Transcript())

	// Restarting mints a new generation; the old one stays dead.
	require.NoError(t, s.Start("Data Science"))
	assert.False(t, s.ApplyQuestion(stale, &Question{Question: "late"}, nil))
	assert.False(t, s.ApplyFeedback(stale, &Feedback{Feedback: "late"}, nil))
	assert.Len(t, s.Transcript(), 1)

	assert.False(t, s.ApplyQuestion(uuid.New(), &Question{Question: "forged"}, nil))
}

func TestTranscriptIsAppendOnlySnapshot(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start("Backend Developer"))
	gen := s.Generation()
	require.True(t, s.ApplyQuestion(gen, &Question{Question: "Q1?", Options: []string{"A", "B"}}, nil))

	before := s.Transcript()
	before[0].Content = "mutated"
	before[1].Options[0] = "mutated"

	after := s.Transcript()
	assert.NotEqual(t, "mutated", after[0].Content)
	assert.Equal(t, "A", after[1].Options[0])
	assert.Equal(t, len(before), len(after))

	// Latest hands out the same kind of copy.
	latest, ok := s.Latest()
	require.True(t, ok)
	latest.Options[1] = "mutated"
	latest, _ = s.Latest()
	assert.Equal(t, "B", latest.Options[1])
}

func TestLatestTurnDrivesMultipleChoiceMode(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start("Full Stack Developer"))
	gen := s.Generation()

	require.True(t, s.ApplyQuestion(gen, &Question{Question: "Pick one", Type: TypeMCQ, Options: []string{"A", "B", "C"}}, nil))
	latest, ok := s.Latest()
	require.True(t, ok)
	assert.True(t, latest.IsMultipleChoice())

	// After answering, the MCQ affordance must not apply to the user turn.
	require.NoError(t, s.SubmitAnswer("B"))
	latest, _ = s.Latest()
	assert.False(t, latest.IsMultipleChoice())
	assert.Equal(t, "B", latest.Content)
}
