package interview

import "time"

// Turn roles as they appear on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Question types produced by the backend. The client treats the tag as
// opaque except for the presence of options, but the constants are shared
// with the serve side.
const (
	TypeMCQ    = "mcq"
	TypeShort  = "short"
	TypeCoding = "coding"
)

// Turn is a single message in the interview transcript. Array position in
// the transcript is the authoritative order; Timestamp is informational.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Type      string    `json:"type,omitempty"`
	Options   []string  `json:"options,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// IsMultipleChoice reports whether this turn asks the user to pick from a
// fixed set of options.
func (t Turn) IsMultipleChoice() bool {
	return t.Role == RoleAssistant && len(t.Options) > 0
}

// Question is the payload of POST /api/question.
type Question struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
}

// Feedback is the payload of POST /api/evaluate.
type Feedback struct {
	Feedback string `json:"feedback"`
}

func newUserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content, Timestamp: time.Now()}
}

func newAssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content, Timestamp: time.Now()}
}
