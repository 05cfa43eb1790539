package model

import "time"

// Status represents the current state of an intake session.
type Status string

const (
	StatusActive     Status = "active"
	StatusEscalated  Status = "escalated"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
)

// Language is the conversational language fixed at session creation.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageSpanish Language = "spanish"
)

// TurnRole identifies the author of a conversation turn.
type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)

// Turn is a single message in the intake transcript.
type Turn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}

// Documents tracks requested and received evidence for a session.
type Documents struct {
	Requested *DocumentRequest `json:"requested,omitempty"`
	Received  []string         `json:"received,omitempty"`
}

// Session is the full state of one client's intake interaction, from first
// message through pipeline completion or escalation. The conversation slice
// is append-only; its insertion order is the transcript.
type Session struct {
	ID               string            `json:"id"`
	Status           Status            `json:"status"`
	Language         Language          `json:"language"`
	StartedAt        time.Time         `json:"started_at"`
	Conversation     []Turn            `json:"conversation"`
	ClientInfo       map[string]string `json:"client_info"`
	LeadScore        *LeadScore        `json:"lead_score,omitempty"`
	Research         *Research         `json:"research,omitempty"`
	Handoff          *HandoffDecision  `json:"handoff,omitempty"`
	Documents        Documents         `json:"documents"`
	FollowUpSequence []FollowUpStep    `json:"follow_up_sequence,omitempty"`
	Appointments     []Appointment     `json:"appointments,omitempty"`
	AgentsUsed       []string          `json:"agents_used"`
}

// NewSession creates an active session with the given id and language.
func NewSession(id string, lang Language) *Session {
	return &Session{
		ID:         id,
		Status:     StatusActive,
		Language:   lang,
		StartedAt:  time.Now(),
		ClientInfo: make(map[string]string),
	}
}

// AppendTurn adds a turn to the transcript. Turns are never removed or
// rewritten once appended.
func (s *Session) AppendTurn(role TurnRole, content string) {
	s.Conversation = append(s.Conversation, Turn{Role: role, Content: content})
}

// UserTurns returns the user-authored turns in transcript order.
func (s *Session) UserTurns() []Turn {
	var out []Turn
	for _, t := range s.Conversation {
		if t.Role == TurnRoleUser {
			out = append(out, t)
		}
	}
	return out
}

// MergeClientInfo merges extracted fields into client_info. Existing keys
// are overwritten, other keys are preserved.
func (s *Session) MergeClientInfo(info map[string]string) {
	if s.ClientInfo == nil {
		s.ClientInfo = make(map[string]string)
	}
	for k, v := range info {
		s.ClientInfo[k] = v
	}
}

// RecordAgent appends a role name to the audit log. The log is strictly
// append-only.
func (s *Session) RecordAgent(name string) {
	s.AgentsUsed = append(s.AgentsUsed, name)
}
