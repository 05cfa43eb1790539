package model

// EscalationType classifies how a case should be handed to humans.
type EscalationType string

const (
	EscalationNone      EscalationType = "none"
	EscalationStandard  EscalationType = "standard"
	EscalationPriority  EscalationType = "priority"
	EscalationImmediate EscalationType = "immediate"
)

// Urgency labels for handoff decisions.
const (
	UrgencyImmediate = "immediate"
	UrgencySameDay   = "same_day"
	Urgency24Hours   = "24_hours"
	UrgencyStandard  = "standard"
)

// RouteTo identifies the human recipient of a handoff.
type RouteTo struct {
	Role   string `json:"role"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// HandoffDecision records whether and how a session escalates to a human.
type HandoffDecision struct {
	EscalationNeeded bool           `json:"escalation_needed"`
	EscalationType   EscalationType `json:"escalation_type"`
	Reason           string         `json:"reason"`
	RouteTo          *RouteTo       `json:"route_to,omitempty"`
	ClientMessage    string         `json:"client_message"`
	InternalNotes    string         `json:"internal_notes"`
	Urgency          string         `json:"urgency"`
	Call911          bool           `json:"call_911,omitempty"`
}
