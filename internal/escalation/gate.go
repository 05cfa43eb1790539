// Package escalation implements the gate that can pre-empt normal
// conversation when a message indicates immediate danger.
package escalation

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/intake-engine/internal/model"
)

// immediateTriggers is scanned in order against the current message plus
// all prior user turns; the first match wins. The order of this list is
// part of the contract and must not be changed.
var immediateTriggers = []string{
	"in danger",
	"being threatened",
	"suicidal",
	"emergency",
	"arrested",
	"in custody",
	"child in danger",
	"domestic violence",
	"active crime",
}

// emergencyReferral marks triggers that warrant a real-world emergency
// service referral in addition to the human handoff.
var emergencyReferral = map[string]bool{
	"in danger":         true,
	"child in danger":   true,
	"domestic violence": true,
	"active crime":      true,
}

// calmingMessage is the fixed client-facing script returned on immediate
// escalation. It is recorded into the handoff decision, never appended to
// the transcript as an assistant turn.
const calmingMessage = "I understand this is a serious situation. Let me connect you with someone who can help right away. Please stay on the line."

// Gate checks messages for immediate-danger trigger phrases.
type Gate struct{}

// NewGate returns a gate with the default trigger list.
func NewGate() *Gate {
	return &Gate{}
}

// Check scans the current message concatenated with all prior user turns
// (lower-cased) for trigger phrases. On the first match it returns the
// immediate-escalation decision and true; otherwise nil and false, and
// normal routing proceeds.
func (g *Gate) Check(currentMessage string, history []model.Turn) (*model.HandoffDecision, bool) {
	text := strings.ToLower(currentMessage)
	for _, t := range history {
		if t.Role == model.TurnRoleUser {
			text += " " + strings.ToLower(t.Content)
		}
	}

	for _, trigger := range immediateTriggers {
		if !strings.Contains(text, trigger) {
			continue
		}

		zap.L().Warn("immediate escalation triggered",
			zap.String("trigger", trigger),
		)

		return &model.HandoffDecision{
			EscalationNeeded: true,
			EscalationType:   model.EscalationImmediate,
			Reason:           fmt.Sprintf("Detected: %s", trigger),
			RouteTo: &model.RouteTo{
				Role:   "intake_coordinator",
				Name:   "On-Duty Staff",
				Reason: "Immediate human attention required",
			},
			ClientMessage: calmingMessage,
			InternalNotes: fmt.Sprintf("URGENT: Client mentioned %q. Immediate human contact required.", trigger),
			Urgency:       model.UrgencyImmediate,
			Call911:       emergencyReferral[trigger],
		}, true
	}

	return nil, false
}
