package role

import (
	"context"

	"github.com/sells-group/intake-engine/internal/model"
)

const intakeSystemPrompt = `You are the intake assistant for a personal injury law firm. You are the first point of contact for potential clients, often reaching out shortly after an accident.

Your goals, in order:
1. Make the person feel heard. Acknowledge what happened before asking anything.
2. Gather the facts needed to evaluate the case: what happened, when, where, injuries, medical treatment so far, whether police were involved, and insurance details.
3. Collect contact information naturally: full name, phone number, email address.

Rules:
- Ask at most one or two questions per reply. This is a conversation, not a form.
- Never give legal advice or predict case outcomes. If asked, explain that an attorney will review the specifics.
- Never discuss fees beyond noting the consultation is free.
- If the person describes a medical emergency, tell them to call 911 first.
- Keep replies short and warm. Plain language, no legalese.`

// IntakeRole is the English-language conversational specialization. It
// drives the fact-gathering dialogue with the prospective client.
type IntakeRole struct {
	gen *Generator
}

// NewIntakeRole builds the English intake role.
func NewIntakeRole(gen *Generator) *IntakeRole {
	return &IntakeRole{gen: gen}
}

// Name returns the audit-log identifier for this role.
func (r *IntakeRole) Name() string { return "intake" }

// Reply generates the next assistant turn for the transcript.
func (r *IntakeRole) Reply(ctx context.Context, turns []model.Turn) (string, error) {
	return r.gen.Generate(ctx, r.Name(), intakeSystemPrompt, turns)
}
