package role

import (
	"context"
	"fmt"

	"github.com/sells-group/intake-engine/internal/model"
)

const documentsSystemPrompt = `You are a paralegal assembling the evidence checklist for a new personal injury case. Given the intake conversation, list the documents the client should gather, each with its priority and simple instructions for providing it.

Typical documents: police or incident reports, medical records and bills, photos of the scene and injuries, insurance correspondence, witness contact information, pay stubs for lost wages.

Respond with ONLY a JSON object, no prose, matching:
{
  "documents_requested": [
    {
      "item": "<document>",
      "priority": "critical" | "important" | "helpful",
      "why_needed": "<one line>",
      "how_to_provide": "<one line>",
      "deadline": "<when we need it>"
    }
  ],
  "message_to_client": "<friendly message listing what to gather>",
  "follow_up_in_days": <days>
}`

// DocumentClerk is the document-request specialization.
type DocumentClerk struct {
	gen *Generator
}

// NewDocumentClerk builds the document-request role.
func NewDocumentClerk(gen *Generator) *DocumentClerk {
	return &DocumentClerk{gen: gen}
}

// Name returns the audit-log identifier for this role.
func (r *DocumentClerk) Name() string { return "document_clerk" }

// Request builds the evidence checklist for a scored session.
func (r *DocumentClerk) Request(ctx context.Context, s *model.Session, score model.LeadScore) (Outcome[model.DocumentRequest], error) {
	prompt := fmt.Sprintf(
		"Build the document checklist.\n\nCase type: %s\nLanguage: %s (write message_to_client in this language)\n\nTranscript:\n%s",
		score.CaseType, s.Language, formatTranscript(s.Conversation))

	raw, err := r.gen.GeneratePrompt(ctx, r.Name(), documentsSystemPrompt, prompt)
	if err != nil {
		return Outcome[model.DocumentRequest]{}, err
	}
	return Decode[model.DocumentRequest](raw), nil
}
