package role

import (
	"context"
	"fmt"
	"strings"

	"github.com/sells-group/intake-engine/internal/model"
)

const scorerSystemPrompt = `You are a lead qualification analyst for a personal injury law firm. You evaluate completed intake conversations and score the case.

Scoring guidance:
- HOT (70-100): clear liability, serious injuries, recent incident, insured defendant. Commercial vehicles, wrongful death, and catastrophic injury are always HOT.
- WARM (40-69): probable case but missing facts, moderate injuries, or liability questions.
- COLD (0-39): likely no case, expired deadlines, no injuries, or outside the firm's practice areas.

Respond with ONLY a JSON object, no prose, matching:
{
  "score": <0-100>,
  "rating": "HOT" | "WARM" | "COLD",
  "case_type": "<short label>",
  "key_factors": ["..."],
  "red_flags": ["..."],
  "recommended_action": "<next step for the firm>",
  "urgency": "immediate" | "same_day" | "24_hours" | "standard",
  "estimated_value": "<range or 'unknown'>",
  "summary": "<two sentences for the attorney>"
}`

// Scorer is the lead-scoring specialization. It reads the full transcript
// and produces a structured case score.
type Scorer struct {
	gen *Generator
}

// NewScorer builds the lead-scoring role.
func NewScorer(gen *Generator) *Scorer {
	return &Scorer{gen: gen}
}

// Name returns the audit-log identifier for this role.
func (r *Scorer) Name() string { return "lead_scorer" }

// Score evaluates the session transcript. A non-nil error means generation
// itself failed; a returned outcome with Ok()==false means the output could
// not be parsed and should degrade to a fallback score.
func (r *Scorer) Score(ctx context.Context, s *model.Session) (Outcome[model.LeadScore], error) {
	prompt := fmt.Sprintf("Score this intake conversation.\n\nClient info on file: %s\n\nTranscript:\n%s",
		formatClientInfo(s.ClientInfo), formatTranscript(s.Conversation))

	raw, err := r.gen.GeneratePrompt(ctx, r.Name(), scorerSystemPrompt, prompt)
	if err != nil {
		return Outcome[model.LeadScore]{}, err
	}
	return Decode[model.LeadScore](raw), nil
}

// formatTranscript renders turns as "role: content" lines.
func formatTranscript(turns []model.Turn) string {
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteByte('\n')
	}
	return b.String()
}

// formatClientInfo renders the extracted contact fields, or "none".
func formatClientInfo(info map[string]string) string {
	if len(info) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(info))
	for k, v := range info {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ", ")
}
