package role

import (
	"context"
	"fmt"

	"github.com/sells-group/intake-engine/internal/lawdata"
	"github.com/sells-group/intake-engine/internal/model"
)

const researchSystemPrompt = `You are a legal research assistant for a personal injury law firm. Given a scored intake case, produce a preliminary research memo for the reviewing attorney.

Respond with ONLY a JSON object, no prose, matching:
{
  "research_summary": "<paragraph>",
  "liability_analysis": {
    "framework": "<negligence, strict liability, etc>",
    "key_elements": ["..."],
    "potential_defendants": ["..."],
    "challenges": ["..."]
  },
  "damages_potential": {
    "economic": "<assessment>",
    "non_economic": "<assessment>",
    "punitive": "<assessment>",
    "caps": "<any applicable caps>"
  },
  "key_precedents": [{"case": "<citation>", "relevance": "<why>"}],
  "recommended_actions": ["..."],
  "red_flags": ["..."],
  "attorney_notes": "<anything the attorney must verify>"
}`

// Researcher is the legal-research specialization. The statute of
// limitations is always resolved from the local statute table so the
// deadline survives even when the generated memo degrades.
type Researcher struct {
	gen          *Generator
	statutes     *lawdata.StatuteTable
	jurisdiction string
}

// NewResearcher builds the research role against the given statute table
// and default jurisdiction.
func NewResearcher(gen *Generator, statutes *lawdata.StatuteTable, jurisdiction string) *Researcher {
	return &Researcher{gen: gen, statutes: statutes, jurisdiction: jurisdiction}
}

// Name returns the audit-log identifier for this role.
func (r *Researcher) Name() string { return "legal_researcher" }

// Research produces the memo for a scored session. The jurisdiction
// resolves in order: the client's known state, the caller's override, the
// configured default. The statute row is attached to the structured result
// when parsing succeeds; the caller attaches it to the fallback otherwise.
func (r *Researcher) Research(ctx context.Context, s *model.Session, score model.LeadScore, jurisdiction string) (Outcome[model.Research], model.StatuteOfLimitations, error) {
	state := s.ClientInfo["state"]
	if state == "" {
		state = jurisdiction
	}
	if state == "" {
		state = r.jurisdiction
	}
	sol := r.statutes.Lookup(state, score.CaseType)

	prompt := fmt.Sprintf(
		"Research this case.\n\nCase type: %s\nRating: %s\nJurisdiction: %s\nStatute of limitations on file: %s\nCase summary: %s\n\nTranscript:\n%s",
		score.CaseType, score.Rating, state, sol.Deadline, score.Summary, formatTranscript(s.Conversation))

	raw, err := r.gen.GeneratePrompt(ctx, r.Name(), researchSystemPrompt, prompt)
	if err != nil {
		return Outcome[model.Research]{}, sol, err
	}

	out := Decode[model.Research](raw)
	if out.Ok() {
		out.Structured.StatuteOfLimitations = &sol
	}
	return out, sol, nil
}
