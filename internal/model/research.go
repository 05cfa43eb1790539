package model

// StatuteOfLimitations is the filing-deadline portion of a research report.
// It is always resolved deterministically from the statute table, even when
// the generated portion of the report degrades.
type StatuteOfLimitations struct {
	State      string   `json:"state"`
	CaseType   string   `json:"case_type"`
	Deadline   string   `json:"deadline"`
	Exceptions []string `json:"exceptions,omitempty"`
	Urgency    string   `json:"urgency,omitempty"`
}

// LiabilityAnalysis summarizes the legal framework for a case.
type LiabilityAnalysis struct {
	Framework           string   `json:"framework"`
	KeyElements         []string `json:"key_elements"`
	PotentialDefendants []string `json:"potential_defendants"`
	Challenges          []string `json:"challenges"`
}

// DamagesPotential assesses recoverable damages.
type DamagesPotential struct {
	Economic    string `json:"economic"`
	NonEconomic string `json:"non_economic"`
	Punitive    string `json:"punitive"`
	Caps        string `json:"caps"`
}

// Precedent is a case citation with its relevance.
type Precedent struct {
	Case      string `json:"case"`
	Relevance string `json:"relevance"`
}

// Research is the structured output of the legal-research stage.
type Research struct {
	Summary              string                `json:"research_summary"`
	StatuteOfLimitations *StatuteOfLimitations `json:"statute_of_limitations,omitempty"`
	LiabilityAnalysis    *LiabilityAnalysis    `json:"liability_analysis,omitempty"`
	DamagesPotential     *DamagesPotential     `json:"damages_potential,omitempty"`
	KeyPrecedents        []Precedent           `json:"key_precedents,omitempty"`
	RecommendedActions   []string              `json:"recommended_actions,omitempty"`
	RedFlags             []string              `json:"red_flags,omitempty"`
	AttorneyNotes        string                `json:"attorney_notes,omitempty"`
}

// FallbackResearch wraps unparseable generation output in a degraded report.
func FallbackResearch(raw string) Research {
	return Research{Summary: raw}
}
