package model

// Rating classifies case urgency and value, gating downstream pipeline
// behavior.
type Rating string

const (
	RatingHot  Rating = "HOT"
	RatingWarm Rating = "WARM"
	RatingCold Rating = "COLD"
)

// LeadScore is the structured output of the lead-scoring stage.
type LeadScore struct {
	Score             int      `json:"score"`
	Rating            Rating   `json:"rating"`
	CaseType          string   `json:"case_type"`
	KeyFactors        []string `json:"key_factors"`
	RedFlags          []string `json:"red_flags"`
	RecommendedAction string   `json:"recommended_action"`
	Urgency           string   `json:"urgency"`
	EstimatedValue    string   `json:"estimated_value"`
	Summary           string   `json:"summary"`
}

// FallbackLeadScore wraps unparseable or failed generation output in a
// degraded score. The WARM default matches the rating assumed by every
// downstream stage when no rating is available.
func FallbackLeadScore(raw string) LeadScore {
	return LeadScore{
		Rating:  RatingWarm,
		Summary: raw,
	}
}
