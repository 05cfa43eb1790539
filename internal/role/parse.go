package role

import (
	"encoding/json"
	"strings"
)

// Outcome carries a stage's parsed output alongside the raw generation
// text. Exactly one of the two views is authoritative: when Structured is
// non-nil the parse succeeded, otherwise Raw holds unparseable output that
// downstream consumers fold into a degraded fallback.
type Outcome[T any] struct {
	Structured *T
	Raw        string
}

// Ok reports whether the outcome parsed into its structured form.
func (o Outcome[T]) Ok() bool {
	return o.Structured != nil
}

// Decode attempts to parse generation output as JSON of type T, tolerating
// markdown code fences around the payload. On failure it returns an outcome
// holding only the raw text.
func Decode[T any](raw string) Outcome[T] {
	cleaned := cleanJSON(raw)

	var v T
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return Outcome[T]{Raw: raw}
	}
	return Outcome[T]{Structured: &v, Raw: raw}
}

// cleanJSON strips markdown code fences that models wrap around JSON.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
