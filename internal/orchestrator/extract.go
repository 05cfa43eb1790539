package orchestrator

import "regexp"

var (
	phonePattern = regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
)

// ExtractContact scans a message for contact details. Only found fields
// appear in the result, so merging it never clears existing info.
func ExtractContact(message string) map[string]string {
	info := make(map[string]string)
	if m := phonePattern.FindString(message); m != "" {
		info["phone"] = m
	}
	if m := emailPattern.FindString(message); m != "" {
		info["email"] = m
	}
	return info
}
