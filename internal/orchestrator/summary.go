package orchestrator

import (
	"fmt"
	"strings"

	"github.com/sells-group/intake-engine/internal/model"
)

// SessionSummary renders a plain-text overview of a session for logs and
// the operational endpoints.
func SessionSummary(s *model.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session %s\n", s.ID)
	fmt.Fprintf(&b, "  Status:     %s\n", s.Status)
	fmt.Fprintf(&b, "  Language:   %s\n", s.Language)
	fmt.Fprintf(&b, "  Started:    %s\n", s.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "  Turns:      %d (%d from client)\n", len(s.Conversation), len(s.UserTurns()))

	if len(s.ClientInfo) > 0 {
		b.WriteString("  Client:\n")
		for _, k := range []string{"name", "phone", "email", "state"} {
			if v, ok := s.ClientInfo[k]; ok {
				fmt.Fprintf(&b, "    %-8s %s\n", k+":", v)
			}
		}
	}

	if s.LeadScore != nil {
		fmt.Fprintf(&b, "  Lead:       %s (%d) %s\n", s.LeadScore.Rating, s.LeadScore.Score, s.LeadScore.CaseType)
	}
	if len(s.AgentsUsed) > 0 {
		fmt.Fprintf(&b, "  Roles used: %s\n", strings.Join(s.AgentsUsed, ", "))
	}

	return b.String()
}

// HandoffSummary renders the case package handed to the receiving human.
// It reads only accumulated session state, so it works for both escalated
// and completed sessions.
func HandoffSummary(s *model.Session) string {
	var b strings.Builder

	b.WriteString("CASE HANDOFF\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "Session: %s\n", s.ID)

	if s.Handoff != nil {
		fmt.Fprintf(&b, "Escalation: %s (%s)\n", s.Handoff.EscalationType, s.Handoff.Urgency)
		fmt.Fprintf(&b, "Reason: %s\n", s.Handoff.Reason)
		if s.Handoff.RouteTo != nil {
			fmt.Fprintf(&b, "Routed to: %s (%s)\n", s.Handoff.RouteTo.Name, s.Handoff.RouteTo.Role)
		}
		if s.Handoff.Call911 {
			b.WriteString("CLIENT REFERRED TO 911\n")
		}
	}

	if s.LeadScore != nil {
		fmt.Fprintf(&b, "\nLead score: %d (%s)\n", s.LeadScore.Score, s.LeadScore.Rating)
		fmt.Fprintf(&b, "Case type: %s\n", s.LeadScore.CaseType)
		if s.LeadScore.Summary != "" {
			fmt.Fprintf(&b, "Summary: %s\n", s.LeadScore.Summary)
		}
		for _, f := range s.LeadScore.KeyFactors {
			fmt.Fprintf(&b, "  + %s\n", f)
		}
		for _, f := range s.LeadScore.RedFlags {
			fmt.Fprintf(&b, "  ! %s\n", f)
		}
	}

	if s.Research != nil && s.Research.StatuteOfLimitations != nil {
		sol := s.Research.StatuteOfLimitations
		fmt.Fprintf(&b, "\nStatute of limitations: %s (%s, %s)\n", sol.Deadline, sol.State, sol.CaseType)
	}

	if len(s.ClientInfo) > 0 {
		b.WriteString("\nContact:\n")
		for _, k := range []string{"name", "phone", "email"} {
			if v, ok := s.ClientInfo[k]; ok {
				fmt.Fprintf(&b, "  %s: %s\n", k, v)
			}
		}
	}

	if s.Documents.Requested != nil && len(s.Documents.Requested.Documents) > 0 {
		b.WriteString("\nDocuments requested:\n")
		for _, d := range s.Documents.Requested.Documents {
			fmt.Fprintf(&b, "  [%s] %s\n", d.Priority, d.Item)
		}
	}

	if len(s.Appointments) > 0 {
		b.WriteString("\nAppointments:\n")
		for _, a := range s.Appointments {
			fmt.Fprintf(&b, "  %s %s with %s (%s)\n", a.Date, a.Time, a.Attorney, a.Status)
		}
	}

	fmt.Fprintf(&b, "\nTranscript (%d turns):\n", len(s.Conversation))
	for _, t := range s.Conversation {
		fmt.Fprintf(&b, "  %s: %s\n", t.Role, t.Content)
	}

	return b.String()
}
