package role

import (
	"strings"

	"github.com/sells-group/intake-engine/internal/lawdata"
	"github.com/sells-group/intake-engine/internal/model"
)

// priorityIndicators are keywords that bump a HOT case to priority
// routing when found in the case type or any key factor.
var priorityIndicators = []string{
	"commercial vehicle",
	"trucking",
	"semi",
	"18-wheeler",
	"wrongful death",
	"death",
	"fatality",
	"catastrophic",
	"paralysis",
	"brain injury",
	"amputation",
	"medical malpractice",
	"surgical error",
	"minor",
	"child",
	"children",
	"government",
	"city",
	"state",
	"federal",
	"media",
	"news",
	"high profile",
}

// Client-facing routing messages per tier.
const (
	priorityClientMessage = "Based on what you've shared, your case needs immediate attention. One of our senior attorneys will call you within the next few hours. Please keep your phone nearby."
	hotClientMessage      = "Thank you for sharing those details. An attorney from our team will contact you within 24 hours to discuss your case."
	warmClientMessage     = "Thank you for reaching out. Our intake coordinator will follow up with you to gather a few more details and discuss next steps."
	declineClientMessage  = "Thank you for contacting us. Based on the information provided, this may not be a case our firm can take on, but another firm may be able to help. We wish you the best."
)

// HandoffRouter is the routing specialization. Routing is a pure function
// of the lead score and roster, with no generation involved, so the same
// score always routes the same way.
type HandoffRouter struct {
	roster *lawdata.Roster
}

// NewHandoffRouter builds the routing role against the given roster.
func NewHandoffRouter(roster *lawdata.Roster) *HandoffRouter {
	return &HandoffRouter{roster: roster}
}

// Name returns the audit-log identifier for this role.
func (r *HandoffRouter) Name() string { return "handoff_router" }

// DetermineRouting maps a lead score to a handoff decision.
func (r *HandoffRouter) DetermineRouting(score model.LeadScore) model.HandoffDecision {
	switch score.Rating {
	case model.RatingHot:
		if isPriority(score) {
			return r.route(lawdata.RoleSeniorPartner, model.HandoffDecision{
				EscalationNeeded: true,
				EscalationType:   model.EscalationPriority,
				Reason:           "High-value case requiring senior attorney review",
				ClientMessage:    priorityClientMessage,
				InternalNotes:    "Priority lead: " + score.Summary,
				Urgency:          model.UrgencySameDay,
			})
		}
		return r.routeBySpecialty(score.CaseType, model.HandoffDecision{
			EscalationNeeded: true,
			EscalationType:   model.EscalationStandard,
			Reason:           "Qualified lead ready for attorney contact",
			ClientMessage:    hotClientMessage,
			InternalNotes:    "Hot lead: " + score.Summary,
			Urgency:          model.UrgencySameDay,
		})
	case model.RatingWarm:
		return r.route(lawdata.RoleIntakeCoordinator, model.HandoffDecision{
			EscalationNeeded: true,
			EscalationType:   model.EscalationStandard,
			Reason:           "Lead needs further qualification",
			ClientMessage:    warmClientMessage,
			InternalNotes:    "Warm lead: " + score.Summary,
			Urgency:          model.Urgency24Hours,
		})
	default:
		return model.HandoffDecision{
			EscalationNeeded: false,
			EscalationType:   model.EscalationNone,
			Reason:           "Lead does not meet intake criteria",
			ClientMessage:    declineClientMessage,
			InternalNotes:    "Declined: " + score.Summary,
			Urgency:          model.UrgencyStandard,
		}
	}
}

// routeBySpecialty picks the standard-tier attorney whose roster
// specialties cover the case type, defaulting to the PI associate.
func (r *HandoffRouter) routeBySpecialty(caseType string, d model.HandoffDecision) model.HandoffDecision {
	if a := r.roster.ForSpecialties(specialtiesFor(caseType)); a != nil && !a.Screening {
		d.RouteTo = &model.RouteTo{
			Role:   a.ID,
			Name:   a.Name,
			Reason: d.Reason,
		}
		return d
	}
	return r.route(lawdata.RolePIAssociate, d)
}

// specialtiesFor maps a free-text case type to roster specialty tags.
func specialtiesFor(caseType string) []string {
	ct := strings.ToLower(caseType)
	switch {
	case strings.Contains(ct, "truck"), strings.Contains(ct, "semi"), strings.Contains(ct, "18-wheeler"):
		return []string{"commercial_trucking", "auto_accident"}
	case strings.Contains(ct, "auto"), strings.Contains(ct, "car"), strings.Contains(ct, "motorcycle"), strings.Contains(ct, "vehicle"):
		return []string{"auto_accident"}
	case strings.Contains(ct, "slip"), strings.Contains(ct, "fall"), strings.Contains(ct, "premises"):
		return []string{"slip_fall"}
	case strings.Contains(ct, "wrongful death"):
		return []string{"wrongful_death"}
	default:
		return []string{"general_pi"}
	}
}

// route fills the RouteTo block from the roster.
func (r *HandoffRouter) route(roleID string, d model.HandoffDecision) model.HandoffDecision {
	if a := r.roster.ByID(roleID); a != nil {
		d.RouteTo = &model.RouteTo{
			Role:   a.ID,
			Name:   a.Name,
			Reason: d.Reason,
		}
	}
	return d
}

// isPriority reports whether a HOT score warrants priority routing. It
// matches the indicator set against the case type and every key factor,
// and treats a high estimated value as priority on its own.
func isPriority(score model.LeadScore) bool {
	if strings.ToLower(score.EstimatedValue) == "high" {
		return true
	}

	haystacks := append([]string{score.CaseType}, score.KeyFactors...)
	for _, h := range haystacks {
		h = strings.ToLower(h)
		for _, ind := range priorityIndicators {
			if strings.Contains(h, ind) {
				return true
			}
		}
	}
	return false
}
