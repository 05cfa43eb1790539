package role

import (
	"context"
	"fmt"
	"time"

	"github.com/sells-group/intake-engine/internal/model"
)

const followUpSystemPrompt = `You are writing the first follow-up message to a potential personal injury client who just finished an intake conversation. Match the requested channel: SMS must be under 160 characters; email gets a subject line and a short body.

Tone: warm, professional, no pressure. Remind them of the next step already promised, and invite questions.

Respond with ONLY a JSON object, no prose, matching:
{
  "message_type": "sms" | "email",
  "subject": "<email only>",
  "body": "<the message>",
  "send_time": "<when to send, e.g. 'in 1 hour'>",
  "follow_up_if_no_response": <days>
}`

// FollowUpPlanner is the follow-up specialization. The cadence is a fixed
// function of the lead rating; only the first message body is generated.
type FollowUpPlanner struct {
	gen *Generator
}

// NewFollowUpPlanner builds the follow-up role.
func NewFollowUpPlanner(gen *Generator) *FollowUpPlanner {
	return &FollowUpPlanner{gen: gen}
}

// Name returns the audit-log identifier for this role.
func (r *FollowUpPlanner) Name() string { return "follow_up" }

// Sequence returns the contact cadence for a rating. Stages are numbered
// from 1 and delays are measured from pipeline completion.
func (r *FollowUpPlanner) Sequence(rating model.Rating) []model.FollowUpStep {
	switch rating {
	case model.RatingHot:
		return []model.FollowUpStep{
			{Stage: 1, Delay: 1 * time.Hour, Channel: model.ChannelSMS},
			{Stage: 2, Delay: 24 * time.Hour, Channel: model.ChannelEmail},
			{Stage: 3, Delay: 72 * time.Hour, Channel: model.ChannelSMS},
			{Stage: 4, Delay: 168 * time.Hour, Channel: model.ChannelEmail},
		}
	case model.RatingCold:
		return []model.FollowUpStep{
			{Stage: 1, Delay: 48 * time.Hour, Channel: model.ChannelEmail},
			{Stage: 2, Delay: 168 * time.Hour, Channel: model.ChannelEmail},
		}
	default:
		return []model.FollowUpStep{
			{Stage: 1, Delay: 24 * time.Hour, Channel: model.ChannelEmail},
			{Stage: 2, Delay: 72 * time.Hour, Channel: model.ChannelSMS},
			{Stage: 3, Delay: 168 * time.Hour, Channel: model.ChannelEmail},
			{Stage: 4, Delay: 336 * time.Hour, Channel: model.ChannelEmail},
		}
	}
}

// DraftFirst generates the first message of the cadence for a session.
func (r *FollowUpPlanner) DraftFirst(ctx context.Context, s *model.Session, score model.LeadScore, step model.FollowUpStep) (Outcome[model.FollowUpMessage], error) {
	name := s.ClientInfo["name"]
	if name == "" {
		name = "the client"
	}

	prompt := fmt.Sprintf(
		"Draft the stage-%d %s follow-up.\n\nClient: %s\nCase type: %s\nRating: %s\nLanguage: %s\nCase summary: %s",
		step.Stage, step.Channel, name, score.CaseType, score.Rating, s.Language, score.Summary)

	raw, err := r.gen.GeneratePrompt(ctx, r.Name(), followUpSystemPrompt, prompt)
	if err != nil {
		return Outcome[model.FollowUpMessage]{}, err
	}
	return Decode[model.FollowUpMessage](raw), nil
}
