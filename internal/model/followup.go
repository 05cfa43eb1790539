package model

import "time"

// Channel is the delivery channel for a follow-up contact attempt.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// FollowUpStep is one entry in the deterministic follow-up cadence derived
// from the lead rating.
type FollowUpStep struct {
	Stage   int           `json:"stage"`
	Delay   time.Duration `json:"delay"`
	Channel Channel       `json:"channel"`
}

// FollowUpMessage is a drafted outreach message for one cadence step.
type FollowUpMessage struct {
	MessageType    string `json:"message_type"`
	Subject        string `json:"subject,omitempty"`
	Body           string `json:"body"`
	SendTime       string `json:"send_time,omitempty"`
	FollowUpInDays int    `json:"follow_up_if_no_response,omitempty"`
}

// FallbackFollowUpMessage wraps unparseable generation output as the message
// body so a degraded draft is still usable.
func FallbackFollowUpMessage(raw string, ch Channel) FollowUpMessage {
	return FollowUpMessage{
		MessageType: string(ch),
		Body:        raw,
	}
}
