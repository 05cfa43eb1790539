package model

// RequestedDocument is one item in a document request, with its priority
// and client-facing instructions.
type RequestedDocument struct {
	Item         string `json:"item"`
	Priority     string `json:"priority"` // "critical", "important", "helpful"
	WhyNeeded    string `json:"why_needed,omitempty"`
	HowToProvide string `json:"how_to_provide,omitempty"`
	Deadline     string `json:"deadline,omitempty"`
}

// DocumentRequest is the structured output of the document-request stage.
type DocumentRequest struct {
	Documents      []RequestedDocument `json:"documents_requested"`
	ClientMessage  string              `json:"message_to_client"`
	FollowUpInDays int                 `json:"follow_up_in_days,omitempty"`
}

// FallbackDocumentRequest wraps unparseable generation output as the client
// message.
func FallbackDocumentRequest(raw string) DocumentRequest {
	return DocumentRequest{ClientMessage: raw}
}
