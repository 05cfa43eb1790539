package role

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/intake-engine/pkg/anthropic"
)

// Interface compliance checks.
var _ anthropic.Client = (*mockClient)(nil)

// mockClient is a testify mock of the generation client.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// textResponse wraps plain text in a response the way the backend does.
func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}
