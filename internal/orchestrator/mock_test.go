package orchestrator

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/intake-engine/internal/escalation"
	"github.com/sells-group/intake-engine/internal/language"
	"github.com/sells-group/intake-engine/internal/lawdata"
	"github.com/sells-group/intake-engine/internal/resilience"
	"github.com/sells-group/intake-engine/internal/role"
	"github.com/sells-group/intake-engine/internal/session"
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

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

// testEngine bundles a fully wired router and coordinator over one store.
type testEngine struct {
	store       *session.Store
	router      *ConversationRouter
	coordinator *PipelineCoordinator
}

func newTestEngine(client anthropic.Client) *testEngine {
	cfg := role.DefaultGeneratorConfig()
	cfg.RatePerSec = 1000
	cfg.Burst = 1000
	cfg.Retry = resilience.RetryConfig{MaxAttempts: 1}
	gen := role.NewGenerator(client, cfg)

	store := session.NewStore()
	statutes := lawdata.DefaultStatutes()
	roster := lawdata.DefaultRoster()
	clock := func() time.Time { return time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC) }

	return &testEngine{
		store: store,
		router: NewConversationRouter(
			store,
			escalation.NewGate(),
			language.NewClassifier(),
			role.NewIntakeRole(gen),
			role.NewSpanishIntakeRole(gen),
		),
		coordinator: NewPipelineCoordinator(
			store,
			role.NewScorer(gen),
			role.NewResearcher(gen, statutes, "Nevada"),
			role.NewHandoffRouter(roster),
			role.NewFollowUpPlanner(gen),
			role.NewDocumentClerk(gen),
			role.NewScheduler(clock),
		),
	}
}
