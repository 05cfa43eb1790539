package main

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/intake-engine/internal/escalation"
	"github.com/sells-group/intake-engine/internal/language"
	"github.com/sells-group/intake-engine/internal/lawdata"
	"github.com/sells-group/intake-engine/internal/orchestrator"
	"github.com/sells-group/intake-engine/internal/resilience"
	"github.com/sells-group/intake-engine/internal/role"
	"github.com/sells-group/intake-engine/internal/session"
	"github.com/sells-group/intake-engine/pkg/anthropic"
)

// engine bundles the wired router and coordinator plus their store.
type engine struct {
	Store       *session.Store
	Router      *orchestrator.ConversationRouter
	Coordinator *orchestrator.PipelineCoordinator
}

// initEngine wires the full intake engine from configuration.
func initEngine() (*engine, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic key is required (INTAKE_ANTHROPIC_KEY or config.yaml)")
	}

	statutes, err := lawdata.LoadStatutes(cfg.Lawdata.StatutesPath)
	if err != nil {
		return nil, err
	}
	roster, err := lawdata.LoadRoster(cfg.Lawdata.RosterPath)
	if err != nil {
		return nil, err
	}

	retry := resilience.DefaultRetryConfig()
	if cfg.Pipeline.RetryAttempts > 0 {
		retry.MaxAttempts = cfg.Pipeline.RetryAttempts
	}

	genCfg := role.DefaultGeneratorConfig()
	genCfg.Model = cfg.Anthropic.Model
	genCfg.MaxTokens = cfg.Anthropic.MaxTokens
	genCfg.Timeout = time.Duration(cfg.Anthropic.TimeoutSecs) * time.Second
	genCfg.RatePerSec = cfg.Anthropic.RatePerSec
	genCfg.Burst = cfg.Anthropic.RateBurst
	genCfg.Retry = retry

	gen := role.NewGenerator(anthropic.NewClient(cfg.Anthropic.Key), genCfg)
	store := session.NewStore()

	return &engine{
		Store: store,
		Router: orchestrator.NewConversationRouter(
			store,
			escalation.NewGate(),
			language.NewClassifier(),
			role.NewIntakeRole(gen),
			role.NewSpanishIntakeRole(gen),
		),
		Coordinator: orchestrator.NewPipelineCoordinator(
			store,
			role.NewScorer(gen),
			role.NewResearcher(gen, statutes, cfg.Pipeline.DefaultJurisdiction),
			role.NewHandoffRouter(roster),
			role.NewFollowUpPlanner(gen),
			role.NewDocumentClerk(gen),
			role.NewScheduler(nil),
		),
	}, nil
}
