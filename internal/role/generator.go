// Package role implements the specialized intake roles that sit between the
// orchestrator and the generation backend. Each role owns its system prompt
// and output contract; the conversational roles return plain replies while
// the pipeline roles return structured outcomes that degrade to raw text
// when parsing fails.
package role

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/intake-engine/internal/model"
	"github.com/sells-group/intake-engine/internal/resilience"
	"github.com/sells-group/intake-engine/pkg/anthropic"
)

// GeneratorConfig tunes the shared generation path.
type GeneratorConfig struct {
	Model       string
	MaxTokens   int64
	Timeout     time.Duration
	RatePerSec  float64
	Burst       int
	Retry       resilience.RetryConfig
	Temperature *float64
}

// DefaultGeneratorConfig returns generation settings suitable for intake
// conversations and pipeline stages.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Model:      "claude-sonnet-4-20250514",
		MaxTokens:  1024,
		Timeout:    60 * time.Second,
		RatePerSec: 2,
		Burst:      4,
		Retry:      resilience.DefaultRetryConfig(),
	}
}

// Generator is the single funnel through which every role produces text.
// It applies rate limiting, a per-call timeout, and transient-error retry
// around the backing client.
type Generator struct {
	client  anthropic.Client
	cfg     GeneratorConfig
	limiter *rate.Limiter
}

// NewGenerator builds a Generator around the given client.
func NewGenerator(client anthropic.Client, cfg GeneratorConfig) *Generator {
	if cfg.Model == "" {
		cfg = DefaultGeneratorConfig()
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 4
	}
	return &Generator{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
	}
}

// Generate produces a completion for the given system prompt and transcript.
// The transcript is sent verbatim in order; the last turn should be the
// user message being answered.
func (g *Generator) Generate(ctx context.Context, roleName, system string, turns []model.Turn) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "role: rate limit wait")
	}

	messages := make([]anthropic.Message, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, anthropic.Message{
			Role:    string(t.Role),
			Content: t.Content,
		})
	}

	retry := g.cfg.Retry
	retry.OnRetry = resilience.RetryLogger("anthropic", roleName)

	start := time.Now()
	resp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		callCtx := ctx
		if g.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
			defer cancel()
		}
		return g.client.CreateMessage(callCtx, anthropic.MessageRequest{
			Model:       g.cfg.Model,
			MaxTokens:   g.cfg.MaxTokens,
			System:      system,
			Messages:    messages,
			Temperature: g.cfg.Temperature,
		})
	})
	if err != nil {
		return "", eris.Wrapf(err, "role: %s generation", roleName)
	}

	zap.L().Debug("generation complete",
		zap.String("role", roleName),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)

	return resp.Text(), nil
}

// GeneratePrompt is a convenience for pipeline roles that send one user
// prompt rather than a running transcript.
func (g *Generator) GeneratePrompt(ctx context.Context, roleName, system, prompt string) (string, error) {
	return g.Generate(ctx, roleName, system, []model.Turn{
		{Role: model.TurnRoleUser, Content: prompt},
	})
}
