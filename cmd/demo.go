package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/intake-engine/internal/orchestrator"
)

var demoSessions int

// Scripted conversations exercised by the demo command.
var demoScripts = [][]string{
	{
		"I was rear-ended by a commercial truck on I-15 last week. I spent two nights in the hospital.",
		"My name is John Smith, my number is 555-123-4567. The truck driver got a citation.",
		"I have the police report and photos of the car.",
	},
	{
		"Hola, necesito ayuda. Tuve un accidente de auto hace tres días.",
		"Me duele el cuello y la espalda. Fui al doctor ayer. Mi correo es maria@example.com",
		"El otro conductor pasó el semáforo en rojo, la policía hizo un reporte.",
	},
	{
		"I slipped in a grocery store a few months ago but I'm mostly fine now.",
		"No real injuries, just wondering if I have a case.",
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run scripted intake conversations through the full pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := initEngine()
		if err != nil {
			return err
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		for i := 0; i < demoSessions; i++ {
			script := demoScripts[i%len(demoScripts)]
			g.Go(func() error {
				return runDemoSession(ctx, eng, script)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		stats := eng.Store.Stats()
		fmt.Printf("\nSessions: %d  hot leads: %d  escalated: %d\n", stats.Total, stats.HotLeads, stats.Escalated)
		return nil
	},
}

func runDemoSession(ctx context.Context, eng *engine, script []string) error {
	res, err := eng.Router.StartSession(ctx, script[0])
	if err != nil {
		return err
	}
	fmt.Printf("[%s] client: %s\n", res.SessionID[:8], script[0])
	fmt.Printf("[%s] intake: %s\n", res.SessionID[:8], res.Reply)

	for _, msg := range script[1:] {
		res, err = eng.Router.ContinueSession(ctx, res.SessionID, msg)
		if err != nil {
			return err
		}
		fmt.Printf("[%s] client: %s\n", res.SessionID[:8], msg)
		fmt.Printf("[%s] intake: %s\n", res.SessionID[:8], res.Reply)
	}

	result, err := eng.Coordinator.Complete(ctx, res.SessionID, "")
	if err != nil {
		zap.L().Warn("demo pipeline failed", zap.String("session_id", res.SessionID), zap.Error(err))
		return nil
	}

	s, _ := eng.Store.Get(res.SessionID)
	fmt.Printf("\n[%s] %s lead (%d): %s\n", res.SessionID[:8], result.LeadScore.Rating, result.LeadScore.Score, result.LeadScore.CaseType)
	fmt.Println(orchestrator.HandoffSummary(s))
	return nil
}

func init() {
	demoCmd.Flags().IntVar(&demoSessions, "sessions", 1, "number of concurrent demo sessions")
	rootCmd.AddCommand(demoCmd)
}
