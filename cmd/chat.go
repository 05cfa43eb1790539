package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/intake-engine/internal/model"
	"github.com/sells-group/intake-engine/internal/orchestrator"
)

var chatJurisdiction string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive intake conversation in the terminal",
	Long:  "Starts an intake conversation on stdin. Type 'done' to run the pipeline over the conversation, 'quit' to exit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := initEngine()
		if err != nil {
			return err
		}

		fmt.Println("Intake chat. Type 'done' to finish the intake, 'quit' to exit.")
		scanner := bufio.NewScanner(os.Stdin)
		sessionID := ""

		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			switch strings.ToLower(line) {
			case "quit", "exit":
				return nil
			case "done":
				if sessionID == "" {
					fmt.Println("Nothing to complete yet.")
					continue
				}
				result, err := eng.Coordinator.Complete(cmd.Context(), sessionID, chatJurisdiction)
				if err != nil {
					fmt.Printf("Pipeline error: %v\n", err)
					continue
				}
				s, _ := eng.Store.Get(sessionID)
				fmt.Printf("\n%s lead (%d): %s\n\n", result.LeadScore.Rating, result.LeadScore.Score, result.LeadScore.CaseType)
				fmt.Println(orchestrator.HandoffSummary(s))
				return nil
			}

			var res *orchestrator.TurnResult
			if sessionID == "" {
				res, err = eng.Router.StartSession(cmd.Context(), line)
			} else {
				res, err = eng.Router.ContinueSession(cmd.Context(), sessionID, line)
			}
			if err != nil {
				return err
			}
			sessionID = res.SessionID

			fmt.Println(res.Reply)
			if res.Status == model.StatusEscalated {
				fmt.Println("\nThis conversation has been escalated to a human. Goodbye.")
				return nil
			}
		}
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatJurisdiction, "jurisdiction", "", "case jurisdiction (default from config)")
	rootCmd.AddCommand(chatCmd)
}
