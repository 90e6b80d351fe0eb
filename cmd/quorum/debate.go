package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/quorum/internal/debate"
	"github.com/lorenzotomasdiez/quorum/internal/llm"
	"github.com/lorenzotomasdiez/quorum/internal/output"
)

func newDebateCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "debate [question]",
		Aliases: []string{"ask"},
		Short:   "Run a multi-LLM debate on a question",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebate(cmd, args, log)
		},
	}
	cmd.Flags().StringP("context", "c", "", "Additional context or constraints")
	cmd.Flags().StringSlice("participants", nil, "Restrict to these providers (e.g. openai,claude); needs at least 2")
	cmd.Flags().Int("rounds", 0, "Override the round ceiling")
	cmd.Flags().String("threshold", "", "Override the consensus threshold: unanimous, supermajority, or majority")
	cmd.Flags().Bool("no-save", false, "Skip writing the decision to history")
	return cmd
}

func runDebate(cmd *cobra.Command, args []string, log *logrus.Logger) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if rounds, _ := cmd.Flags().GetInt("rounds"); rounds > 0 {
		cfg.Debate.MaxRounds = rounds
	}
	if threshold, _ := cmd.Flags().GetString("threshold"); threshold != "" {
		cfg.Debate.Threshold = threshold
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	contextText, _ := cmd.Flags().GetString("context")

	registry, err := llm.NewRegistry(cfg)
	if err != nil {
		return err
	}
	participantIDs, _ := cmd.Flags().GetStringSlice("participants")
	clients := registry.Select(participantIDs)
	if len(clients) == 0 {
		return fmt.Errorf("no providers configured: set an API key (e.g. OPENAI_API_KEY, ANTHROPIC_API_KEY) and retry")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	verbose, _ := cmd.Flags().GetBool("verbose")
	term := output.NewTerminal(cmd.OutOrStdout())
	term.Verbose = verbose

	engine := debate.New(clients, cfg.Debate, cfg.Costs, log)
	engine.OnEvent = term.Observe

	fmt.Fprintf(cmd.OutOrStdout(), "Question: %s\n", question)
	if contextText != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Context: %s\n", contextText)
	}

	report, err := engine.Run(ctx, question, contextText)
	if err != nil {
		return err
	}

	term.PrintReport(report)

	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave && (cfg.Output.SaveJSON || cfg.Output.SaveMarkdown) {
		history := output.NewHistory(cfg.Output.Dir)
		jsonPath, mdPath, err := history.Save(report)
		if err != nil {
			log.Warnf("could not save decision: %v", err)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to:\n   %s\n   %s\n\n", jsonPath, mdPath)
		}
	}
	return nil
}
