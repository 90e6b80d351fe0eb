package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/quorum/internal/debate"
	"github.com/lorenzotomasdiez/quorum/internal/llm"
	"github.com/lorenzotomasdiez/quorum/internal/output"
)

func newEstimateCmd(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate",
		Short: "Show the expected cost of a full debate without running one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			registry, err := llm.NewRegistry(cfg)
			if err != nil {
				return err
			}
			clients := registry.Clients()
			if len(clients) == 0 {
				return fmt.Errorf("no providers configured: set an API key and retry")
			}

			engine := debate.New(clients, cfg.Debate, cfg.Costs, log)
			term := output.NewTerminal(cmd.OutOrStdout())
			term.PrintEstimate(engine.EstimateCost())
			fmt.Fprintf(cmd.OutOrStdout(), "Tier: %s, up to %d rounds, budget ceiling $%.2f\n",
				cfg.Tier, cfg.Debate.MaxRounds, cfg.Costs.MaxPerSession)
			return nil
		},
	}
}
