package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/quorum/internal/config"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)

	root := &cobra.Command{
		Use:   "quorum",
		Short: "Multi-LLM consensus debate platform",
		Long:  "Sends a question to several LLM providers, runs structured debate rounds until their answers converge, and synthesizes the final round into an action plan.",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				log.SetLevel(logrus.InfoLevel)
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Show per-call detail and info logs")
	root.PersistentFlags().String("tier", "", "Model tier: budget or premium (overrides config)")

	root.AddCommand(newDebateCmd(log))
	root.AddCommand(newEstimateCmd(log))
	root.AddCommand(newParticipantsCmd())
	root.AddCommand(newHistoryCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig layers root flag overrides on top of file/env configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if tier, _ := cmd.Root().PersistentFlags().GetString("tier"); tier != "" {
		cfg.Tier = tier
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
