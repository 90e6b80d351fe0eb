package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/quorum/internal/config"
)

func newParticipantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "participants",
		Short: "List providers, their active models, and credential status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMODEL\tSTATUS")
			for _, id := range []string{config.ProviderOpenAI, config.ProviderGemini, config.ProviderGrok, config.ProviderAnthropic} {
				p, ok := cfg.Providers[id]
				if !ok {
					continue
				}
				spec, err := cfg.ModelFor(id)
				if err != nil {
					return err
				}
				status := "ready"
				switch {
				case !p.Enabled:
					status = "disabled"
				case p.APIKey == "":
					status = "no API key"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, p.Name, spec.Model, status)
			}
			return w.Flush()
		},
	}
}
