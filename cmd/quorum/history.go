package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/quorum/internal/output"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, search, and manage past decisions",
		RunE:  runHistory,
	}
	cmd.Flags().StringP("search", "s", "", "Filter by keyword over question, context, and final position")
	cmd.Flags().Int("limit", 10, "Maximum decisions to show")
	cmd.Flags().Bool("stats", false, "Show aggregate statistics instead of the listing")
	cmd.Flags().String("delete", "", "Delete a decision by its JSON filename")
	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	history := output.NewHistory(cfg.Output.Dir)
	out := cmd.OutOrStdout()

	if filename, _ := cmd.Flags().GetString("delete"); filename != "" {
		deleted, err := history.Delete(filename)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("no decision named %q", filename)
		}
		fmt.Fprintf(out, "Deleted %s\n", filename)
		return nil
	}

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		s, err := history.Stats()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Decisions: %d\n", s.Total)
		fmt.Fprintf(out, "Consensus reached: %d\n", s.ConsensusReached)
		fmt.Fprintf(out, "Split decisions: %d\n", s.SplitDecisions)
		fmt.Fprintf(out, "Total cost: $%.4f\n", s.TotalCost)
		fmt.Fprintf(out, "Average rounds: %.1f\n", s.AverageRounds)
		return nil
	}

	var entries []output.Entry
	if keyword, _ := cmd.Flags().GetString("search"); keyword != "" {
		entries, err = history.Search(keyword)
	} else {
		entries, err = history.List()
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No past decisions found.")
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	shown := entries
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	fmt.Fprintln(out, "Past decisions:")
	for i, e := range shown {
		r := e.Report
		verdict := "split"
		answer := ""
		if c := r.FinalConsensus; c != nil {
			if c.Reached {
				verdict = string(c.Type)
				answer = c.Position
			} else if c.Majority != nil {
				answer = c.Majority.Position
			}
		}
		fmt.Fprintf(out, "%d. [%s] %s\n", i+1, r.Timestamp.Format("2006-01-02"), verdict)
		fmt.Fprintf(out, "   Q: %s\n", clip(r.Question, 60))
		if answer != "" {
			fmt.Fprintf(out, "   A: %s\n", clip(answer, 60))
		}
		fmt.Fprintf(out, "   File: %s\n", e.Filename)
	}
	if len(entries) > len(shown) {
		fmt.Fprintf(out, "... and %d more decisions\n", len(entries)-len(shown))
	}
	return nil
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
