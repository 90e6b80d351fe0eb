// Package output renders debate progress and final reports for the
// terminal and persists completed debates to the decision history.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lorenzotomasdiez/quorum/internal/debate"
	"github.com/lorenzotomasdiez/quorum/internal/debate/consensus"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	nameStyle    = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Terminal streams debate progress to a writer. Wire Observe as the
// engine's OnEvent callback; the engine serializes invocations.
type Terminal struct {
	w       io.Writer
	Verbose bool
}

func NewTerminal(w io.Writer) *Terminal { return &Terminal{w: w} }

// Observe renders one engine event.
func (t *Terminal) Observe(ev debate.Event) {
	switch ev.Type {
	case debate.EventDebateStart:
		fmt.Fprintf(t.w, "\n%s\n\n", titleStyle.Render(fmt.Sprintf("Convening the quorum (up to %d rounds)", ev.TotalRounds)))
	case debate.EventRoundStart:
		fmt.Fprintf(t.w, "%s\n", sectionStyle.Render(fmt.Sprintf("--- Round %d of %d ---", ev.Round, ev.TotalRounds)))
	case debate.EventParticipantStart:
		if t.Verbose {
			fmt.Fprintf(t.w, "  %s\n", dimStyle.Render("asking "+ev.ParticipantName+"..."))
		}
	case debate.EventParticipantComplete:
		r := ev.Response
		fmt.Fprintf(t.w, "  %s %s %s %s\n",
			okStyle.Render("+"),
			nameStyle.Render(r.ParticipantName),
			confidenceBar(r.Confidence),
			dimStyle.Render(fmt.Sprintf("%s (%.1fs)", r.Decision, float64(r.DurationMS)/1000)),
		)
		if t.Verbose {
			fmt.Fprintf(t.w, "    %s\n", truncate(r.Position, 100))
		}
	case debate.EventParticipantError:
		fmt.Fprintf(t.w, "  %s %s %s\n",
			failStyle.Render("x"),
			nameStyle.Render(ev.ParticipantName),
			failStyle.Render(ev.Err),
		)
	case debate.EventRoundComplete:
		t.printRoundVerdict(ev.Round, ev.Consensus)
		fmt.Fprintf(t.w, "  %s\n\n", dimStyle.Render(fmt.Sprintf("running cost $%.4f, %d tokens", ev.TotalCost, ev.TotalTokens)))
	case debate.EventSynthesisStart:
		fmt.Fprintf(t.w, "%s\n", dimStyle.Render("Synthesizing action plan..."))
	case debate.EventSynthesisError:
		fmt.Fprintf(t.w, "%s\n", warnStyle.Render("Action plan unavailable: "+ev.Err))
	}
}

func (t *Terminal) printRoundVerdict(round int, c *consensus.Result) {
	if c == nil {
		return
	}
	switch {
	case c.Reached:
		fmt.Fprintf(t.w, "  %s\n", okStyle.Render(fmt.Sprintf("Round %d: consensus reached (%s): %s", round, c.Type, c.Decision)))
	case c.Type == consensus.TypeInsufficient:
		fmt.Fprintf(t.w, "  %s\n", warnStyle.Render(fmt.Sprintf("Round %d: not enough valid responses for a verdict", round)))
	default:
		fmt.Fprintf(t.w, "  %s\n", warnStyle.Render(fmt.Sprintf("Round %d: no consensus (%s)", round, splitSummary(c.Groups))))
	}
}

// PrintReport renders the final verdict and action plan.
func (t *Terminal) PrintReport(report *debate.Report) {
	rule := dimStyle.Render(strings.Repeat("=", 64))
	fmt.Fprintf(t.w, "\n%s\n%s\n%s\n\n", rule, titleStyle.Render("  FINAL VERDICT"), rule)

	c := report.FinalConsensus
	switch {
	case c == nil || c.Type == consensus.TypeInsufficient:
		fmt.Fprintf(t.w, "  %s\n", failStyle.Render("No verdict: too few participants responded."))
	case c.Reached:
		fmt.Fprintf(t.w, "  %s\n\n", okStyle.Render(fmt.Sprintf("%s: %s", c.Decision, c.Position)))
		fmt.Fprintf(t.w, "  Consensus: %s after round %d\n", c.Type, len(report.Rounds))
		fmt.Fprintf(t.w, "  Average confidence: %d/10\n", c.Confidence)
	case c.Majority != nil:
		m := c.Majority
		fmt.Fprintf(t.w, "  %s\n\n", warnStyle.Render(fmt.Sprintf("SPLIT DECISION - majority view: %s", m.Position)))
		fmt.Fprintf(t.w, "  Split: %s\n", splitSummary(c.Groups))
		fmt.Fprintf(t.w, "  Majority confidence: %d/10\n", m.Confidence)
	}

	if len(report.Rounds) > 0 {
		fmt.Fprintf(t.w, "\n  %s\n", dimStyle.Render("Key arguments:"))
		last := report.Rounds[len(report.Rounds)-1]
		for i := range last.Responses {
			r := &last.Responses[i]
			if r.Failed() {
				continue
			}
			arg := r.KeyArgument
			if arg == "" {
				arg = truncate(r.Reasoning, 80)
			}
			fmt.Fprintf(t.w, "  - %s: %s\n", nameStyle.Render(r.ParticipantName), arg)
		}
	}

	if report.ActionPlan != nil {
		t.printActionPlan(report.ActionPlan)
	}

	fmt.Fprintf(t.w, "\n  %s\n", dimStyle.Render(fmt.Sprintf("Total cost: $%.4f  (%d input + %d output tokens)",
		report.TotalCost, report.TokenUsage.TotalInput, report.TokenUsage.TotalOutput)))
	fmt.Fprintf(t.w, "%s\n\n", rule)
}

func (t *Terminal) printActionPlan(plan *debate.ActionPlan) {
	fmt.Fprintf(t.w, "\n%s\n\n", sectionStyle.Render("  ACTION PLAN"))
	if plan.ExecutiveSummary != "" {
		fmt.Fprintf(t.w, "  %s\n\n", plan.ExecutiveSummary)
	}
	fmt.Fprintf(t.w, "  Decision: %s (confidence %d/10)\n", nameStyle.Render(plan.Decision), plan.ConfidenceScore)
	printList(t.w, "Immediate actions", plan.ImmediateActions)
	printList(t.w, "Before proceeding", plan.BeforeProceeding)
	printList(t.w, "Risk mitigation", plan.RiskMitigation)
	printList(t.w, "Success indicators", plan.SuccessIndicators)
	if plan.TimelineSuggestion != "" {
		fmt.Fprintf(t.w, "\n  Timeline: %s\n", plan.TimelineSuggestion)
	}
	if plan.DissentingViewSummary != "" {
		fmt.Fprintf(t.w, "  %s %s\n", warnStyle.Render("Dissenting view:"), plan.DissentingViewSummary)
	}
	fmt.Fprintf(t.w, "  %s\n", dimStyle.Render("synthesized by "+plan.SynthesizedBy))
}

// PrintEstimate renders the pre-flight cost envelope.
func (t *Terminal) PrintEstimate(est debate.CostEstimate) {
	fmt.Fprintf(t.w, "\n%s\n", nameStyle.Render("Cost estimate"))
	fmt.Fprintf(t.w, "  Participants: %s\n", strings.Join(est.Participants, ", "))
	fmt.Fprintf(t.w, "  Estimated cost: $%.2f - $%.2f\n\n", est.Min, est.Max)
}

func printList(w io.Writer, header string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  %s\n", nameStyle.Render(header+":"))
	for i, item := range items {
		fmt.Fprintf(w, "  %d. %s\n", i+1, item)
	}
}

func confidenceBar(confidence int) string {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 10 {
		confidence = 10
	}
	return okStyle.Render(strings.Repeat("#", confidence)) + dimStyle.Render(strings.Repeat(".", 10-confidence))
}

func splitSummary(groups []consensus.Group) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprintf("%s (%d)", g.Decision, g.Count)
	}
	return strings.Join(parts, " vs ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
