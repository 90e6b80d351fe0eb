package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/lorenzotomasdiez/quorum/internal/debate"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a filesystem-safe stem from a question.
func slugify(question string) string {
	s := slugRe.ReplaceAllString(strings.ToLower(question), "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

// History persists completed debates under a single directory as paired
// JSON and Markdown files named <date>-<question-slug>. The JSON file is
// the record of truth; Markdown is a human-readable rendering.
type History struct {
	dir string
}

func NewHistory(dir string) *History { return &History{dir: dir} }

// Entry is one past decision as listed from the history directory.
type Entry struct {
	Filename string
	Report   *debate.Report
}

// Save writes both formats and returns their paths.
func (h *History) Save(report *debate.Report) (jsonPath, mdPath string, err error) {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("output: create history dir: %w", err)
	}

	stem := report.Timestamp.Format("2006-01-02") + "-" + slugify(report.Question)

	jsonPath = filepath.Join(h.dir, stem+".json")
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("output: encode report: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("output: write report: %w", err)
	}

	mdPath = filepath.Join(h.dir, stem+".md")
	if err := os.WriteFile(mdPath, []byte(renderMarkdown(report)), 0o644); err != nil {
		return "", "", fmt.Errorf("output: write markdown: %w", err)
	}
	return jsonPath, mdPath, nil
}

// List returns past decisions, most recent first. Files that fail to parse
// are skipped rather than failing the whole listing.
func (h *History) List() ([]Entry, error) {
	files, err := os.ReadDir(h.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("output: read history dir: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(f.Name(), ".json") {
			names = append(names, f.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		report, err := h.Get(name)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Filename: name, Report: report})
	}
	return entries, nil
}

// Get loads one past decision by filename.
func (h *History) Get(filename string) (*debate.Report, error) {
	data, err := os.ReadFile(filepath.Join(h.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("output: read decision: %w", err)
	}
	var report debate.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("output: parse decision %s: %w", filename, err)
	}
	return &report, nil
}

// Search filters past decisions by a case-insensitive keyword over the
// question, context, and final position.
func (h *History) Search(keyword string) ([]Entry, error) {
	entries, err := h.List()
	if err != nil {
		return nil, err
	}
	kw := strings.ToLower(keyword)
	matched := entries[:0]
	for _, e := range entries {
		hay := strings.ToLower(e.Report.Question) + "\n" + strings.ToLower(e.Report.Context)
		if e.Report.FinalConsensus != nil {
			hay += "\n" + strings.ToLower(e.Report.FinalConsensus.Position)
		}
		if strings.Contains(hay, kw) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Delete removes both files of a past decision. Reports whether anything
// was removed.
func (h *History) Delete(filename string) (bool, error) {
	deleted := false
	for _, name := range []string{filename, strings.TrimSuffix(filename, ".json") + ".md"} {
		err := os.Remove(filepath.Join(h.dir, name))
		if err == nil {
			deleted = true
		} else if !os.IsNotExist(err) {
			return deleted, fmt.Errorf("output: delete decision: %w", err)
		}
	}
	return deleted, nil
}

// Stats summarizes the decision history.
type Stats struct {
	Total            int
	ConsensusReached int
	SplitDecisions   int
	TotalCost        float64
	AverageRounds    float64
}

func (h *History) Stats() (Stats, error) {
	entries, err := h.List()
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	s.Total = len(entries)
	rounds := 0
	for _, e := range entries {
		if e.Report.FinalConsensus != nil && e.Report.FinalConsensus.Reached {
			s.ConsensusReached++
		} else {
			s.SplitDecisions++
		}
		s.TotalCost += e.Report.TotalCost
		rounds += len(e.Report.Rounds)
	}
	if s.Total > 0 {
		s.AverageRounds = float64(rounds) / float64(s.Total)
	}
	return s, nil
}

func renderMarkdown(report *debate.Report) string {
	var b strings.Builder
	c := report.FinalConsensus

	fmt.Fprintf(&b, "# Decision: %s\n\n", report.Question)
	fmt.Fprintf(&b, "**Date:** %s\n", report.Timestamp.Format("2006-01-02"))
	fmt.Fprintf(&b, "**Participants:** %s\n", strings.Join(report.Participants, ", "))
	fmt.Fprintf(&b, "**Total Cost:** $%.4f\n\n", report.TotalCost)

	if report.Context != "" {
		fmt.Fprintf(&b, "## Context\n\n%s\n\n", report.Context)
	}

	b.WriteString("## Final Decision\n\n")
	switch {
	case c == nil:
		b.WriteString("No verdict was produced.\n\n")
	case c.Reached:
		fmt.Fprintf(&b, "**Recommendation:** %s\n\n", c.Position)
		fmt.Fprintf(&b, "- Consensus Type: %s\n", c.Type)
		fmt.Fprintf(&b, "- Rounds to Consensus: %d\n", len(report.Rounds))
		fmt.Fprintf(&b, "- Average Confidence: %d/10\n\n", c.Confidence)
	default:
		position := "No clear majority"
		if c.Majority != nil {
			position = c.Majority.Position
		}
		fmt.Fprintf(&b, "**Split Decision - Majority View:** %s\n\n", position)
		if len(c.Groups) > 0 {
			fmt.Fprintf(&b, "- Votes: %s\n\n", splitSummary(c.Groups))
		}
	}

	if plan := report.ActionPlan; plan != nil {
		b.WriteString("## Action Plan\n\n")
		if plan.ExecutiveSummary != "" {
			fmt.Fprintf(&b, "%s\n\n", plan.ExecutiveSummary)
		}
		fmt.Fprintf(&b, "**Decision:** %s (confidence %d/10)\n\n", plan.Decision, plan.ConfidenceScore)
		writeMarkdownList(&b, "Immediate Actions", plan.ImmediateActions)
		writeMarkdownList(&b, "Before Proceeding", plan.BeforeProceeding)
		writeMarkdownList(&b, "Risk Mitigation", plan.RiskMitigation)
		writeMarkdownList(&b, "Success Indicators", plan.SuccessIndicators)
		if plan.TimelineSuggestion != "" {
			fmt.Fprintf(&b, "**Timeline:** %s\n\n", plan.TimelineSuggestion)
		}
		if plan.DissentingViewSummary != "" {
			fmt.Fprintf(&b, "**Dissenting View:** %s\n\n", plan.DissentingViewSummary)
		}
	}

	b.WriteString("## Debate Rounds\n\n")
	for _, round := range report.Rounds {
		fmt.Fprintf(&b, "### Round %d\n\n", round.Number)
		for i := range round.Responses {
			r := &round.Responses[i]
			if r.Failed() {
				continue
			}
			fmt.Fprintf(&b, "#### %s\n\n", r.ParticipantName)
			fmt.Fprintf(&b, "- **Position:** %s", r.Position)
			if r.Changed {
				b.WriteString(" *(changed)*")
			}
			b.WriteString("\n")
			fmt.Fprintf(&b, "- **Confidence:** %d/10\n", r.Confidence)
			arg := r.KeyArgument
			if arg == "" {
				arg = "N/A"
			}
			fmt.Fprintf(&b, "- **Key Argument:** %s\n", arg)
			if r.Reasoning != "" {
				fmt.Fprintf(&b, "\n%s\n", r.Reasoning)
			}
			if r.ResponseToOthers != "" {
				fmt.Fprintf(&b, "\n*Response to others:* %s\n", r.ResponseToOthers)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeMarkdownList(b *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s:**\n\n", header)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
