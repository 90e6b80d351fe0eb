package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzotomasdiez/quorum/internal/debate"
	"github.com/lorenzotomasdiez/quorum/internal/debate/consensus"
)

func TestObserveParticipantComplete(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Observe(debate.Event{
		Type:            debate.EventParticipantComplete,
		Round:           1,
		ParticipantName: "GPT",
		Response:        &debate.Response{ParticipantName: "GPT", Decision: "YES", Confidence: 8, Position: "Buy it", DurationMS: 1500},
	})

	out := buf.String()
	assert.Contains(t, out, "GPT")
	assert.Contains(t, out, "YES")
	assert.Contains(t, out, "1.5s")
	// Position detail only shows in verbose mode.
	assert.NotContains(t, out, "Buy it")
}

func TestObserveVerboseShowsPosition(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	term.Verbose = true

	term.Observe(debate.Event{
		Type:     debate.EventParticipantComplete,
		Response: &debate.Response{ParticipantName: "GPT", Decision: "YES", Confidence: 8, Position: "Buy it"},
	})
	assert.Contains(t, buf.String(), "Buy it")
}

func TestObserveParticipantError(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Observe(debate.Event{
		Type:            debate.EventParticipantError,
		ParticipantName: "Grok",
		Err:             "unexpected status 500",
	})
	assert.Contains(t, buf.String(), "Grok")
	assert.Contains(t, buf.String(), "unexpected status 500")
}

func TestObserveRoundCompleteSplit(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Observe(debate.Event{
		Type:  debate.EventRoundComplete,
		Round: 2,
		Consensus: &consensus.Result{
			Reached: false,
			Type:    consensus.TypeSplit,
			Groups:  []consensus.Group{{Decision: "YES", Count: 2}, {Decision: "NO", Count: 1}},
		},
		TotalCost:   0.0123,
		TotalTokens: 4200,
	})

	out := buf.String()
	assert.Contains(t, out, "no consensus")
	assert.Contains(t, out, "YES (2) vs NO (1)")
	assert.Contains(t, out, "$0.0123")
}

func TestPrintReportReachedConsensus(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	report := sampleReport("Should I buy a house?", true)
	term.PrintReport(report)

	out := buf.String()
	assert.Contains(t, out, "FINAL VERDICT")
	assert.Contains(t, out, "YES: Go ahead")
	assert.Contains(t, out, "unanimous after round 1")
	assert.Contains(t, out, "ACTION PLAN")
	assert.Contains(t, out, "1. first step")
	assert.Contains(t, out, "synthesized by GPT")
	assert.Contains(t, out, "$0.0123")
	// The errored participant contributes no key argument.
	require.Contains(t, out, "works")
	assert.NotContains(t, out, "Grok")
}

func TestPrintReportSplitDecision(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.PrintReport(sampleReport("Should I buy a house?", false))

	out := buf.String()
	assert.Contains(t, out, "SPLIT DECISION")
	assert.Contains(t, out, "YES (2) vs NO (2)")
}

func TestPrintEstimate(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.PrintEstimate(debate.CostEstimate{Min: 0.02, Max: 0.06, Participants: []string{"GPT", "Claude"}})

	out := buf.String()
	assert.Contains(t, out, "GPT, Claude")
	assert.Contains(t, out, "$0.02 - $0.06")
}
