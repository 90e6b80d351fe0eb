package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	plain := `{"decision": "YES"}`
	assert.Equal(t, plain, ExtractJSON(plain))
	assert.Equal(t, plain, ExtractJSON("  "+plain+"\n"))
	assert.Equal(t, plain, ExtractJSON("```json\n"+plain+"\n```"))
	assert.Equal(t, plain, ExtractJSON("```\n"+plain+"\n```"))
	assert.Equal(t, plain, ExtractJSON("Here you go:\n```json\n"+plain+"\n```\nHope that helps!"))
}

func TestParseReplyStructured(t *testing.T) {
	raw := "```json\n" + `{
		"decision": "YES",
		"position": "Buy the house",
		"confidence": 8,
		"reasoning": "Rates are favorable",
		"key_argument": "Equity beats rent",
		"risks": ["rate hike"],
		"assumptions": ["stable income"],
		"changed": true,
		"response_to_others": "Claude's point about timing is fair"
	}` + "\n```"

	r := ParseReply(raw)
	assert.Equal(t, "YES", r.Decision)
	assert.Equal(t, "Buy the house", r.Position)
	assert.Equal(t, 8, r.Confidence)
	assert.Equal(t, []string{"rate hike"}, r.Risks)
	assert.True(t, r.Changed)
	assert.Equal(t, raw, r.Raw)
}

func TestParseReplyDegradedFallback(t *testing.T) {
	raw := strings.Repeat("The answer is definitely yes because ", 10)
	r := ParseReply(raw)

	assert.Equal(t, raw[:200], r.Position)
	assert.Equal(t, 5, r.Confidence)
	assert.Equal(t, raw, r.Reasoning)
	assert.Equal(t, "See reasoning", r.KeyArgument)
	assert.Empty(t, r.Decision)
	require.NotNil(t, r.Risks)
	require.NotNil(t, r.Assumptions)
	assert.Equal(t, raw, r.Raw)
}

func TestParseReplyQuotedConfidence(t *testing.T) {
	r := ParseReply(`{"decision": "NO", "confidence": "7"}`)
	assert.Equal(t, 7, r.Confidence)
}

func TestParseReplyConfidenceDefaults(t *testing.T) {
	// Absent, zero, and junk confidences all land on the neutral midpoint.
	assert.Equal(t, 5, ParseReply(`{"decision": "NO"}`).Confidence)
	assert.Equal(t, 5, ParseReply(`{"decision": "NO", "confidence": 0}`).Confidence)
	assert.Equal(t, 5, ParseReply(`{"decision": "NO", "confidence": "high"}`).Confidence)
}

func TestParseReplyNilSlicesBecomeEmpty(t *testing.T) {
	r := ParseReply(`{"decision": "YES"}`)
	assert.NotNil(t, r.Risks)
	assert.NotNil(t, r.Assumptions)
	assert.Empty(t, r.Risks)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("x", 100)))
}
