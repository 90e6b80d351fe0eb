package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKeywordCascade(t *testing.T) {
	cases := map[string]string{
		"yes":                  "YES",
		"I'd say YES, proceed": "YES",
		"Proceed with caution": "YES",
		"APPROVE":              "YES",
		"no way":               "NO",
		"Reject the offer":     "NO",
		"conditional":          "CONDITIONAL",
		"depends on budget":    "CONDITIONAL",
		"wait":                 "WAIT",
		"need more info":       "WAIT",
		"alternative":          "ALTERNATIVE",
		"neither option":       "ALTERNATIVE",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestNormalizePassThrough(t *testing.T) {
	// Non-keyword decisions group by their literal uppercased text, which is
	// how comparison questions converge on a winner's name.
	assert.Equal(t, "PELE", Normalize("Pele"))
	assert.Equal(t, "PELE", Normalize("  pele  "))
	assert.Equal(t, "GUIDE PROVIDED", Normalize("Guide Provided"))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "UNKNOWN", Normalize(""))
	assert.Equal(t, "UNKNOWN", Normalize("   "))
}

func TestNormalizeCanonicalLabelsAreStable(t *testing.T) {
	for _, label := range []string{"YES", "NO", "CONDITIONAL", "WAIT", "ALTERNATIVE"} {
		assert.Equal(t, label, Normalize(label))
	}
}

func TestCheckInsufficientVotes(t *testing.T) {
	result := Check(nil, Unanimous)
	assert.False(t, result.Reached)
	assert.Equal(t, TypeInsufficient, result.Type)

	result = Check([]Vote{{Voter: "openai", Decision: "YES"}}, Unanimous)
	assert.False(t, result.Reached)
	assert.Equal(t, TypeInsufficient, result.Type)
}

func TestCheckUnanimous(t *testing.T) {
	votes := []Vote{
		{Voter: "openai", Decision: "yes", Position: "Go ahead", Confidence: 8},
		{Voter: "gemini", Decision: "Proceed", Position: "Do it", Confidence: 7},
		{Voter: "claude", Decision: "YES", Position: "Agreed", Confidence: 9},
	}
	result := Check(votes, Unanimous)
	require.True(t, result.Reached)
	assert.Equal(t, TypeUnanimous, result.Type)
	assert.Equal(t, "YES", result.Decision)
	assert.Equal(t, "Go ahead", result.Position)
	assert.Equal(t, 8, result.Confidence)
	require.Len(t, result.Groups, 1)
	assert.ElementsMatch(t, []string{"openai", "gemini", "claude"}, result.Groups[0].Voters)
}

func TestCheckUnanimityWinsUnderAnyThreshold(t *testing.T) {
	votes := []Vote{
		{Voter: "a", Decision: "NO", Confidence: 6},
		{Voter: "b", Decision: "NO", Confidence: 6},
	}
	for _, th := range []Threshold{Unanimous, Supermajority, Majority} {
		result := Check(votes, th)
		assert.True(t, result.Reached, "threshold %s", th)
		assert.Equal(t, TypeUnanimous, result.Type)
	}
}

func TestCheckSupermajority(t *testing.T) {
	votes := []Vote{
		{Voter: "a", Decision: "YES", Confidence: 8},
		{Voter: "b", Decision: "YES", Confidence: 7},
		{Voter: "c", Decision: "YES", Confidence: 6},
		{Voter: "d", Decision: "NO", Confidence: 9},
	}
	result := Check(votes, Supermajority)
	require.True(t, result.Reached)
	assert.Equal(t, TypeSupermajority, result.Type)
	assert.Equal(t, "YES", result.Decision)

	// The same 3-1 split is not enough under a unanimous policy.
	strict := Check(votes, Unanimous)
	assert.False(t, strict.Reached)
	assert.Equal(t, TypeSplit, strict.Type)
	require.NotNil(t, strict.Majority)
	assert.Equal(t, "YES", strict.Majority.Decision)
	assert.Equal(t, 3, strict.Majority.Count)
}

func TestCheckMajority(t *testing.T) {
	votes := []Vote{
		{Voter: "a", Decision: "YES", Confidence: 8},
		{Voter: "b", Decision: "YES", Confidence: 6},
		{Voter: "c", Decision: "YES", Confidence: 7},
		{Voter: "d", Decision: "NO", Confidence: 9},
	}
	result := Check(votes, Majority)
	require.True(t, result.Reached)
	assert.Equal(t, TypeMajority, result.Type)
	assert.Equal(t, "YES", result.Decision)
	assert.Equal(t, 3, result.Groups[0].Count)

	// A bare 2-1 majority also clears the >half bar.
	result = Check(votes[1:], Majority)
	require.True(t, result.Reached)
	assert.Equal(t, TypeMajority, result.Type)
}

func TestCheckEvenSplit(t *testing.T) {
	votes := []Vote{
		{Voter: "a", Decision: "YES", Position: "Do it", Confidence: 8},
		{Voter: "b", Decision: "YES", Confidence: 7},
		{Voter: "c", Decision: "NO", Confidence: 9},
		{Voter: "d", Decision: "NO", Confidence: 6},
	}
	for _, th := range []Threshold{Unanimous, Supermajority, Majority} {
		result := Check(votes, th)
		assert.False(t, result.Reached, "threshold %s", th)
		assert.Equal(t, TypeSplit, result.Type)
		require.Len(t, result.Groups, 2)
		assert.Equal(t, 2, result.Groups[0].Count)
		assert.Equal(t, 2, result.Groups[1].Count)
		// First-seen order breaks the tie.
		require.NotNil(t, result.Majority)
		assert.Equal(t, "YES", result.Majority.Decision)
		assert.Equal(t, "Do it", result.Majority.Position)
	}
}

func TestAverageConfidence(t *testing.T) {
	votes := []Vote{{Confidence: 7}, {Confidence: 8}}
	assert.Equal(t, 8, averageConfidence(votes)) // 7.5 rounds up

	votes = []Vote{{Confidence: 7}, {Confidence: 7}, {Confidence: 8}}
	assert.Equal(t, 7, averageConfidence(votes))

	// Zero confidences are excluded, not averaged in.
	votes = []Vote{{Confidence: 9}, {Confidence: 0}}
	assert.Equal(t, 9, averageConfidence(votes))

	assert.Equal(t, 5, averageConfidence([]Vote{{Confidence: 0}}))
}
