package debate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectQuestionType(t *testing.T) {
	cases := []struct {
		question string
		want     QuestionType
	}{
		{"Should I buy a house?", QuestionDecision},
		{"Is it time to switch jobs?", QuestionDecision},
		{"Can we ship this feature on Friday?", QuestionDecision},

		{"Plan a 3-day trip to Rome", QuestionPlanning},
		{"Create a workout schedule for beginners", QuestionPlanning},

		{"How do I deploy a server?", QuestionHowTo},
		{"Explain how to make sourdough bread", QuestionHowTo},

		{"React vs Vue?", QuestionComparison},
		{"Who is better: Pele or Maradona? Compare them", QuestionComparison},
		{"Which would you choose, Paris or Rome?", QuestionComparison},

		{"What should I watch tonight?", QuestionRecommendation},
		{"What are the best tools for Go development?", QuestionRecommendation},
		{"Which is the best laptop for coding?", QuestionComparison},

		{"What's the capital of France?", QuestionFactual},
		{"When did the Berlin Wall fall?", QuestionFactual},

		{"Tell me about quantum computing", QuestionGeneral},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectQuestionType(tc.question), "question %q", tc.question)
	}
}

func TestDetectQuestionTypePrecedence(t *testing.T) {
	// Planning outranks the decision prefix: a "should" question about an
	// itinerary still gets the planning treatment.
	assert.Equal(t, QuestionPlanning, DetectQuestionType("Should I make an itinerary for my trip?"))

	// Opinion words keep a what-question out of the factual bucket.
	assert.NotEqual(t, QuestionFactual, DetectQuestionType("What is the best country to live in?"))
}
