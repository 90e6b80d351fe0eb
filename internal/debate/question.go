package debate

import (
	"regexp"
	"strings"
)

// QuestionType classifies the user's question and determines the vocabulary
// expected in answers. Classification happens once per debate and never
// changes afterwards.
type QuestionType string

const (
	QuestionPlanning       QuestionType = "planning"
	QuestionHowTo          QuestionType = "howto"
	QuestionComparison     QuestionType = "comparison"
	QuestionRecommendation QuestionType = "recommendation"
	QuestionDecision       QuestionType = "decision"
	QuestionFactual        QuestionType = "factual"
	QuestionGeneral        QuestionType = "general"
)

var (
	planningRes = []*regexp.Regexp{
		regexp.MustCompile(`\bplan\b.*\b(trip|visit|vacation|itinerary|schedule|tour|journey)`),
		regexp.MustCompile(`\b(create|make|build|design)\b.*\b(plan|itinerary|schedule)`),
		regexp.MustCompile(`\b(itinerary|schedule|agenda)\b.*\bfor\b`),
		regexp.MustCompile(`\b\d+\s*(day|week|hour)s?\b.*\b(trip|visit|tour|itinerary)`),
		regexp.MustCompile(`\b(trip|visit|tour)\b.*\b\d+\s*(day|week)s?\b`),
	}
	howtoRes = []*regexp.Regexp{
		regexp.MustCompile(`^how (do|can|should|would|to) `),
		regexp.MustCompile(`\bhow to\b`),
	}
	comparisonRes = []*regexp.Regexp{
		regexp.MustCompile(`\bvs\.?\b|\bversus\b`),
		regexp.MustCompile(`who is (the )?(better|greater|more|best)|which is (the )?(better|greater|more|best)`),
		regexp.MustCompile(`compare\b|comparing\b|comparison\b`),
		regexp.MustCompile(`\bor\b.*\bbetter\b|\bbetter\b.*\bor\b`),
		regexp.MustCompile(`who would win|which would you (choose|pick|prefer)`),
	}
	bestOfRes = []*regexp.Regexp{
		regexp.MustCompile(`\b(what|which)\b.*(is|are) (the )?best\b`),
		regexp.MustCompile(`\bbest\b.*(for|to use|option|choice|pick)`),
	}
	recommendationRes = []*regexp.Regexp{
		regexp.MustCompile(`what (should|would|can|could) (i|we|you)|recommend|suggestion`),
		regexp.MustCompile(`best .*(to watch|to buy|to read|to play|to visit|to try)`),
	}
	decisionRe = regexp.MustCompile(`^(should|is|are|do|does|can|could|will|would|have|has) `)
	factualRe  = regexp.MustCompile(`^(what|when|where|why|who)('s)?\s`)
	opinionRe  = regexp.MustCompile(`better|best|prefer`)
)

func matchAny(res []*regexp.Regexp, q string) bool {
	for _, re := range res {
		if re.MatchString(q) {
			return true
		}
	}
	return false
}

// questionClassifiers is the ordered cascade; the first matching predicate
// wins, so precedence is explicit rather than hidden in nested branches.
var questionClassifiers = []struct {
	qtype QuestionType
	match func(q string) bool
}{
	{QuestionPlanning, func(q string) bool { return matchAny(planningRes, q) }},
	{QuestionHowTo, func(q string) bool { return matchAny(howtoRes, q) }},
	{QuestionComparison, func(q string) bool { return matchAny(comparisonRes, q) }},
	{QuestionRecommendation, func(q string) bool { return matchAny(bestOfRes, q) }},
	{QuestionRecommendation, func(q string) bool { return matchAny(recommendationRes, q) }},
	{QuestionDecision, func(q string) bool { return decisionRe.MatchString(q) }},
	{QuestionFactual, func(q string) bool { return factualRe.MatchString(q) && !opinionRe.MatchString(q) }},
}

// DetectQuestionType classifies a question. Deterministic and total: every
// string maps to exactly one type, falling back to general. The same
// function steers prompt guidance and the final report's decision label, so
// the two can never drift apart.
func DetectQuestionType(question string) QuestionType {
	q := strings.ToLower(question)
	for _, c := range questionClassifiers {
		if c.match(q) {
			return c.qtype
		}
	}
	return QuestionGeneral
}
