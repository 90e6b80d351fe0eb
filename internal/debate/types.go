package debate

import (
	"time"

	"github.com/lorenzotomasdiez/quorum/internal/debate/consensus"
)

// Response is one participant's recorded output for one round. A failed
// call is recorded as an error variant: Err holds the human-readable
// failure and the response is excluded from consensus computation but kept
// in the round record.
type Response struct {
	ParticipantID    string   `json:"participant_id"`
	ParticipantName  string   `json:"participant_name"`
	Decision         string   `json:"decision,omitempty"`
	Position         string   `json:"position"`
	Confidence       int      `json:"confidence"`
	Reasoning        string   `json:"reasoning"`
	KeyArgument      string   `json:"key_argument,omitempty"`
	Risks            []string `json:"risks,omitempty"`
	Assumptions      []string `json:"assumptions,omitempty"`
	Changed          bool     `json:"changed,omitempty"`
	ResponseToOthers string   `json:"response_to_others,omitempty"`
	Cost             float64  `json:"cost"`
	InputTokens      int      `json:"input_tokens"`
	OutputTokens     int      `json:"output_tokens"`
	DurationMS       int64    `json:"duration_ms"`
	Err              string   `json:"error,omitempty"`
}

// Failed reports whether this is the error variant.
func (r *Response) Failed() bool { return r.Err != "" }

// Round is one completed cycle: every participant's response plus the
// consensus computed over the valid ones. Never mutated after creation.
type Round struct {
	Number    int               `json:"number"`
	Responses []Response        `json:"responses"`
	Consensus *consensus.Result `json:"consensus"`
}

// ParticipantUsage is one participant's cumulative token accounting.
type ParticipantUsage struct {
	Input  int `json:"input"`
	Output int `json:"output"`
	Calls  int `json:"calls"`
}

// TokenUsage tracks totals and the per-participant breakdown for a debate.
type TokenUsage struct {
	TotalInput    int                          `json:"total_input"`
	TotalOutput   int                          `json:"total_output"`
	ByParticipant map[string]*ParticipantUsage `json:"by_participant"`
}

// ActionPlan is the synthesis output: an executive summary and prioritized
// action lists derived from the final round and its consensus.
type ActionPlan struct {
	ExecutiveSummary      string   `json:"executive_summary"`
	Decision              string   `json:"decision"`
	ConfidenceScore       int      `json:"confidence_score"`
	ImmediateActions      []string `json:"immediate_actions"`
	BeforeProceeding      []string `json:"before_proceeding"`
	RiskMitigation        []string `json:"risk_mitigation"`
	SuccessIndicators     []string `json:"success_indicators"`
	TimelineSuggestion    string   `json:"timeline_suggestion"`
	DissentingViewSummary string   `json:"dissenting_view_summary"`
	SynthesizedBy         string   `json:"synthesized_by"`
}

// Report is the completed debate, handed to callers and to the history
// writer as an opaque structured record.
type Report struct {
	ID             string            `json:"id"`
	Question       string            `json:"question"`
	Context        string            `json:"context,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	Rounds         []Round           `json:"rounds"`
	FinalConsensus *consensus.Result `json:"final_consensus"`
	QuestionType   QuestionType      `json:"question_type"`
	ActionPlan     *ActionPlan       `json:"action_plan,omitempty"`
	TotalCost      float64           `json:"total_cost"`
	TokenUsage     TokenUsage        `json:"token_usage"`
	Participants   []string          `json:"participants"`
}

// EventType identifies a progress notification.
type EventType string

const (
	EventDebateStart         EventType = "debate_start"
	EventRoundStart          EventType = "round_start"
	EventParticipantStart    EventType = "participant_start"
	EventParticipantComplete EventType = "participant_complete"
	EventParticipantError    EventType = "participant_error"
	EventRoundComplete       EventType = "round_complete"
	EventSynthesisStart      EventType = "synthesis_start"
	EventSynthesisComplete   EventType = "synthesis_complete"
	EventSynthesisError      EventType = "synthesis_error"
	EventDebateComplete      EventType = "debate_complete"
)

// Event is one progress notification. Fields beyond Type and Timestamp are
// populated as relevant for the event kind. TotalCost and token totals are
// live values at emission time.
type Event struct {
	Type            EventType         `json:"type"`
	Timestamp       time.Time         `json:"timestamp"`
	Round           int               `json:"round,omitempty"`
	TotalRounds     int               `json:"total_rounds,omitempty"`
	ParticipantID   string            `json:"participant_id,omitempty"`
	ParticipantName string            `json:"participant_name,omitempty"`
	Response        *Response         `json:"response,omitempty"`
	Consensus       *consensus.Result `json:"consensus,omitempty"`
	ActionPlan      *ActionPlan       `json:"action_plan,omitempty"`
	Err             string            `json:"error,omitempty"`
	TotalCost       float64           `json:"total_cost"`
	TotalTokens     int               `json:"total_tokens"`
}

// Observer receives progress events. Invocations are serialized by the
// engine; the callback must not block for long since it runs on the round's
// control flow.
type Observer func(Event)

// CostEstimate is the pre-flight cost envelope for a full debate.
type CostEstimate struct {
	Min          float64  `json:"min"`
	Max          float64  `json:"max"`
	Participants []string `json:"participants"`
}
