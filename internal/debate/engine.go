// Package debate implements the multi-model debate orchestrator: it fans a
// question out to several LLM participants, runs structured argument rounds
// until they converge or the round/budget ceiling is hit, and synthesizes
// the final round into an action plan.
package debate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lorenzotomasdiez/quorum/internal/config"
	"github.com/lorenzotomasdiez/quorum/internal/debate/consensus"
	"github.com/lorenzotomasdiez/quorum/internal/llm"
)

// estimatedPromptTokens is the flat prompt size assumed by pre-flight cost
// estimates.
const estimatedPromptTokens = 500

// highTokenWarning is the total token count above which a usage warning is
// logged after a run.
const highTokenWarning = 50000

// Engine runs debates over a fixed participant set. A single Engine may run
// multiple debates sequentially; cost and token accounting reset per run.
type Engine struct {
	clients        []llm.Client
	maxRounds      int
	threshold      consensus.Threshold
	maxSessionCost float64
	costWarnAt     float64
	log            *logrus.Logger

	// OnEvent receives progress notifications. May be nil. Invocations are
	// serialized; participant completion order within a round follows I/O
	// latency and is not deterministic.
	OnEvent Observer

	mu        sync.Mutex // guards totalCost and usage
	totalCost float64
	usage     TokenUsage

	emitMu sync.Mutex

	question string
	context  string
	rounds   []Round
}

// New creates an Engine for the given participants. A nil logger gets a
// default logrus logger.
func New(clients []llm.Client, debateCfg config.DebateConfig, costCfg config.CostConfig, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		clients:        clients,
		maxRounds:      debateCfg.MaxRounds,
		threshold:      consensus.Threshold(debateCfg.Threshold),
		maxSessionCost: costCfg.MaxPerSession,
		costWarnAt:     costCfg.WarnAt,
		log:            logger,
	}
}

// EstimateCost returns the pre-flight cost envelope for a full debate:
// every participant's flat per-round estimate times the round ceiling, with
// a ±50% band. No I/O.
func (e *Engine) EstimateCost() CostEstimate {
	var total float64
	names := make([]string, len(e.clients))
	for i, c := range e.clients {
		total += c.EstimateCost(estimatedPromptTokens) * float64(e.maxRounds)
		names[i] = c.Name()
	}
	return CostEstimate{Min: total * 0.5, Max: total * 1.5, Participants: names}
}

// Run executes the full debate and returns the completed report. The
// question must be non-empty and at least one participant must be
// configured; everything past those preconditions degrades rather than
// fails, so a report is always produced.
func (e *Engine) Run(ctx context.Context, question, contextText string) (*Report, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("debate: question must not be empty")
	}
	if len(e.clients) == 0 {
		return nil, fmt.Errorf("debate: no participants configured; set an API key for at least one provider")
	}
	if len(e.clients) == 1 {
		e.log.Warnf("only 1 participant configured; meaningful debate needs at least 2 perspectives")
	}

	e.question = question
	e.context = contextText
	e.rounds = nil
	e.mu.Lock()
	e.totalCost = 0
	e.usage = TokenUsage{ByParticipant: make(map[string]*ParticipantUsage)}
	e.mu.Unlock()

	e.emit(Event{Type: EventDebateStart, TotalRounds: e.maxRounds})

	var previous []Response
	var final *consensus.Result
	for round := 1; round <= e.maxRounds; round++ {
		if round > 1 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("debate: %w", err)
			}
			cost := e.currentCost()
			if cost >= e.maxSessionCost {
				e.log.Warnf("budget limit reached ($%.2f); stopping debate", cost)
				break
			}
			if cost >= e.costWarnAt {
				e.log.Warnf("cost warning: $%.2f spent so far", cost)
			}
		}

		r := e.runRound(ctx, round, previous)
		e.rounds = append(e.rounds, r)
		previous = r.Responses
		final = r.Consensus
		if final.Reached {
			break
		}
	}

	e.emit(Event{Type: EventSynthesisStart})
	plan, err := e.runSynthesis(ctx, final)
	if err != nil {
		e.log.Warnf("synthesis failed: %v", err)
		e.emit(Event{Type: EventSynthesisError, Err: err.Error()})
		plan = nil
	} else {
		e.emit(Event{Type: EventSynthesisComplete, ActionPlan: plan})
	}

	usage := e.usageSnapshot()
	totalTokens := usage.TotalInput + usage.TotalOutput
	e.log.Infof("token summary: %d total (%d input + %d output)", totalTokens, usage.TotalInput, usage.TotalOutput)
	if totalTokens > highTokenWarning {
		e.log.Warnf("high token usage: %d tokens; consider shorter questions or context", totalTokens)
	}

	qt := DetectQuestionType(question)
	if final != nil {
		relabelDecision(final, qt)
	}

	names := make([]string, len(e.clients))
	for i, c := range e.clients {
		names[i] = c.Name()
	}

	report := &Report{
		ID:             uuid.NewString(),
		Question:       question,
		Context:        contextText,
		Timestamp:      time.Now().UTC(),
		Rounds:         e.rounds,
		FinalConsensus: final,
		QuestionType:   qt,
		ActionPlan:     plan,
		TotalCost:      e.currentCost(),
		TokenUsage:     usage,
		Participants:   names,
	}

	e.emit(Event{Type: EventDebateComplete, Consensus: final, ActionPlan: plan})
	return report, nil
}

// runRound fires all participants concurrently, joins their outcomes in
// participant order, and computes the round's consensus.
func (e *Engine) runRound(ctx context.Context, number int, previous []Response) Round {
	e.emit(Event{Type: EventRoundStart, Round: number, TotalRounds: e.maxRounds})

	prompts := make([]string, len(e.clients))
	for i, c := range e.clients {
		if number == 1 {
			prompts[i] = round1Prompt(e.question, e.context)
			continue
		}
		var own *Response
		others := make([]Response, 0, len(previous))
		for j := range previous {
			if previous[j].ParticipantID == c.ID() {
				own = &previous[j]
			} else {
				others = append(others, previous[j])
			}
		}
		if own == nil {
			own = &Response{ParticipantID: c.ID(), ParticipantName: c.Name()}
		}
		prompts[i] = debateRoundPrompt(e.question, e.context, number, own, others)
	}

	responses := make([]Response, len(e.clients))
	var wg sync.WaitGroup
	for i, c := range e.clients {
		wg.Add(1)
		go func(i int, c llm.Client) {
			defer wg.Done()
			responses[i] = e.callParticipant(ctx, c, prompts[i], number)
		}(i, c)
	}
	wg.Wait()

	result := e.checkConsensus(responses)
	round := Round{Number: number, Responses: responses, Consensus: &result}
	e.emit(Event{Type: EventRoundComplete, Round: number, Consensus: &result})
	return round
}

// callParticipant performs one adapter call and converts failures into the
// error response variant. Cost and token totals are accumulated as each
// reply arrives so observers see live figures mid-round.
func (e *Engine) callParticipant(ctx context.Context, c llm.Client, prompt string, round int) Response {
	start := time.Now()
	e.emit(Event{Type: EventParticipantStart, Round: round, ParticipantID: c.ID(), ParticipantName: c.Name()})

	reply, err := c.Call(ctx, prompt)
	if err != nil {
		e.log.WithFields(logrus.Fields{"participant": c.Name(), "round": round}).Warnf("call failed: %v", err)
		e.emit(Event{
			Type:            EventParticipantError,
			Round:           round,
			ParticipantID:   c.ID(),
			ParticipantName: c.Name(),
			Err:             err.Error(),
		})
		return Response{
			ParticipantID:   c.ID(),
			ParticipantName: c.Name(),
			Position:        "ERROR",
			Reasoning:       err.Error(),
			DurationMS:      time.Since(start).Milliseconds(),
			Err:             err.Error(),
		}
	}

	e.accumulate(c.ID(), reply)

	decision := reply.Decision
	if strings.TrimSpace(decision) == "" {
		decision = "UNKNOWN"
	}
	resp := Response{
		ParticipantID:    c.ID(),
		ParticipantName:  c.Name(),
		Decision:         decision,
		Position:         reply.Position,
		Confidence:       reply.Confidence,
		Reasoning:        reply.Reasoning,
		KeyArgument:      reply.KeyArgument,
		Risks:            reply.Risks,
		Assumptions:      reply.Assumptions,
		Changed:          reply.Changed,
		ResponseToOthers: reply.ResponseToOthers,
		Cost:             reply.Cost,
		InputTokens:      reply.InputTokens,
		OutputTokens:     reply.OutputTokens,
		DurationMS:       time.Since(start).Milliseconds(),
	}

	e.log.WithFields(logrus.Fields{"participant": c.Name(), "round": round}).
		Infof("%d input + %d output tokens ($%.4f)", reply.InputTokens, reply.OutputTokens, reply.Cost)

	e.emit(Event{
		Type:            EventParticipantComplete,
		Round:           round,
		ParticipantID:   c.ID(),
		ParticipantName: c.Name(),
		Response:        &resp,
	})
	return resp
}

// checkConsensus drops error responses and evaluates the rest.
func (e *Engine) checkConsensus(responses []Response) consensus.Result {
	votes := make([]consensus.Vote, 0, len(responses))
	for i := range responses {
		if responses[i].Failed() {
			continue
		}
		votes = append(votes, consensus.Vote{
			Voter:      responses[i].ParticipantID,
			Decision:   responses[i].Decision,
			Position:   responses[i].Position,
			Confidence: responses[i].Confidence,
		})
	}
	return consensus.Check(votes, e.threshold)
}

// planWire mirrors the synthesis JSON schema.
type planWire struct {
	ExecutiveSummary      string   `json:"executive_summary"`
	Decision              string   `json:"decision"`
	ConfidenceScore       float64  `json:"confidence_score"`
	ImmediateActions      []string `json:"immediate_actions"`
	BeforeProceeding      []string `json:"before_proceeding"`
	RiskMitigation        []string `json:"risk_mitigation"`
	SuccessIndicators     []string `json:"success_indicators"`
	TimelineSuggestion    string   `json:"timeline_suggestion"`
	DissentingViewSummary string   `json:"dissenting_view_summary"`
}

// runSynthesis makes the single post-debate call through the first
// participant. The adapter call failing is the only error path; a reply
// that doesn't parse still yields a plan with consensus-derived defaults.
func (e *Engine) runSynthesis(ctx context.Context, final *consensus.Result) (*ActionPlan, error) {
	client := e.clients[0]

	var lastRound Round
	if len(e.rounds) > 0 {
		lastRound = e.rounds[len(e.rounds)-1]
	}
	prompt := synthesisPrompt(e.question, e.context, lastRound, final)

	reply, err := client.Call(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("synthesis: %w", err)
	}
	e.accumulate(client.ID(), reply)

	var wire planWire
	if err := json.Unmarshal([]byte(llm.ExtractJSON(reply.Raw)), &wire); err != nil {
		e.log.Warnf("synthesis reply was not valid JSON; falling back to consensus defaults")
	}

	plan := &ActionPlan{
		ExecutiveSummary:      wire.ExecutiveSummary,
		Decision:              wire.Decision,
		ConfidenceScore:       int(wire.ConfidenceScore),
		ImmediateActions:      orEmpty(wire.ImmediateActions),
		BeforeProceeding:      orEmpty(wire.BeforeProceeding),
		RiskMitigation:        orEmpty(wire.RiskMitigation),
		SuccessIndicators:     orEmpty(wire.SuccessIndicators),
		TimelineSuggestion:    wire.TimelineSuggestion,
		DissentingViewSummary: wire.DissentingViewSummary,
		SynthesizedBy:         client.Name(),
	}
	if plan.Decision == "" {
		if final != nil && final.Decision != "" {
			plan.Decision = final.Decision
		} else {
			plan.Decision = "CONDITIONAL"
		}
	}
	if plan.ConfidenceScore == 0 {
		if final != nil && final.Confidence > 0 {
			plan.ConfidenceScore = final.Confidence
		} else {
			plan.ConfidenceScore = 7
		}
	}
	return plan, nil
}

// typeLabels replace generic yes/no tokens in the final decision for
// questions that are not true yes/no decisions: a comparison or planning
// question must never surface a raw "YES" to the user.
var typeLabels = map[QuestionType]string{
	QuestionPlanning:       "PLAN PROVIDED",
	QuestionHowTo:          "GUIDE PROVIDED",
	QuestionFactual:        "INFO PROVIDED",
	QuestionRecommendation: "RECOMMENDED",
	QuestionComparison:     "VERDICT",
	QuestionGeneral:        "ANSWERED",
}

var genericDecisionTokens = map[string]bool{
	"YES": true, "NO": true, "CONDITIONAL": true, "WAIT": true, "ALTERNATIVE": true, "UNKNOWN": true,
}

func relabelDecision(c *consensus.Result, qt QuestionType) {
	if qt == QuestionDecision {
		return
	}
	if genericDecisionTokens[strings.ToUpper(c.Decision)] {
		label, ok := typeLabels[qt]
		if !ok {
			label = "ANSWERED"
		}
		c.Decision = label
	}
}

func (e *Engine) accumulate(participantID string, reply *llm.Reply) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.totalCost += reply.Cost
	e.usage.TotalInput += reply.InputTokens
	e.usage.TotalOutput += reply.OutputTokens
	pu := e.usage.ByParticipant[participantID]
	if pu == nil {
		pu = &ParticipantUsage{}
		e.usage.ByParticipant[participantID] = pu
	}
	pu.Input += reply.InputTokens
	pu.Output += reply.OutputTokens
	pu.Calls++
}

func (e *Engine) currentCost() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalCost
}

func (e *Engine) usageSnapshot() TokenUsage {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := TokenUsage{
		TotalInput:    e.usage.TotalInput,
		TotalOutput:   e.usage.TotalOutput,
		ByParticipant: make(map[string]*ParticipantUsage, len(e.usage.ByParticipant)),
	}
	for id, pu := range e.usage.ByParticipant {
		c := *pu
		snap.ByParticipant[id] = &c
	}
	return snap
}

// emit delivers one progress event with live totals. Observer invocations
// are serialized since participant completions race within a round.
func (e *Engine) emit(ev Event) {
	obs := e.OnEvent
	if obs == nil {
		return
	}
	e.mu.Lock()
	ev.TotalCost = e.totalCost
	ev.TotalTokens = e.usage.TotalInput + e.usage.TotalOutput
	e.mu.Unlock()
	ev.Timestamp = time.Now()

	e.emitMu.Lock()
	defer e.emitMu.Unlock()
	obs(ev)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
