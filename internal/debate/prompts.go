package debate

import (
	"fmt"
	"strings"

	"github.com/lorenzotomasdiez/quorum/internal/debate/consensus"
)

func contextSection(context string) string {
	if context == "" {
		return ""
	}
	return fmt.Sprintf("\nCONTEXT/CONSTRAINTS:\n%s\n", context)
}

// round1Guidance returns the type-specific instructions for what the
// decision field must contain, plus the schema line for it.
func round1Guidance(qt QuestionType) (guidance, format string) {
	switch qt {
	case QuestionComparison:
		return `COMPARISON QUESTION DETECTED!
For comparison questions like "Who is better: A vs B?":
- Your "decision" should be the NAME of your choice (e.g., "PELE", "MARADONA", "MESSI", "RONALDO")
- If truly equal/different strengths, use "BOTH" or "EQUAL"
- Do NOT use YES/NO for comparisons - name your pick!`,
			`"decision": "NAME OF YOUR CHOICE (e.g., the person, team, product you think is better)"`
	case QuestionPlanning:
		return `PLANNING/ITINERARY QUESTION DETECTED!
This is a planning request, NOT a yes/no question.
- Your "decision" should be a brief TITLE for your plan (e.g., "5-DAY PARIS CULTURAL IMMERSION", "WEEKEND BEACH GETAWAY")
- Your "position" should contain the FULL detailed day-by-day itinerary
- Include specific times, locations, restaurants, costs where relevant
- Do NOT use YES/NO - provide the actual plan!`,
			`"decision": "BRIEF TITLE FOR YOUR PLAN (e.g., '5-DAY PARIS ADVENTURE')"`
	case QuestionHowTo:
		return `HOW-TO QUESTION DETECTED!
This is asking for instructions/steps, NOT a yes/no question.
- Your "decision" should be a brief SUMMARY of your approach (e.g., "STEP-BY-STEP GUIDE", "3-PHASE APPROACH")
- Your "position" should contain the detailed steps/instructions
- Be specific with actionable steps
- Do NOT use YES/NO - provide the actual how-to guide!`,
			`"decision": "BRIEF APPROACH SUMMARY (e.g., '5-STEP METHOD')"`
	case QuestionFactual:
		return `FACTUAL/INFORMATIONAL QUESTION DETECTED!
This is asking for information, NOT a yes/no question.
- Your "decision" should be a brief ANSWER SUMMARY
- Your "position" should contain the detailed explanation
- Include facts, data, and sources where available
- Do NOT use YES/NO - provide the actual information!`,
			`"decision": "BRIEF ANSWER (the key fact or finding)"`
	case QuestionRecommendation:
		return `RECOMMENDATION QUESTION DETECTED!
This is asking for recommendations, NOT a yes/no question.
- Your "decision" should be your TOP RECOMMENDATION (e.g., "Watch Breaking Bad" or "Buy the Sony XM5")
- Your "position" should list your top 3-5 specific picks with reasons
- Be SPECIFIC - name exact products, movies, places, etc.
- Do NOT just say YES - give the actual recommendation!`,
			`"decision": "YOUR TOP RECOMMENDATION (specific name/title)"`
	case QuestionGeneral:
		return `GENERAL QUESTION DETECTED!
Provide a clear, direct answer to the question.
- Your "decision" should be a BRIEF ANSWER SUMMARY
- Your "position" should contain the detailed explanation
- Be specific and concrete`,
			`"decision": "BRIEF ANSWER SUMMARY"`
	default: // QuestionDecision
		return `DECISION GUIDANCE:
This is a yes/no decision question.
- For "Should I...?" questions -> Answer YES or NO with reasons
- For investment/major life decisions -> May be CONDITIONAL if real conditions exist
- Don't use CONDITIONAL just to hedge - give a real answer`,
			`"decision": "YES or NO or CONDITIONAL or WAIT or ALTERNATIVE"`
	}
}

const decisionVocabulary = `IMPORTANT: Your "decision" must be ONE of these exact values:
- "YES" - Proceed, do it, approve, accept
- "NO" - Don't do it, reject, decline, avoid
- "CONDITIONAL" - ONLY use this when there are genuine deal-breaker conditions
- "WAIT" - Not now, delay, more info critically needed
- "ALTERNATIVE" - Neither option works, suggest something different`

// round1Prompt asks for an independent structured answer with no knowledge
// of the other participants.
func round1Prompt(question, context string) string {
	qt := DetectQuestionType(question)
	guidance, format := round1Guidance(qt)

	vocabulary := ""
	if qt == QuestionDecision {
		vocabulary = decisionVocabulary + "\n\n"
	}

	return fmt.Sprintf(`You are an expert advisor participating in a multi-AI debate to help a user make a decision.

QUESTION: %s
%s
This is Round 1. Give your independent analysis without knowing what other AIs think.

CRITICAL INSTRUCTIONS:
1. Be SPECIFIC and CONCRETE in your answers - never be vague or generic
2. If the question asks for recommendations (movies, shows, products, places, etc.), ALWAYS provide specific names with brief reasons
3. If comparing options, give clear rankings with justification
4. Use numbers, statistics, and facts when available
5. Your "key_argument" should be your most compelling specific point
6. PREFER definitive answers over hedging

%s

%sRespond ONLY with valid JSON in this exact format (no markdown, no explanation outside JSON):
{
  %s,
  "position": "your clear position with SPECIFIC recommendations (name names, give specifics)",
  "confidence": 7,
  "reasoning": "detailed reasoning with SPECIFIC examples, names, facts, and numbers (2-3 paragraphs). If recommending something, list your top 3-5 specific picks with brief reasons for each.",
  "key_argument": "your single strongest SPECIFIC point (not vague)",
  "risks": ["specific risk 1", "specific risk 2"],
  "assumptions": ["specific assumption 1", "specific assumption 2"]
}`, question, contextSection(context), guidance, vocabulary, format)
}

func debateGuidance(qt QuestionType) (guidance, format string) {
	switch qt {
	case QuestionComparison:
		return `COMPARISON QUESTION - Your "decision" should be the NAME of your choice (e.g., "PELE", "MARADONA").
If you've been convinced by another AI to change your pick, update your decision to their choice.
If truly equal, use "BOTH" or "EQUAL".`,
			`"decision": "NAME OF YOUR CHOICE"`
	case QuestionPlanning:
		return `PLANNING QUESTION - Your "decision" should be a brief label like "PLAN PROVIDED" or "ITINERARY READY".
Focus on providing helpful content in your position and reasoning.`,
			`"decision": "PLAN PROVIDED or ITINERARY READY"`
	case QuestionHowTo:
		return `HOW-TO QUESTION - Your "decision" should be "GUIDE PROVIDED" or similar.
Focus on clear step-by-step instructions in your position.`,
			`"decision": "GUIDE PROVIDED"`
	case QuestionFactual:
		return `FACTUAL QUESTION - Your "decision" should be the key fact or finding.
Provide detailed information in your reasoning.`,
			`"decision": "BRIEF ANSWER (key fact)"`
	case QuestionRecommendation:
		return `RECOMMENDATION QUESTION - Your "decision" should be your TOP PICK (specific name).
Example: "Watch Breaking Bad" or "Buy the Sony WH-1000XM5"`,
			`"decision": "YOUR TOP RECOMMENDATION"`
	case QuestionDecision:
		return `YES/NO DECISION QUESTION:
- "YES" - Proceed, do it, approve, accept
- "NO" - Don't do it, reject, decline, avoid
- "CONDITIONAL" - ONLY use when there are genuine deal-breaker conditions
- "WAIT" - Not now, delay, more info critically needed
- "ALTERNATIVE" - Neither option works, suggest something different

PREFER definitive YES/NO answers over CONDITIONAL hedging.`,
			`"decision": "YES or NO (prefer these) or CONDITIONAL or WAIT or ALTERNATIVE"`
	default:
		return `Provide a clear, direct answer to the question.`,
			`"decision": "BRIEF ANSWER SUMMARY"`
	}
}

// debateRoundPrompt shows a participant its own prior stance and every other
// participant's last-round perspective, explicitly permitting revision.
func debateRoundPrompt(question, context string, round int, own *Response, others []Response) string {
	qt := DetectQuestionType(question)
	guidance, format := debateGuidance(qt)

	var sb strings.Builder
	for i, r := range others {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, `**%s** (Decision: %s, Confidence: %d/10):
Position: %s
Key Argument: %s
Reasoning: %s`, r.ParticipantName, r.Decision, r.Confidence, r.Position, r.KeyArgument, r.Reasoning)
	}

	return fmt.Sprintf(`You are an expert advisor participating in a multi-AI debate.

QUESTION: %s
%s
This is Round %d. You previously gave your position, and now you can see what other AIs think.

YOUR PREVIOUS POSITION:
Decision: %s
Position: %s
Confidence: %d/10
Key Argument: %s

OTHER AI PERSPECTIVES:
%s

Now that you've seen other perspectives, carefully consider their arguments:
- If you find another position more convincing, change your position and explain why
- If you still believe your position is correct, defend it against their arguments
- Be open to synthesis - maybe combining ideas creates a better answer
- It's a sign of good reasoning to change your mind when presented with better arguments

%s

Respond ONLY with valid JSON in this exact format (no markdown, no explanation outside JSON):
{
  %s,
  "position": "your position with SPECIFIC recommendations (may be same or changed)",
  "changed": false,
  "confidence": 8,
  "reasoning": "why you hold this position after seeing others' arguments",
  "response_to_others": "address the strongest counterargument or explain what convinced you to change",
  "key_argument": "your strongest point now"
}`, question, contextSection(context), round,
		own.Decision, own.Position, own.Confidence, own.KeyArgument,
		sb.String(), guidance, format)
}

func synthesisGuidance(qt QuestionType) (guidance, format, summaryHint string) {
	switch qt {
	case QuestionComparison:
		return `COMPARISON QUESTION - This is comparing two or more options.
1. Your "decision" should be the NAME of the winner based on consensus (e.g., "PELE", "MARADONA")
2. The executive_summary should declare the winner clearly and explain why
3. If it's a close call or tie, explain both sides fairly but still pick a winner if possible
4. Include what makes the winner stand out AND what the runner-up excels at`,
			`"decision": "NAME OF THE WINNER based on AI consensus"`,
			`Clear verdict on who/what wins with explanation. E.g., PELE - While both are legends, Pele edges out because...`
	case QuestionRecommendation:
		return `RECOMMENDATION QUESTION - Synthesize the best recommendations from all AIs.
1. Your "decision" should be the TOP PICK (specific name of product/show/place)
2. List your TOP 3-5 PICKS in the executive_summary with brief reasons
3. Combine insights from all AIs to create a ranked recommendation list
4. Be SPECIFIC - name exact items, not vague categories`,
			`"decision": "TOP RECOMMENDATION (specific name)"`,
			`TOP PICKS: 1. [Name] - reason, 2. [Name] - reason, 3. [Name] - reason. Start with your #1 recommendation.`
	case QuestionPlanning:
		return `PLANNING QUESTION - Synthesize the best plan elements from all AIs.
1. Your "decision" should be "PLAN PROVIDED"
2. The executive_summary should give a clear overview of the recommended approach
3. Combine the best ideas from each AI into a cohesive plan`,
			`"decision": "PLAN PROVIDED"`,
			`Brief overview of the recommended plan/itinerary. Key highlights and approach.`
	case QuestionHowTo:
		return `HOW-TO QUESTION - Create clear step-by-step instructions.
1. Your "decision" should be "GUIDE PROVIDED"
2. Combine the best steps from all AIs into a complete guide
3. Be specific and actionable`,
			`"decision": "GUIDE PROVIDED"`,
			`Quick overview: This guide covers [main steps]. Key tip: [most important thing to know].`
	case QuestionFactual:
		return `FACTUAL QUESTION - Provide accurate, verified information.
1. Your "decision" should be the key fact or answer
2. Cross-reference information from all AIs
3. Note any disagreements on facts`,
			`"decision": "THE KEY FACT OR ANSWER"`,
			`The answer is [direct answer]. Key supporting facts: [brief explanation].`
	case QuestionDecision:
		return `YES/NO DECISION QUESTION - Provide a clear recommendation.
1. Your "decision" should be YES, NO, CONDITIONAL, WAIT, or ALTERNATIVE
2. The executive_summary should clearly state the recommendation and key reasons
3. Address concerns raised by dissenting AIs`,
			`"decision": "YES or NO based on consensus"`,
			`Clear YES/NO recommendation with the top 2-3 reasons why.`
	default:
		return `GENERAL QUESTION - Provide a comprehensive answer.
1. Your "decision" should be a brief answer summary
2. Combine insights from all AIs
3. Be specific and actionable`,
			`"decision": "BRIEF ANSWER SUMMARY"`,
			`Direct answer to the question with specific details and recommendations.`
	}
}

// synthesisPrompt folds the final round's responses and the computed
// consensus into a request for the action-plan JSON.
func synthesisPrompt(question, context string, finalRound Round, cons *consensus.Result) string {
	qt := DetectQuestionType(question)
	guidance, format, summaryHint := synthesisGuidance(qt)

	var insights strings.Builder
	for _, r := range finalRound.Responses {
		fmt.Fprintf(&insights, `
**%s** (Decision: %s, Confidence: %d/10):
- Position: %s
- Key Argument: %s
- Reasoning: %s
`, r.ParticipantName, r.Decision, r.Confidence, r.Position, r.KeyArgument, r.Reasoning)
		if len(r.Risks) > 0 {
			fmt.Fprintf(&insights, "- Risks Identified: %s\n", strings.Join(r.Risks, "; "))
		}
		if len(r.Assumptions) > 0 {
			fmt.Fprintf(&insights, "- Assumptions: %s\n", strings.Join(r.Assumptions, "; "))
		}
	}

	consensusInfo := "NO CONSENSUS COMPUTED"
	if cons != nil {
		if cons.Reached {
			consensusInfo = fmt.Sprintf("CONSENSUS REACHED: %s - %s", cons.Type, cons.Decision)
		} else if cons.Majority != nil {
			consensusInfo = fmt.Sprintf("SPLIT DECISION: Majority says %s (%d votes)", cons.Majority.Decision, cons.Majority.Count)
		} else {
			consensusInfo = "SPLIT DECISION: no clear majority"
		}
	}

	ctxText := context
	if ctxText == "" {
		ctxText = "None provided"
	}

	return fmt.Sprintf(`You are a strategic advisor synthesizing insights from a multi-AI debate to create an actionable plan.

ORIGINAL QUESTION: %s

CONTEXT: %s

%s

AI PERSPECTIVES:
%s

%s

Based on ALL perspectives above, create a comprehensive action plan. Consider both the majority view AND the concerns raised by dissenters.

Respond ONLY with valid JSON in this exact format:
{
  "executive_summary": "%s",
  %s,
  "confidence_score": 8,
  "immediate_actions": [
    "SPECIFIC first step (name names, give details)",
    "SPECIFIC second step",
    "SPECIFIC third step"
  ],
  "before_proceeding": [
    "SPECIFIC thing to verify or consider",
    "SPECIFIC question to answer"
  ],
  "risk_mitigation": [
    "SPECIFIC risk and how to address it",
    "SPECIFIC backup plan"
  ],
  "success_indicators": [
    "SPECIFIC way you'll know this was right",
    "SPECIFIC metric or outcome"
  ],
  "timeline_suggestion": "SPECIFIC timeline with milestones",
  "dissenting_view_summary": "What the minority opinion said (be specific about their alternative suggestions)"
}`, question, ctxText, consensusInfo, insights.String(), guidance, summaryHint, format)
}
