package llm

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var codeBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// ExtractJSON strips a fenced markdown code block from raw if present and
// returns the candidate JSON text.
func ExtractJSON(raw string) string {
	if m := codeBlockRe.FindStringSubmatch(raw); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

// replyWire mirrors the JSON schema the prompts ask for. Confidence is
// decoded leniently since models occasionally quote it.
type replyWire struct {
	Decision         string     `json:"decision"`
	Position         string     `json:"position"`
	Confidence       lenientInt `json:"confidence"`
	Reasoning        string     `json:"reasoning"`
	KeyArgument      string     `json:"key_argument"`
	Risks            []string   `json:"risks"`
	Assumptions      []string   `json:"assumptions"`
	Changed          bool       `json:"changed"`
	ResponseToOthers string     `json:"response_to_others"`
}

// lenientInt decodes from a JSON number or a numeric string. Anything else
// decodes to zero rather than failing the whole reply.
type lenientInt int

func (n *lenientInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = lenientInt(f)
	return nil
}

// ParseReply converts a model's text into a Reply. It tolerates fenced code
// blocks around the JSON. On parse failure it returns the degraded fallback:
// position is the first 200 characters, confidence 5, reasoning the full
// text. It never fails.
func ParseReply(raw string) *Reply {
	var wire replyWire
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &wire); err != nil {
		return &Reply{
			Position:    truncate(raw, 200),
			Confidence:  5,
			Reasoning:   raw,
			KeyArgument: "See reasoning",
			Risks:       []string{},
			Assumptions: []string{},
			Raw:         raw,
		}
	}

	r := &Reply{
		Decision:         wire.Decision,
		Position:         wire.Position,
		Confidence:       int(wire.Confidence),
		Reasoning:        wire.Reasoning,
		KeyArgument:      wire.KeyArgument,
		Risks:            wire.Risks,
		Assumptions:      wire.Assumptions,
		Changed:          wire.Changed,
		ResponseToOthers: wire.ResponseToOthers,
		Raw:              raw,
	}
	if r.Confidence == 0 {
		r.Confidence = 5
	}
	if r.Risks == nil {
		r.Risks = []string{}
	}
	if r.Assumptions == nil {
		r.Assumptions = []string{}
	}
	return r
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// EstimateTokens approximates a token count from text length at four
// characters per token. Used when a vendor omits usage metadata.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}
