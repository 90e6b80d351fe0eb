// Package llm provides the model adapter contract and one adapter per
// supported backend (OpenAI, Anthropic, Gemini, xAI). Each adapter hides its
// vendor's wire shape behind the Client interface and normalizes replies
// into the structured Reply used by the debate engine.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by Call before any network I/O when the
// adapter has no API key or is disabled.
var ErrNotConfigured = errors.New("llm: provider not configured")

// Client is one debate participant's backend.
type Client interface {
	// ID is the stable participant key (e.g. "openai").
	ID() string
	// Name is the display name (e.g. "GPT").
	Name() string
	// Configured reports whether the adapter has a usable credential.
	Configured() bool
	// Call sends a prompt and returns the parsed reply. It fails fast with
	// ErrNotConfigured when the provider is unusable.
	Call(ctx context.Context, prompt string) (*Reply, error)
	// EstimateCost returns the cost of one call assuming the configured
	// max response tokens as output size. Pure, no I/O.
	EstimateCost(promptTokens int) float64
}

// Reply is a participant's parsed output for a single call, plus transport
// metadata. When the model's text is not valid JSON the structured fields
// hold the degraded fallback and Raw still carries the full text.
type Reply struct {
	Decision         string   `json:"decision"`
	Position         string   `json:"position"`
	Confidence       int      `json:"confidence"`
	Reasoning        string   `json:"reasoning"`
	KeyArgument      string   `json:"key_argument"`
	Risks            []string `json:"risks"`
	Assumptions      []string `json:"assumptions"`
	Changed          bool     `json:"changed"`
	ResponseToOthers string   `json:"response_to_others"`

	// Raw is the model's full text, before any JSON extraction.
	Raw string `json:"-"`
	// Model is the vendor model id that produced the reply.
	Model string `json:"-"`
	// InputTokens and OutputTokens come from vendor usage metadata, or a
	// length/4 estimate when the vendor omits usage.
	InputTokens  int `json:"-"`
	OutputTokens int `json:"-"`
	// Cost is the monetary cost of the call in USD.
	Cost float64 `json:"-"`
}

func notConfiguredError(name, reason string) error {
	return fmt.Errorf("%s %s: %w", name, reason, ErrNotConfigured)
}
