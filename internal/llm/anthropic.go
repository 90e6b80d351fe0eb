package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lorenzotomasdiez/quorum/internal/config"
)

const anthropicVersion = "2023-06-01"

// AnthropicClient is the adapter for the Anthropic messages API.
type AnthropicClient struct {
	provider  config.Provider
	spec      config.ModelSpec
	maxTokens int
	tr        *transport
}

// NewAnthropic creates the Anthropic participant adapter.
func NewAnthropic(p config.Provider, spec config.ModelSpec, d config.DebateConfig) *AnthropicClient {
	return &AnthropicClient{provider: p, spec: spec, maxTokens: d.MaxTokens, tr: newTransport()}
}

// ID implements Client.
func (c *AnthropicClient) ID() string { return config.ProviderAnthropic }

// Name implements Client.
func (c *AnthropicClient) Name() string { return c.provider.Name }

// Configured implements Client.
func (c *AnthropicClient) Configured() bool {
	return c.provider.Enabled && c.provider.APIKey != ""
}

type anthropicRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system"`
	Messages  []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Call implements Client.
func (c *AnthropicClient) Call(ctx context.Context, prompt string) (*Reply, error) {
	if !c.provider.Enabled {
		return nil, notConfiguredError(c.provider.Name, "is disabled")
	}
	if c.provider.APIKey == "" {
		return nil, notConfiguredError(c.provider.Name, "API key not set")
	}

	req := anthropicRequest{
		Model:     c.spec.Model,
		MaxTokens: c.maxTokens,
		System:    Persona(config.ProviderAnthropic),
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{
		"x-api-key":         c.provider.APIKey,
		"anthropic-version": anthropicVersion,
	}

	body, err := c.tr.postJSON(ctx, c.provider.Endpoint, headers, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.provider.Name, err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", c.provider.Name, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%s: %s", c.provider.Name, resp.Error.Message)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("%s: empty response", c.provider.Name)
	}

	content := resp.Content[0].Text
	inTokens := resp.Usage.InputTokens
	outTokens := resp.Usage.OutputTokens
	if inTokens == 0 && outTokens == 0 {
		inTokens = EstimateTokens(prompt)
		outTokens = EstimateTokens(content)
	}

	reply := ParseReply(content)
	reply.Model = c.spec.Model
	reply.InputTokens = inTokens
	reply.OutputTokens = outTokens
	reply.Cost = tokenCost(c.spec, inTokens, outTokens)
	return reply, nil
}

// EstimateCost implements Client.
func (c *AnthropicClient) EstimateCost(promptTokens int) float64 {
	return tokenCost(c.spec, promptTokens, c.maxTokens)
}
