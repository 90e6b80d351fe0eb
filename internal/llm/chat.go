package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lorenzotomasdiez/quorum/internal/config"
)

// ChatClient is an adapter for OpenAI-compatible chat-completions APIs.
// Both the OpenAI and xAI backends speak this wire shape.
type ChatClient struct {
	id          string
	provider    config.Provider
	spec        config.ModelSpec
	maxTokens   int
	temperature float64
	tr          *transport
}

// NewOpenAI creates the OpenAI participant adapter.
func NewOpenAI(p config.Provider, spec config.ModelSpec, d config.DebateConfig) *ChatClient {
	return &ChatClient{id: config.ProviderOpenAI, provider: p, spec: spec, maxTokens: d.MaxTokens, temperature: d.Temperature, tr: newTransport()}
}

// NewGrok creates the xAI participant adapter.
func NewGrok(p config.Provider, spec config.ModelSpec, d config.DebateConfig) *ChatClient {
	return &ChatClient{id: config.ProviderGrok, provider: p, spec: spec, maxTokens: d.MaxTokens, temperature: d.Temperature, tr: newTransport()}
}

// ID implements Client.
func (c *ChatClient) ID() string { return c.id }

// Name implements Client.
func (c *ChatClient) Name() string { return c.provider.Name }

// Configured implements Client.
func (c *ChatClient) Configured() bool {
	return c.provider.Enabled && c.provider.APIKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Call implements Client.
func (c *ChatClient) Call(ctx context.Context, prompt string) (*Reply, error) {
	if !c.provider.Enabled {
		return nil, notConfiguredError(c.provider.Name, "is disabled")
	}
	if c.provider.APIKey == "" {
		return nil, notConfiguredError(c.provider.Name, "API key not set")
	}

	req := chatRequest{
		Model: c.spec.Model,
		Messages: []chatMessage{
			{Role: "system", Content: Persona(c.id)},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.provider.APIKey}

	body, err := c.tr.postJSON(ctx, c.provider.Endpoint, headers, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.provider.Name, err)
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", c.provider.Name, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%s: %s", c.provider.Name, resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: empty response", c.provider.Name)
	}

	content := resp.Choices[0].Message.Content
	inTokens := resp.Usage.PromptTokens
	outTokens := resp.Usage.CompletionTokens
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
func (c *ChatClient) EstimateCost(promptTokens int) float64 {
	return tokenCost(c.spec, promptTokens, c.maxTokens)
}

func tokenCost(spec config.ModelSpec, inTokens, outTokens int) float64 {
	return float64(inTokens)/1000*spec.CostPer1KInput + float64(outTokens)/1000*spec.CostPer1KOutput
}
