package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lorenzotomasdiez/quorum/internal/config"
)

// GeminiClient is the adapter for the Google generative language API.
// The API has no separate system role here, so the persona is folded into
// the prompt text, and usage metadata is not guaranteed.
type GeminiClient struct {
	provider    config.Provider
	spec        config.ModelSpec
	maxTokens   int
	temperature float64
	tr          *transport
}

// NewGemini creates the Gemini participant adapter.
func NewGemini(p config.Provider, spec config.ModelSpec, d config.DebateConfig) *GeminiClient {
	return &GeminiClient{provider: p, spec: spec, maxTokens: d.MaxTokens, temperature: d.Temperature, tr: newTransport()}
}

// ID implements Client.
func (c *GeminiClient) ID() string { return config.ProviderGemini }

// Name implements Client.
func (c *GeminiClient) Name() string { return c.provider.Name }

// Configured implements Client.
func (c *GeminiClient) Configured() bool {
	return c.provider.Enabled && c.provider.APIKey != ""
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		MaxOutputTokens int     `json:"maxOutputTokens"`
		Temperature     float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

// Call implements Client.
func (c *GeminiClient) Call(ctx context.Context, prompt string) (*Reply, error) {
	if !c.provider.Enabled {
		return nil, notConfiguredError(c.provider.Name, "is disabled")
	}
	if c.provider.APIKey == "" {
		return nil, notConfiguredError(c.provider.Name, "API key not set")
	}

	fullPrompt := Persona(config.ProviderGemini) + "\n\n" + prompt
	var req geminiRequest
	req.Contents = []geminiContent{{Parts: []geminiPart{{Text: fullPrompt}}}}
	req.GenerationConfig.MaxOutputTokens = c.maxTokens
	req.GenerationConfig.Temperature = c.temperature

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.provider.Endpoint, c.spec.Model, c.provider.APIKey)
	body, err := c.tr.postJSON(ctx, url, nil, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.provider.Name, err)
	}

	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", c.provider.Name, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%s: %s", c.provider.Name, resp.Error.Message)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%s: empty response", c.provider.Name)
	}

	content := resp.Candidates[0].Content.Parts[0].Text
	inTokens := resp.UsageMetadata.PromptTokenCount
	if inTokens == 0 {
		inTokens = EstimateTokens(fullPrompt)
	}
	outTokens := resp.UsageMetadata.CandidatesTokenCount
	if outTokens == 0 {
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
func (c *GeminiClient) EstimateCost(promptTokens int) float64 {
	return tokenCost(c.spec, promptTokens, c.maxTokens)
}
