package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzotomasdiez/quorum/internal/config"
)

func TestGeminiClientCall(t *testing.T) {
	var gotPath, gotQuery string
	var gotReq geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": `{"decision":"WAIT","confidence":6}`}}}},
			},
			"usageMetadata": map[string]any{"promptTokenCount": 80, "candidatesTokenCount": 20},
		})
	}))
	defer srv.Close()

	p := config.Provider{Enabled: true, Name: "Gemini", APIKey: "test-key", Endpoint: srv.URL}
	spec := config.ModelSpec{Model: "gemini-test", CostPer1KInput: 0.000075, CostPer1KOutput: 0.0003}
	c := NewGemini(p, spec, chatTestConfig())

	reply, err := c.Call(context.Background(), "Should I buy a house?")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(gotPath, "/gemini-test:generateContent"))
	assert.Equal(t, "key=test-key", gotQuery)
	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 1)
	// No system role on this API: the persona rides along in the prompt.
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "emerging trends")
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "Should I buy a house?")
	assert.Equal(t, 500, gotReq.GenerationConfig.MaxOutputTokens)

	assert.Equal(t, "gemini", c.ID())
	assert.Equal(t, "WAIT", reply.Decision)
	assert.Equal(t, 80, reply.InputTokens)
	assert.Equal(t, 20, reply.OutputTokens)
}

func TestGeminiClientEstimatesMissingUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": `{"decision":"YES"}`}}}},
			},
		})
	}))
	defer srv.Close()

	p := config.Provider{Enabled: true, Name: "Gemini", APIKey: "k", Endpoint: srv.URL}
	c := NewGemini(p, config.ModelSpec{Model: "gemini-test"}, chatTestConfig())

	reply, err := c.Call(context.Background(), "hi")
	require.NoError(t, err)
	assert.Positive(t, reply.InputTokens)
	assert.Equal(t, EstimateTokens(`{"decision":"YES"}`), reply.OutputTokens)
}

func TestGeminiClientFailsFastWhenNotConfigured(t *testing.T) {
	c := NewGemini(config.Provider{Enabled: true, Name: "Gemini"}, config.ModelSpec{}, chatTestConfig())
	_, err := c.Call(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
