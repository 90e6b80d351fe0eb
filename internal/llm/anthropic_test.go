package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzotomasdiez/quorum/internal/config"
)

func TestAnthropicClientCall(t *testing.T) {
	var gotReq anthropicRequest
	var gotKey, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": `{"decision":"NO","position":"Rent","confidence":7}`}},
			"usage":   map[string]any{"input_tokens": 90, "output_tokens": 30},
		})
	}))
	defer srv.Close()

	p := config.Provider{Enabled: true, Name: "Claude", APIKey: "test-key", Endpoint: srv.URL}
	spec := config.ModelSpec{Model: "claude-test", CostPer1KInput: 0.0008, CostPer1KOutput: 0.004}
	c := NewAnthropic(p, spec, chatTestConfig())

	reply, err := c.Call(context.Background(), "Should I buy a house?")
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, anthropicVersion, gotVersion)
	assert.Equal(t, "claude-test", gotReq.Model)
	assert.Contains(t, gotReq.System, "risks and unintended consequences")
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)

	assert.Equal(t, "claude", c.ID())
	assert.Equal(t, "NO", reply.Decision)
	assert.Equal(t, 90, reply.InputTokens)
	assert.Equal(t, 30, reply.OutputTokens)
	assert.InDelta(t, 90.0/1000*0.0008+30.0/1000*0.004, reply.Cost, 1e-12)
}

func TestAnthropicClientFailsFastWhenNotConfigured(t *testing.T) {
	c := NewAnthropic(config.Provider{Enabled: true, Name: "Claude"}, config.ModelSpec{}, chatTestConfig())
	_, err := c.Call(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAnthropicClientEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	}))
	defer srv.Close()

	p := config.Provider{Enabled: true, Name: "Claude", APIKey: "k", Endpoint: srv.URL}
	c := NewAnthropic(p, config.ModelSpec{Model: "claude-test"}, chatTestConfig())

	_, err := c.Call(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}
