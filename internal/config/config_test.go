package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, envs := range keyEnvVars {
		for _, env := range envs {
			t.Setenv(env, "")
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "budget", cfg.Tier)
	assert.Equal(t, 3, cfg.Debate.MaxRounds)
	assert.Equal(t, "unanimous", cfg.Debate.Threshold)
	assert.Equal(t, 1000, cfg.Debate.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Debate.Temperature, 1e-9)
	assert.InDelta(t, 5.00, cfg.Costs.MaxPerSession, 1e-9)
	assert.InDelta(t, 2.00, cfg.Costs.WarnAt, 1e-9)
	assert.Equal(t, "decisions", cfg.Output.Dir)
	assert.True(t, cfg.Output.SaveJSON)
	assert.True(t, cfg.Output.SaveMarkdown)

	require.Contains(t, cfg.Providers, ProviderOpenAI)
	openai := cfg.Providers[ProviderOpenAI]
	assert.True(t, openai.Enabled)
	assert.Equal(t, "GPT", openai.Name)
	assert.Equal(t, "env-key", openai.APIKey)
	assert.NotEmpty(t, openai.Endpoint)

	assert.Empty(t, cfg.Providers[ProviderAnthropic].APIKey)
}

func TestLoadGeminiKeyFallsBackToGoogleEnv(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GOOGLE_AI_API_KEY", "google-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "google-key", cfg.Providers[ProviderGemini].APIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("QUORUM_TIER", "premium")
	t.Setenv("QUORUM_DEBATE_MAX_ROUNDS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "premium", cfg.Tier)
	assert.Equal(t, 5, cfg.Debate.MaxRounds)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Tier:   "budget",
			Debate: DebateConfig{MaxRounds: 3, Threshold: "unanimous", MaxTokens: 1000},
			Costs:  CostConfig{MaxPerSession: 5, WarnAt: 2},
		}
	}

	require.NoError(t, base().Validate())

	cfg := base()
	cfg.Tier = "luxury"
	assert.ErrorContains(t, cfg.Validate(), "unknown tier")

	cfg = base()
	cfg.Debate.Threshold = "plurality"
	assert.ErrorContains(t, cfg.Validate(), "invalid threshold")

	cfg = base()
	cfg.Debate.MaxRounds = 0
	assert.ErrorContains(t, cfg.Validate(), "max_rounds")

	cfg = base()
	cfg.Costs.WarnAt = 10
	assert.ErrorContains(t, cfg.Validate(), "warn_at")
}

func TestModelFor(t *testing.T) {
	cfg := &Config{Tier: "budget"}
	spec, err := cfg.ModelFor(ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", spec.Model)

	cfg.Tier = "premium"
	spec, err = cfg.ModelFor(ProviderAnthropic)
	require.NoError(t, err)
	assert.Equal(t, "claude-opus-4-20250514", spec.Model)

	_, err = cfg.ModelFor("mistral")
	assert.Error(t, err)
}

func TestTiersCoverAllProviders(t *testing.T) {
	providers := []string{ProviderOpenAI, ProviderGemini, ProviderGrok, ProviderAnthropic}
	for name, tier := range Tiers {
		for _, id := range providers {
			spec, ok := tier.Models[id]
			require.True(t, ok, "tier %s missing provider %s", name, id)
			assert.NotEmpty(t, spec.Model)
			assert.Positive(t, spec.CostPer1KInput, "tier %s provider %s", name, id)
			assert.Positive(t, spec.CostPer1KOutput, "tier %s provider %s", name, id)
		}
	}
}
