package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Provider identifiers. These are the stable participant keys used across
// configuration, prompts, and reports.
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderGrok      = "grok"
	ProviderAnthropic = "claude"
)

// ModelSpec is one provider's model choice and pricing within a tier.
type ModelSpec struct {
	Model           string  `mapstructure:"model"`
	CostPer1KInput  float64 `mapstructure:"cost_per_1k_input"`
	CostPer1KOutput float64 `mapstructure:"cost_per_1k_output"`
}

// Tier groups per-provider model specs under a pricing tier.
type Tier struct {
	Name        string
	Description string
	Models      map[string]ModelSpec
}

// Tiers holds the built-in pricing tiers. A tier maps each provider to the
// model id used for its calls and the per-1k-token prices used for cost
// accounting.
var Tiers = map[string]Tier{
	"budget": {
		Name:        "Budget",
		Description: "Fast & affordable for testing",
		Models: map[string]ModelSpec{
			ProviderOpenAI:    {Model: "gpt-4o-mini", CostPer1KInput: 0.00015, CostPer1KOutput: 0.0006},
			ProviderGemini:    {Model: "gemini-2.0-flash", CostPer1KInput: 0.000075, CostPer1KOutput: 0.0003},
			ProviderGrok:      {Model: "grok-3-mini-fast", CostPer1KInput: 0.0003, CostPer1KOutput: 0.0005},
			ProviderAnthropic: {Model: "claude-3-5-haiku-20241022", CostPer1KInput: 0.0008, CostPer1KOutput: 0.004},
		},
	},
	"premium": {
		Name:        "Premium",
		Description: "Best reasoning & accuracy",
		Models: map[string]ModelSpec{
			ProviderOpenAI:    {Model: "gpt-4.1", CostPer1KInput: 0.002, CostPer1KOutput: 0.008},
			ProviderGemini:    {Model: "gemini-2.5-pro-preview-06-05", CostPer1KInput: 0.00125, CostPer1KOutput: 0.01},
			ProviderGrok:      {Model: "grok-3", CostPer1KInput: 0.003, CostPer1KOutput: 0.015},
			ProviderAnthropic: {Model: "claude-opus-4-20250514", CostPer1KInput: 0.015, CostPer1KOutput: 0.075},
		},
	},
}

// Provider is one backend's connection settings.
type Provider struct {
	Enabled  bool   `mapstructure:"enabled"`
	Name     string `mapstructure:"name"`
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
}

// DebateConfig controls the round loop.
type DebateConfig struct {
	// MaxRounds is the round ceiling before synthesis runs regardless.
	MaxRounds int `mapstructure:"max_rounds"`
	// Threshold is the consensus policy: unanimous, supermajority, or majority.
	Threshold string `mapstructure:"threshold"`
	// MaxTokens caps each participant's response length.
	MaxTokens int `mapstructure:"max_tokens"`
	// Temperature is passed to providers that accept one.
	Temperature float64 `mapstructure:"temperature"`
}

// CostConfig controls the per-session budget guard.
type CostConfig struct {
	// MaxPerSession is the soft cost ceiling in USD, checked between rounds.
	MaxPerSession float64 `mapstructure:"max_per_session"`
	// WarnAt triggers an informational warning, never a stop.
	WarnAt float64 `mapstructure:"warn_at"`
}

// OutputConfig controls report persistence.
type OutputConfig struct {
	Dir          string `mapstructure:"dir"`
	SaveJSON     bool   `mapstructure:"save_json"`
	SaveMarkdown bool   `mapstructure:"save_markdown"`
}

// Config is the complete quorum configuration.
type Config struct {
	Tier      string              `mapstructure:"tier"`
	Debate    DebateConfig        `mapstructure:"debate"`
	Costs     CostConfig          `mapstructure:"costs"`
	Output    OutputConfig        `mapstructure:"output"`
	Providers map[string]Provider `mapstructure:"providers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tier", "budget")
	v.SetDefault("debate.max_rounds", 3)
	v.SetDefault("debate.threshold", "unanimous")
	v.SetDefault("debate.max_tokens", 1000)
	v.SetDefault("debate.temperature", 0.7)
	v.SetDefault("costs.max_per_session", 5.00)
	v.SetDefault("costs.warn_at", 2.00)
	v.SetDefault("output.dir", "decisions")
	v.SetDefault("output.save_json", true)
	v.SetDefault("output.save_markdown", true)

	v.SetDefault("providers.openai.enabled", true)
	v.SetDefault("providers.openai.name", "GPT")
	v.SetDefault("providers.openai.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("providers.gemini.enabled", true)
	v.SetDefault("providers.gemini.name", "Gemini")
	v.SetDefault("providers.gemini.endpoint", "https://generativelanguage.googleapis.com/v1beta/models")
	v.SetDefault("providers.grok.enabled", true)
	v.SetDefault("providers.grok.name", "Grok")
	v.SetDefault("providers.grok.endpoint", "https://api.x.ai/v1/chat/completions")
	v.SetDefault("providers.claude.enabled", true)
	v.SetDefault("providers.claude.name", "Claude")
	v.SetDefault("providers.claude.endpoint", "https://api.anthropic.com/v1/messages")
}

// keyEnvVars maps each provider to the environment variables its API key is
// read from, in priority order.
var keyEnvVars = map[string][]string{
	ProviderOpenAI:    {"OPENAI_API_KEY"},
	ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_AI_API_KEY"},
	ProviderGrok:      {"XAI_API_KEY"},
	ProviderAnthropic: {"ANTHROPIC_API_KEY"},
}

// Load reads configuration from defaults, an optional quorum.yaml in the
// working directory or $HOME/.config/quorum, and QUORUM_* environment
// variables. Provider API keys come from their canonical environment
// variables (OPENAI_API_KEY etc.) unless set explicitly in the file.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("quorum")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "quorum"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("QUORUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	for id, envs := range keyEnvVars {
		p := cfg.Providers[id]
		if p.APIKey == "" {
			for _, env := range envs {
				if val := strings.TrimSpace(os.Getenv(env)); val != "" {
					p.APIKey = val
					break
				}
			}
			cfg.Providers[id] = p
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that would otherwise fail deep inside a debate.
func (c *Config) Validate() error {
	if _, ok := Tiers[c.Tier]; !ok {
		return fmt.Errorf("config: unknown tier %q", c.Tier)
	}
	switch c.Debate.Threshold {
	case "unanimous", "supermajority", "majority":
	default:
		return fmt.Errorf("config: invalid threshold %q (want unanimous, supermajority, or majority)", c.Debate.Threshold)
	}
	if c.Debate.MaxRounds < 1 {
		return fmt.Errorf("config: max_rounds must be >= 1, got %d", c.Debate.MaxRounds)
	}
	if c.Debate.MaxTokens < 1 {
		return fmt.Errorf("config: max_tokens must be >= 1, got %d", c.Debate.MaxTokens)
	}
	if c.Costs.WarnAt > c.Costs.MaxPerSession {
		return fmt.Errorf("config: warn_at (%.2f) must be <= max_per_session (%.2f)", c.Costs.WarnAt, c.Costs.MaxPerSession)
	}
	return nil
}

// ModelFor returns the active tier's model spec for a provider.
func (c *Config) ModelFor(providerID string) (ModelSpec, error) {
	spec, ok := Tiers[c.Tier].Models[providerID]
	if !ok {
		return ModelSpec{}, fmt.Errorf("config: tier %q has no model for provider %q", c.Tier, providerID)
	}
	return spec, nil
}
