package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects a provider and carries the settings for each of them.
// Only the block for Provider is consulted.
type Config struct {
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// ProviderConfig is the per-provider credential and model choice.
// BaseURL is only honored by the OpenAI compatible providers.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// block returns the settings for the named provider.
func (c *Config) block(provider string) *ProviderConfig {
	switch provider {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// envName is the FLASHDECK_<PROVIDER>_<FIELD> variable for a setting.
func envName(provider, field string) string {
	return fmt.Sprintf("FLASHDECK_%s_%s", strings.ToUpper(provider), field)
}

// ConfigFromEnv reads FLASHDECK_LLM_PROVIDER and the per-provider
// FLASHDECK_<PROVIDER>_API_KEY, _MODEL and _BASE_URL variables on top of
// DefaultConfig. When no provider is named it falls back to DiscoverConfig.
func ConfigFromEnv() Config {
	return configFrom(os.Getenv)
}

func configFrom(getenv func(string) string) Config {
	cfg := DefaultConfig()
	for _, p := range []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter} {
		b := cfg.block(p)
		if v := getenv(envName(p, "API_KEY")); v != "" {
			b.APIKey = v
		}
		if v := getenv(envName(p, "MODEL")); v != "" {
			b.Model = v
		}
		if v := getenv(envName(p, "BASE_URL")); v != "" {
			b.BaseURL = v
		}
	}

	if p := getenv("FLASHDECK_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
		return cfg
	}
	if found, ok := discover(getenv, cfg); ok {
		return found
	}
	return cfg
}

// DiscoverConfig picks the first provider whose vendor API key variable is
// set, in the order Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	return discover(os.Getenv, DefaultConfig())
}

func discover(getenv func(string) string, cfg Config) (Config, bool) {
	for _, p := range []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter} {
		b := cfg.block(p)
		if b.APIKey == "" {
			b.APIKey = getenv(strings.ToUpper(p) + "_API_KEY")
		}
		if b.APIKey != "" {
			cfg.Provider = p
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks the selected provider is known and has a key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	b := c.block(c.Provider)
	if b == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if b.APIKey == "" {
		return fmt.Errorf("%s is required for the %s provider", envName(c.Provider, "API_KEY"), c.Provider)
	}
	return nil
}
