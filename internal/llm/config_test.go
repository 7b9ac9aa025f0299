package llm

import (
	"strings"
	"testing"
)

func envMap(kv map[string]string) func(string) string {
	return func(k string) string { return kv[k] }
}

func TestConfigFrom(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		provider string
		check    func(Config) bool
	}{
		{
			name:     "defaults",
			env:      nil,
			provider: ProviderAnthropic,
			check:    func(c Config) bool { return c.Anthropic.Model == "claude-haiku" && c.Anthropic.APIKey == "" },
		},
		{
			name: "explicit provider",
			env: map[string]string{
				"FLASHDECK_LLM_PROVIDER":       "openrouter",
				"FLASHDECK_OPENROUTER_API_KEY": "sk-or",
				"FLASHDECK_OPENROUTER_MODEL":   "meta-llama/llama-3-8b",
			},
			provider: ProviderOpenRouter,
			check: func(c Config) bool {
				return c.OpenRouter.APIKey == "sk-or" && c.OpenRouter.Model == "meta-llama/llama-3-8b" &&
					c.OpenRouter.BaseURL == defaultOpenRouterBaseURL
			},
		},
		{
			name:     "base url override",
			env:      map[string]string{"FLASHDECK_LLM_PROVIDER": "openai", "FLASHDECK_OPENAI_BASE_URL": "http://localhost:8080/v1"},
			provider: ProviderOpenAI,
			check:    func(c Config) bool { return c.OpenAI.BaseURL == "http://localhost:8080/v1" },
		},
		{
			name:     "discovered vendor key",
			env:      map[string]string{"OPENAI_API_KEY": "sk-1", "ANTHROPIC_API_KEY": "sk-2"},
			provider: ProviderOpenAI,
			check:    func(c Config) bool { return c.OpenAI.APIKey == "sk-1" },
		},
		{
			name:     "flashdeck key counts for discovery",
			env:      map[string]string{"FLASHDECK_GEMINI_API_KEY": "g-1", "OPENAI_API_KEY": "sk-1"},
			provider: ProviderGemini,
			check:    func(c Config) bool { return c.Gemini.APIKey == "g-1" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := configFrom(envMap(tt.env))
			if cfg.Provider != tt.provider {
				t.Errorf("Provider = %q, want %q", cfg.Provider, tt.provider)
			}
			if !tt.check(cfg) {
				t.Errorf("unexpected config: %+v", cfg)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"mock", Config{Provider: ProviderMock}, ""},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: ProviderConfig{APIKey: "k"}}, ""},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, "FLASHDECK_ANTHROPIC_API_KEY"},
		{"gemini without key", Config{Provider: ProviderGemini}, "FLASHDECK_GEMINI_API_KEY"},
		{"unknown", Config{Provider: "llama"}, "unknown LLM provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
