package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/flashdeck/internal/store"
)

// NewProvider builds the configured provider behind retry and recording.
// events may be nil when the store keeps no history.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderMock:
		return NewMockProvider(), nil
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Each retry attempt is recorded on its own.
	recorded := WithRecording(base, cfg.Provider, events, logger)
	retried := WithRetry(recorded, cfg.Retry, nil)
	retried.Timeout = cfg.Timeout
	return retried, nil
}
