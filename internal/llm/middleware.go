package llm

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/abhisek/flashdeck/internal/rng"
	"github.com/abhisek/flashdeck/internal/store"
)

// RetryProvider retries transient failures with capped exponential backoff
// and +/-20% jitter. A reply that fails validation is retried once.
type RetryProvider struct {
	// Timeout, when positive, bounds the whole call including waits.
	Timeout time.Duration

	inner  Provider
	config RetryConfig
	src    rng.Source
	sleep  func(context.Context, time.Duration) error
}

func WithRetry(p Provider, cfg RetryConfig, src rng.Source) *RetryProvider {
	if src == nil {
		src = rng.New(0)
	}
	return &RetryProvider{inner: p, config: cfg, src: src, sleep: sleepCtx}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	attempts := max(r.config.MaxAttempts, 1)
	invalidSeen := false
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !retryable(err, &invalidSeen) || attempt == attempts-1 {
			break
		}
		if serr := r.sleep(ctx, r.backoff(attempt, err)); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return false
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
	}
	return true
}

func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait *= 1 + 0.2*(2*r.src.Float64()-1)
	return time.Duration(math.Max(wait, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RecordingProvider logs every call and appends it to the event history
// when a repo is configured. Recording failures never fail the call.
type RecordingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   *slog.Logger
	now      func() time.Time
}

func WithRecording(p Provider, provider string, events store.EventRepo, logger *slog.Logger) *RecordingProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordingProvider{inner: p, provider: provider, events: events, logger: logger, now: time.Now}
}

func (l *RecordingProvider) ModelID() string { return l.inner.ModelID() }

func (l *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: l.now().Sub(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed", "provider", data.Provider, "model", data.Model,
			"purpose", data.Purpose, "error", err)
	} else {
		l.logger.Debug("llm request", "provider", data.Provider, "model", data.Model,
			"purpose", data.Purpose, "tokens", resp.Usage.Total(), "latency_ms", data.LatencyMs)
	}

	if l.events != nil {
		if rerr := l.events.AppendLLMRequest(ctx, data); rerr != nil {
			l.logger.Warn("record llm request", "error", rerr)
		}
	}
	return resp, err
}
