package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 2 * time.Second

	contentStartMarker = "[DOCUMENT CONTENT START]"
	contentEndMarker   = "[DOCUMENT CONTENT END]"
)

// CallerConfig tunes the retry behavior of the caller.
type CallerConfig struct {
	MaxAttempts int           // total attempts, including the first
	BaseDelay   time.Duration // backoff before the first retry, doubled after each
}

// Caller is the single choke point for model invocations. It wraps a
// Generator with bounded exponential backoff on transient-unavailable
// failures; every other failure propagates to the caller untouched.
type Caller struct {
	gen     Generator
	initErr error
	cfg     CallerConfig
	sleep   func(ctx context.Context, d time.Duration) error
	logger  *slog.Logger
}

// NewCaller wires a Generator behind the retry policy. initErr captures a
// failed client construction (typically a missing credential): the caller
// then fails fast on every Call without touching the generator.
func NewCaller(gen Generator, initErr error, cfg CallerConfig, logger *slog.Logger) *Caller {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if initErr == nil && gen == nil {
		initErr = errors.New("no generator configured")
	}
	return &Caller{
		gen:     gen,
		initErr: initErr,
		cfg:     cfg,
		sleep:   sleepContext,
		logger:  logger,
	}
}

// Call sends the system prompt plus delimited document content as a single
// combined prompt, at temperature 0, and returns the trimmed completion.
func (c *Caller) Call(ctx context.Context, systemPrompt, userContent string) (string, error) {
	if c.initErr != nil {
		return "", fmt.Errorf("llm client is not initialized: %w", c.initErr)
	}

	prompt := systemPrompt + "\n\n" + contentStartMarker + "\n" + userContent + "\n" + contentEndMarker

	delay := c.cfg.BaseDelay
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		out, err := c.gen.Generate(ctx, prompt, 0)
		if err == nil {
			return strings.TrimSpace(out), nil
		}
		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() || attempt == c.cfg.MaxAttempts {
			return "", err
		}

		c.logger.Warn("llm.call.retry",
			"attempt", attempt,
			"max_attempts", c.cfg.MaxAttempts,
			"backoff_ms", delay.Milliseconds(),
			"status", apiErr.StatusCode,
		)
		if err := c.sleep(ctx, delay); err != nil {
			return "", lastErr
		}
		delay *= 2
	}
	return "", lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
