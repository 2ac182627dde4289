// Package executor turns a prompt string into a trusted textual answer.
// It checks the response cache first, then calls the generation API with a
// bounded retry budget, writing successful answers back into the cache.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/bookprep/bookprep/internal/cache"
	"github.com/bookprep/bookprep/internal/providers"
)

// FailureMessage is the human-readable diagnostic rendered at the caller
// boundary when the retry budget is exhausted.
const FailureMessage = "Could not get answer from API, try again later"

// ErrUnavailable indicates the generation API failed for every attempt.
var ErrUnavailable = errors.New("generation API unavailable")

// Config holds executor configuration.
type Config struct {
	Client providers.LLMClient
	Cache  *cache.PromptCache
	Logger *slog.Logger

	// MaxAttempts is the retry ceiling (default: 3).
	MaxAttempts int

	// RetryDelay is the fixed delay between attempts (default: none).
	RetryDelay time.Duration
}

// Executor executes prompts against a generation client with caching and retry.
type Executor struct {
	client      providers.LLMClient
	cache       *cache.PromptCache
	logger      *slog.Logger
	maxAttempts int
	retryDelay  time.Duration
}

// New creates a new executor.
func New(cfg Config) *Executor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}

	return &Executor{
		client:      cfg.Client,
		cache:       cfg.Cache,
		logger:      logger,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
	}
}

// Execute returns the answer for a prompt, serving from the cache when an
// entry exists for the exact prompt string.
func (e *Executor) Execute(ctx context.Context, prompt string) (string, error) {
	return e.execute(ctx, prompt, false)
}

// ExecuteFresh always performs a new generation call, overwriting any cached
// entry for the prompt on success.
func (e *Executor) ExecuteFresh(ctx context.Context, prompt string) (string, error) {
	return e.execute(ctx, prompt, true)
}

func (e *Executor) execute(ctx context.Context, prompt string, forceRefresh bool) (string, error) {
	// Cache fast path: exact string equality on the prompt, nothing fuzzier.
	if !forceRefresh {
		cached, ok, err := e.cache.Get(prompt)
		if err != nil {
			return "", fmt.Errorf("cache lookup failed: %w", err)
		}
		if ok {
			e.logger.Debug("prompt cache hit", "prompt", truncate(prompt, 40))
			return cached, nil
		}
	}

	attempt := 0
	text, err := retry.DoWithData(
		func() (string, error) {
			attempt++
			e.logger.Debug("executing prompt",
				"attempt", attempt,
				"max_attempts", e.maxAttempts,
				"prompt", truncate(prompt, 40))

			result, err := e.client.Generate(ctx, &providers.GenerateRequest{Prompt: prompt})
			if err != nil {
				return "", err
			}
			return result.Text, nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(e.maxAttempts)),
		retry.Delay(e.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		// Failed calls never write to the cache.
		e.logger.Error("prompt execution failed",
			"attempts", attempt,
			"provider", e.client.Name(),
			"error", err)
		return "", fmt.Errorf("%w after %d attempts: %v", ErrUnavailable, attempt, err)
	}

	if err := e.cache.Put(prompt, text); err != nil {
		// The answer is still good; a cache write failure only costs a
		// future API call.
		e.logger.Warn("failed to cache prompt response", "error", err)
	}

	return text, nil
}

// truncate shortens s for log output.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
