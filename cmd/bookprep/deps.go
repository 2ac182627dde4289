package main

import (
	"fmt"
	"log/slog"

	"github.com/bookprep/bookprep/internal/cache"
	"github.com/bookprep/bookprep/internal/config"
	"github.com/bookprep/bookprep/internal/executor"
	"github.com/bookprep/bookprep/internal/home"
	"github.com/bookprep/bookprep/internal/providers"
)

// deps holds the wired components shared by the content commands.
type deps struct {
	home     *home.Dir
	cfg      *config.Config
	logger   *slog.Logger
	executor *executor.Executor
}

// setup loads config and wires the home directory, generation client, and
// prompt executor.
func setup() (*deps, error) {
	logger := newLogger()

	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, err
	}

	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg := cm.Get()

	// Pick up config edits made while a command is running. The generation
	// client keeps its settings from startup; reloads affect later reads.
	cm.OnChange(func(c *config.Config) {
		logger.Info("configuration reloaded", "provider", c.Provider)
	})
	cm.WatchConfig()

	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	promptBackend, err := cache.OpenFile(h.PromptCachePath())
	if err != nil {
		return nil, err
	}

	exec := executor.New(executor.Config{
		Client:      client,
		Cache:       cache.NewPromptCache(promptBackend),
		Logger:      logger,
		MaxAttempts: cfg.Generation.MaxAttempts,
		RetryDelay:  cfg.Generation.RetryDelay(),
	})

	return &deps{
		home:     h,
		cfg:      cfg,
		logger:   logger,
		executor: exec,
	}, nil
}

// newClient builds the generation client selected by the config.
func newClient(cfg *config.Config) (providers.LLMClient, error) {
	switch cfg.Provider {
	case providers.GeminiName:
		return providers.NewGeminiClient(providers.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey(),
			BaseURL: cfg.Gemini.BaseURL,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.Generation.Timeout(),
			RPM:     cfg.Generation.RequestsPerMinute,
		}), nil
	case providers.OpenAIName:
		return providers.NewOpenAIClient(providers.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey(),
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.Generation.Timeout(),
			RPM:     cfg.Generation.RequestsPerMinute,
		}), nil
	case providers.MockClientName:
		return providers.NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
