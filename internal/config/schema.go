package config

import "time"

// Config holds bookprep configuration.
// Stored at: {home}/config.yaml
type Config struct {
	// Provider selects the generation backend: "gemini" or "openai".
	Provider string `mapstructure:"provider" yaml:"provider" validate:"required,oneof=gemini openai mock"`

	Gemini     GeminiCfg     `mapstructure:"gemini" yaml:"gemini"`
	OpenAI     OpenAICfg     `mapstructure:"openai" yaml:"openai"`
	Generation GenerationCfg `mapstructure:"generation" yaml:"generation"`
}

// GeminiCfg configures the Google generative language API client.
type GeminiCfg struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax
	Model   string `mapstructure:"model" yaml:"model"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// OpenAICfg configures the OpenAI chat completion client.
type OpenAICfg struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax
	Model  string `mapstructure:"model" yaml:"model"`
}

// GenerationCfg controls prompt execution behavior.
type GenerationCfg struct {
	// MaxAttempts is the retry ceiling for a single prompt execution.
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts" validate:"min=1"`

	// RetryDelayMs is the delay between attempts in milliseconds.
	// The baseline design retries immediately (0).
	RetryDelayMs int `mapstructure:"retry_delay_ms" yaml:"retry_delay_ms" validate:"min=0"`

	// TimeoutSeconds bounds a single remote generation call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds" validate:"min=1"`

	// RequestsPerMinute rate-limits outbound generation calls.
	RequestsPerMinute int `mapstructure:"requests_per_minute" yaml:"requests_per_minute" validate:"min=1"`
}

// RetryDelay returns the configured inter-attempt delay.
func (g GenerationCfg) RetryDelay() time.Duration {
	return time.Duration(g.RetryDelayMs) * time.Millisecond
}

// Timeout returns the configured per-call timeout.
func (g GenerationCfg) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider: "gemini",
		Gemini: GeminiCfg{
			APIKey: "${GEMINI_API_KEY}",
			Model:  "gemini-pro",
		},
		OpenAI: OpenAICfg{
			APIKey: "${OPENAI_API_KEY}",
			Model:  "gpt-4o-mini",
		},
		Generation: GenerationCfg{
			MaxAttempts:       3,
			RetryDelayMs:      0,
			TimeoutSeconds:    120,
			RequestsPerMinute: 60,
		},
	}
}
