// Package providers contains clients for remote text-generation APIs.
package providers

import (
	"context"
	"time"
)

// LLMClient is the interface for single-prompt text generation.
// A client performs exactly one remote call per Generate; retry policy
// lives in the executor, not here.
type LLMClient interface {
	// Generate sends a prompt and returns the generated text.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)

	// Name returns the client identifier (e.g., "gemini").
	Name() string
}

// GenerateRequest is a request to an LLM.
type GenerateRequest struct {
	// Prompt is the full prompt text.
	Prompt string `json:"prompt"`

	// Timeout overrides the client's default per-call timeout when set.
	Timeout time.Duration `json:"-"`

	// RequestID tracks the request through logs. Generated if empty.
	RequestID string `json:"-"`
}

// GenerateResult is the complete response from a generation call.
type GenerateResult struct {
	// Response content
	Text string `json:"text"`

	// Provider info
	Provider  string `json:"provider"`
	ModelUsed string `json:"model_used"`

	// Timing
	ExecutionTime time.Duration `json:"execution_time"`

	// Request tracking
	RequestID string `json:"request_id"`

	// Success/error
	Success      bool   `json:"success"`
	ErrorType    string `json:"error_type,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
