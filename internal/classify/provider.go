// Package classify decides whether a denial reason is retryable.
// Known phrases resolve deterministically against the rule table; the
// rest go through the fallback Provider seam, which a real model can
// stand behind without touching rule logic.
package classify

import (
	"context"

	"github.com/claimsift/claimsift/internal/model"
)

// Provider is the fallback classifier seam for ambiguous denial
// reasons. Implementations must be side-effect free and must never
// panic on unrecognized input; the returned verdict always carries a
// non-nil Confidence so consumers can tell heuristic resolution apart
// from exact phrase-table matches.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Classify returns a best-guess retryability verdict for a reason
	// that matched no known phrase.
	Classify(ctx context.Context, reason string) (model.RetryabilityVerdict, error)
}

// Config holds fallback provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI-compatible endpoints
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// RatePerSecond / Burst throttle remote calls
	RatePerSecond float64
	Burst         int
}

// ConfigFromModel converts model.LLMConfig to classify.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:      modelConfig.Provider,
		Model:         modelConfig.Model,
		APIKey:        modelConfig.APIKey,
		BaseURL:       modelConfig.BaseURL,
		Timeout:       modelConfig.Timeout,
		RatePerSecond: modelConfig.RatePerSecond,
		Burst:         modelConfig.Burst,
	}
}
