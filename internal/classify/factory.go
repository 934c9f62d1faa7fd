package classify

import (
	"fmt"
	"strings"
)

// NewProvider creates a fallback provider based on configuration.
// An empty provider name selects the deterministic heuristic.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "", "heuristic":
		return NewHeuristicProvider(), nil

	default:
		return nil, fmt.Errorf("unknown classifier provider: %s (supported: openai, ollama, heuristic)", config.Provider)
	}
}
