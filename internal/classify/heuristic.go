package classify

import (
	"context"
	"strings"

	"github.com/claimsift/claimsift/internal/model"
)

// RetryableThreshold is the confidence at or above which an ambiguous
// reason is treated as retryable.
const RetryableThreshold = 0.5

// correctableWords suggest a provider-side mistake that can be fixed
var correctableWords = []string{
	"incomplete", "missing", "wrong", "incorrect", "error", "typo",
}

// terminalWords suggest a fundamental, non-correctable denial
var terminalWords = []string{
	"not covered", "not billable", "never", "duplicate", "fraud",
}

// HeuristicProvider is the deterministic stand-in for a real
// classification model. Confidence is a pure function of the reason
// text, so repeated calls always agree.
type HeuristicProvider struct{}

// NewHeuristicProvider creates the heuristic provider
func NewHeuristicProvider() *HeuristicProvider {
	return &HeuristicProvider{}
}

// Name returns the provider name
func (h *HeuristicProvider) Name() string {
	return "heuristic"
}

// Classify scores the reason text and applies the retryable threshold
func (h *HeuristicProvider) Classify(_ context.Context, reason string) (model.RetryabilityVerdict, error) {
	confidence := PseudoConfidence(reason)

	label := model.LabelNotRetryable
	if confidence >= RetryableThreshold {
		label = model.LabelRetryable
	}

	return model.RetryabilityVerdict{
		Label:      label,
		Confidence: &confidence,
	}, nil
}

// PseudoConfidence computes a deterministic confidence from reason-text
// features: a base score, a length term, correctable-error words up,
// terminal words down. Clamped to [0, 1].
func PseudoConfidence(reason string) float64 {
	r := strings.ToLower(strings.TrimSpace(reason))
	if r == "" {
		return 0
	}

	score := 0.35
	if len(r) >= 12 {
		score += 0.05
	}

	for _, word := range correctableWords {
		if strings.Contains(r, word) {
			score += 0.2
		}
	}
	for _, word := range terminalWords {
		if strings.Contains(r, word) {
			score -= 0.25
		}
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
