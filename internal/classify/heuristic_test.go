package classify

import (
	"context"
	"testing"

	"github.com/claimsift/claimsift/internal/model"
)

func TestHeuristicProvider_AlwaysReturnsConfidence(t *testing.T) {
	provider := NewHeuristicProvider()

	for _, reason := range []string{"form incomplete", "not billable", "gibberish", ""} {
		verdict, err := provider.Classify(context.Background(), reason)
		if err != nil {
			t.Fatalf("Heuristic must not error, got %v for %q", err, reason)
		}
		if verdict.Confidence == nil {
			t.Errorf("Expected non-nil confidence for %q", reason)
		}
	}
}

func TestHeuristicProvider_Labels(t *testing.T) {
	provider := NewHeuristicProvider()

	tests := []struct {
		reason string
		want   model.RetryabilityLabel
	}{
		{"form incomplete", model.LabelRetryable},
		{"incorrect procedure", model.LabelRetryable},
		{"wrong member number", model.LabelRetryable},
		{"not billable", model.LabelNotRetryable},
		{"service never covered under plan", model.LabelNotRetryable},
		{"", model.LabelNotRetryable}, // null reason leans terminal
	}

	for _, tt := range tests {
		verdict, err := provider.Classify(context.Background(), tt.reason)
		if err != nil {
			t.Fatalf("Classify(%q) errored: %v", tt.reason, err)
		}
		if verdict.Label != tt.want {
			t.Errorf("Classify(%q) = %s (confidence %.2f), want %s",
				tt.reason, verdict.Label, *verdict.Confidence, tt.want)
		}
	}
}

func TestPseudoConfidence_Deterministic(t *testing.T) {
	for _, reason := range []string{"form incomplete", "Not Billable", "some odd text"} {
		first := PseudoConfidence(reason)
		for i := 0; i < 10; i++ {
			if got := PseudoConfidence(reason); got != first {
				t.Fatalf("PseudoConfidence(%q) unstable: %v then %v", reason, first, got)
			}
		}
	}
}

func TestPseudoConfidence_CaseInsensitive(t *testing.T) {
	if PseudoConfidence("FORM INCOMPLETE") != PseudoConfidence("form incomplete") {
		t.Error("Expected case-insensitive confidence")
	}
}

func TestPseudoConfidence_Bounds(t *testing.T) {
	reasons := []string{
		"", "x",
		"incomplete missing wrong incorrect error typo",  // stacks every bonus
		"not covered not billable never duplicate fraud", // stacks every penalty
	}
	for _, reason := range reasons {
		c := PseudoConfidence(reason)
		if c < 0 || c > 1 {
			t.Errorf("PseudoConfidence(%q) = %v, out of [0,1]", reason, c)
		}
	}
}
