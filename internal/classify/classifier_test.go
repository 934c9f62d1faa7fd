package classify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/claimsift/claimsift/internal/cache"
	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/rules"
)

func newTestClassifier(opts ...Option) *Classifier {
	return NewClassifier(rules.NewTable(nil, nil), opts...)
}

func TestClassifier_KnownPhrases(t *testing.T) {
	classifier := newTestClassifier()
	ctx := context.Background()

	tests := []struct {
		reason string
		want   model.RetryabilityLabel
	}{
		{"missing modifier", model.LabelRetryable},
		{"Missing Modifier", model.LabelRetryable},
		{"incorrect npi", model.LabelRetryable},
		{"prior auth required", model.LabelRetryable},
		{"duplicate claim", model.LabelNotRetryable},
		{"service not covered", model.LabelNotRetryable},
		{"authorization expired", model.LabelNotRetryable},
	}

	for _, tt := range tests {
		verdict := classifier.Classify(ctx, tt.reason)
		if verdict.Label != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.reason, verdict.Label, tt.want)
		}
		if verdict.Confidence != nil {
			t.Errorf("Classify(%q): exact match must carry nil confidence, got %v", tt.reason, *verdict.Confidence)
		}
	}

	if classifier.FallbackInvocations() != 0 {
		t.Errorf("Known phrases must not invoke the fallback, got %d calls", classifier.FallbackInvocations())
	}
}

func TestClassifier_AmbiguousCarriesConfidence(t *testing.T) {
	classifier := newTestClassifier()

	verdict := classifier.Classify(context.Background(), "completely novel reason")
	if verdict.Confidence == nil {
		t.Fatal("Ambiguous reason must carry the computed confidence")
	}
	if classifier.FallbackInvocations() != 1 {
		t.Errorf("Expected 1 fallback invocation, got %d", classifier.FallbackInvocations())
	}
}

func TestClassifier_PhraseFragmentsStayAmbiguous(t *testing.T) {
	classifier := newTestClassifier()
	ctx := context.Background()

	// Fragments of table phrases are not exact matches; they must go
	// through the fallback and carry its confidence.
	for _, reason := range []string{"auth", "claim", "missing", "n"} {
		verdict := classifier.Classify(ctx, reason)
		if verdict.Confidence == nil {
			t.Errorf("Classify(%q): fragment must carry fallback confidence, got nil", reason)
		}
	}

	if got := classifier.FallbackInvocations(); got != 4 {
		t.Errorf("Expected 4 fallback invocations, got %d", got)
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	classifier := newTestClassifier()
	ctx := context.Background()

	for _, reason := range []string{"missing modifier", "duplicate claim", "some mystery"} {
		first := classifier.Classify(ctx, reason)
		for i := 0; i < 5; i++ {
			got := classifier.Classify(ctx, reason)
			if got.Label != first.Label {
				t.Fatalf("Classify(%q) unstable: %s then %s", reason, first.Label, got.Label)
			}
		}
	}
}

// failingProvider simulates a broken remote model endpoint
type failingProvider struct{}

func (f *failingProvider) Name() string { return "failing" }

func (f *failingProvider) Classify(_ context.Context, _ string) (model.RetryabilityVerdict, error) {
	return model.RetryabilityVerdict{}, fmt.Errorf("connection refused")
}

func TestClassifier_ProviderFailureDegradesToHeuristic(t *testing.T) {
	classifier := newTestClassifier(WithFallback(&failingProvider{}))

	verdict := classifier.Classify(context.Background(), "form incomplete")
	if verdict.Confidence == nil {
		t.Fatal("Degraded verdict must still carry confidence")
	}
	if verdict.Label != model.LabelRetryable {
		t.Errorf("Expected heuristic verdict retryable, got %s", verdict.Label)
	}
}

// countingProvider records how many times it was actually called
type countingProvider struct {
	calls int
}

func (c *countingProvider) Name() string { return "counting" }

func (c *countingProvider) Classify(ctx context.Context, reason string) (model.RetryabilityVerdict, error) {
	c.calls++
	return NewHeuristicProvider().Classify(ctx, reason)
}

func TestClassifier_CacheMemoizesFallback(t *testing.T) {
	provider := &countingProvider{}
	memory := cache.NewMemoryCache(time.Minute, time.Minute)
	classifier := newTestClassifier(WithFallback(provider), WithCache(memory, time.Minute))
	ctx := context.Background()

	first := classifier.Classify(ctx, "odd reason text")
	second := classifier.Classify(ctx, "odd reason text")

	if provider.calls != 1 {
		t.Errorf("Expected exactly 1 provider call, got %d", provider.calls)
	}
	if first.Label != second.Label {
		t.Errorf("Cached verdict differs: %s vs %s", first.Label, second.Label)
	}
	if second.Confidence == nil || first.Confidence == nil || *second.Confidence != *first.Confidence {
		t.Error("Cached verdict must preserve confidence")
	}
}
