package classify

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/claimsift/claimsift/internal/cache"
	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/rules"
)

// Classifier resolves denial reasons to retryability verdicts. Known
// phrases match deterministically against the rule table; everything
// else is ambiguous and goes through the fallback provider, with the
// heuristic as the last line when a remote provider fails.
type Classifier struct {
	table     *rules.Table
	fallback  Provider
	heuristic *HeuristicProvider
	cache     cache.Cache // nil disables memoization
	cacheTTL  time.Duration

	fallbackCalls int
}

// Option configures a Classifier
type Option func(*Classifier)

// WithCache memoizes fallback verdicts per normalized reason text
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(cl *Classifier) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// WithFallback replaces the default heuristic fallback provider. This is
// the substitution point for a real classification model.
func WithFallback(p Provider) Option {
	return func(cl *Classifier) {
		cl.fallback = p
	}
}

// NewClassifier creates a classifier over the given rule table
func NewClassifier(table *rules.Table, opts ...Option) *Classifier {
	c := &Classifier{
		table:     table,
		heuristic: NewHeuristicProvider(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fallback == nil {
		c.fallback = c.heuristic
	}
	return c
}

// Classify returns the retryability verdict for a denial reason.
// Exact phrase-table matches carry a nil Confidence; fallback-resolved
// verdicts always carry the computed confidence.
func (c *Classifier) Classify(ctx context.Context, reason string) model.RetryabilityVerdict {
	normalized := strings.ToLower(strings.TrimSpace(reason))

	if normalized != "" {
		if c.table.MatchRetryable(normalized) {
			return model.RetryabilityVerdict{Label: model.LabelRetryable}
		}
		if c.table.MatchNotRetryable(normalized) {
			return model.RetryabilityVerdict{Label: model.LabelNotRetryable}
		}
	}

	return c.resolveAmbiguous(ctx, normalized)
}

// resolveAmbiguous runs the fallback seam for reasons with no phrase
// match, memoizing the result per reason text.
func (c *Classifier) resolveAmbiguous(ctx context.Context, normalized string) model.RetryabilityVerdict {
	key := cache.Key(normalized)
	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			var verdict model.RetryabilityVerdict
			if err := json.Unmarshal(data, &verdict); err == nil {
				return verdict
			}
		}
	}

	c.fallbackCalls++

	verdict, err := c.fallback.Classify(ctx, normalized)
	if err != nil {
		// A failing remote provider never fails the record
		slog.Warn("fallback classifier failed, using heuristic",
			"provider", c.fallback.Name(), "error", err)
		verdict, _ = c.heuristic.Classify(ctx, normalized)
	}

	if c.cache != nil {
		if data, err := json.Marshal(verdict); err == nil {
			_ = c.cache.Set(key, data, c.cacheTTL)
		}
	}

	return verdict
}

// FallbackInvocations reports how many times the fallback seam ran
// (cache hits excluded). Read after a sequential run for metrics.
func (c *Classifier) FallbackInvocations() int {
	return c.fallbackCalls
}
