// Package rules holds the denial-reason phrase tables and the
// reason-to-action lookup used for resubmission recommendations.
// A Table is built once at startup and is read-only afterwards; it is
// passed by reference into the classifier and engine rather than living
// in mutable package state.
package rules

import "strings"

// GenericRecommendation is used when a reason was resolved through the
// fallback classifier rather than an exact phrase match.
const GenericRecommendation = "Review and resubmit claim"

// Table maps known denial-reason phrases to retryability and actions
type Table struct {
	retryable    []string
	notRetryable []string
	actions      map[string]string
}

// NewTable builds the default table, optionally extended with custom
// retryable / not-retryable phrases.
func NewTable(extraRetryable, extraNotRetryable []string) *Table {
	t := &Table{
		retryable: []string{
			"missing modifier",
			"incorrect npi",
			"prior auth required",
		},
		notRetryable: []string{
			"duplicate claim",
			"service not covered",
			"authorization expired",
			"incorrect provider type",
		},
		actions: map[string]string{
			"missing modifier":    "Add missing modifier and resubmit",
			"incorrect npi":       "Correct NPI and resubmit",
			"prior auth required": "Obtain prior authorization and resubmit",
		},
	}

	for _, phrase := range extraRetryable {
		if p := normalize(phrase); p != "" {
			t.retryable = append(t.retryable, p)
		}
	}
	for _, phrase := range extraNotRetryable {
		if p := normalize(phrase); p != "" {
			t.notRetryable = append(t.notRetryable, p)
		}
	}

	return t
}

// MatchRetryable reports whether the reason matches a known retryable
// phrase. Matching is case-insensitive and tolerates extra detail
// around the phrase ("Missing modifier on line 2" matches "missing
// modifier"). A fragment of a phrase is not a match; anything short of
// containing a full known phrase stays ambiguous and goes to the
// fallback classifier.
func (t *Table) MatchRetryable(reason string) bool {
	return matchAny(normalize(reason), t.retryable)
}

// MatchNotRetryable reports whether the reason matches a known
// non-retryable phrase.
func (t *Table) MatchNotRetryable(reason string) bool {
	return matchAny(normalize(reason), t.notRetryable)
}

// Recommendation returns the remediation action for a known retryable
// reason, or the generic action when no phrase-specific one exists.
func (t *Table) Recommendation(reason string) string {
	r := normalize(reason)
	if r == "" {
		return GenericRecommendation
	}
	for phrase, action := range t.actions {
		if strings.Contains(r, phrase) {
			return action
		}
	}
	return GenericRecommendation
}

func matchAny(reason string, phrases []string) bool {
	if reason == "" {
		return false
	}
	for _, phrase := range phrases {
		if strings.Contains(reason, phrase) {
			return true
		}
	}
	return false
}

func normalize(reason string) string {
	return strings.ToLower(strings.TrimSpace(reason))
}
