package model

// RetryabilityLabel classifies whether a denial cause is correctable
type RetryabilityLabel string

const (
	LabelRetryable    RetryabilityLabel = "retryable"
	LabelNotRetryable RetryabilityLabel = "not_retryable"
	LabelAmbiguous    RetryabilityLabel = "ambiguous" // no phrase-table match; fallback required
)

// RetryabilityVerdict is the outcome of classifying one denial reason.
// Confidence is nil for exact phrase-table matches and carries the
// computed pseudo-confidence when the fallback classifier resolved an
// ambiguous reason, so consumers can tell the two apart.
type RetryabilityVerdict struct {
	Label      RetryabilityLabel `json:"label"`
	Confidence *float64          `json:"confidence,omitempty"`
}

// EligibilityVerdict is the terminal artifact produced once per Claim
type EligibilityVerdict struct {
	ClaimID              string   `json:"claim_id"`
	Eligible             bool     `json:"eligible"`
	ExclusionReasons     []string `json:"exclusion_reasons"`               // empty iff eligible
	Recommendation       *string  `json:"recommendation,omitempty"`        // nil iff not eligible
	ClassifierConfidence *float64 `json:"classifier_confidence,omitempty"` // set only when the fallback ran
}
