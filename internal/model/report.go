package model

import "time"

// ResubmissionCandidate is one entry in the candidates output document
type ResubmissionCandidate struct {
	ClaimID            string       `json:"claim_id"`
	ResubmissionReason string       `json:"resubmission_reason"`
	SourceSystem       SourceSystem `json:"source_system"`
	RecommendedChanges string       `json:"recommended_changes"`
	Confidence         *float64     `json:"classifier_confidence,omitempty"`
}

// ExcludedClaim is one entry in the exclusions output document
type ExcludedClaim struct {
	ClaimID         string       `json:"claim_id"`
	ExclusionReason string       `json:"exclusion_reason"`
	SourceSystem    SourceSystem `json:"source_system"`
}

// Metrics aggregates per-run counters
type Metrics struct {
	TotalProcessed         int            `json:"total_processed"`
	SourceCounts           map[string]int `json:"source_counts"`
	ResubmissionCandidates int            `json:"resubmission_candidates"`
	ExcludedClaims         int            `json:"excluded_claims"`
	MalformedRecords       int            `json:"malformed_records"`
	ClassifierInvocations  int            `json:"classifier_invocations"` // fallback classifier calls
	ExclusionReasonCounts  map[string]int `json:"exclusion_reason_counts"`
}

// NewMetrics returns zeroed metrics with initialized maps
func NewMetrics() Metrics {
	return Metrics{
		SourceCounts:          make(map[string]int),
		ExclusionReasonCounts: make(map[string]int),
	}
}

// RunReport is the complete result of one pipeline run
type RunReport struct {
	RunID          string                  `json:"run_id"`
	ProcessedAt    time.Time               `json:"processed_at"`
	ProcessingDate time.Time               `json:"processing_date"` // reference date for claim age
	Candidates     []ResubmissionCandidate `json:"candidates"`
	Excluded       []ExcludedClaim         `json:"excluded"`
	Failures       []NormalizationFailure  `json:"failures"`
	Metrics        Metrics                 `json:"metrics"`
}
