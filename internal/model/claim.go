package model

import "time"

// RawRecord is an untyped source record, shaped per EMR system.
// Alpha delivers flat tabular rows, Beta flat-or-nested JSON objects.
type RawRecord map[string]any

// SourceSystem identifies the originating EMR
type SourceSystem string

const (
	SourceAlpha SourceSystem = "alpha" // CSV-backed EMR
	SourceBeta  SourceSystem = "beta"  // JSON-backed EMR
)

// ClaimStatus is the canonical adjudication status
type ClaimStatus string

const (
	StatusSubmitted ClaimStatus = "submitted"
	StatusDenied    ClaimStatus = "denied"
	StatusPaid      ClaimStatus = "paid"
	StatusPending   ClaimStatus = "pending"
	StatusUnknown   ClaimStatus = "unknown" // unrecognized source vocabulary
)

// KnownStatuses lists every canonical status value
var KnownStatuses = []ClaimStatus{
	StatusSubmitted, StatusDenied, StatusPaid, StatusPending, StatusUnknown,
}

// IsKnown reports whether s is a canonical status value
func (s ClaimStatus) IsKnown() bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Claim is the canonical representation of one billing submission.
// A Claim is immutable once constructed; evaluation produces a separate
// EligibilityVerdict referencing it by ClaimID and never writes back.
type Claim struct {
	ClaimID         string       `json:"claim_id"`
	PatientID       string       `json:"patient_id,omitempty"` // empty is meaningful, not malformed
	ProcedureCode   string       `json:"procedure_code,omitempty"`
	Status          ClaimStatus  `json:"status"`
	DenialReason    string       `json:"denial_reason,omitempty"` // present only when denied
	SubmissionDate  time.Time    `json:"submission_date"`
	LastUpdatedDate time.Time    `json:"last_updated_date,omitempty"`
	SourceSystem    SourceSystem `json:"source_system"`
	RawFields       RawRecord    `json:"raw_fields,omitempty"` // original mapping, kept for diagnostics
}

// AgeDays returns the claim age in whole days relative to the processing date
func (c *Claim) AgeDays(processingDate time.Time) int {
	return int(processingDate.Sub(c.SubmissionDate).Hours() / 24)
}

// NormalizationFailure describes a record that could not be normalized.
// It is a value, not an error: one bad record never aborts a run.
type NormalizationFailure struct {
	SourceSystem SourceSystem `json:"source_system"`
	Reason       string       `json:"reason"`
	RawFields    RawRecord    `json:"raw_fields,omitempty"`
}
