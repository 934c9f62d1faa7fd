package normalize

import (
	"time"

	"github.com/claimsift/claimsift/internal/model"
)

// alphaDateLayout is EMR Alpha's date format
const alphaDateLayout = "2006-01-02"

// AlphaAdapter normalizes flat tabular rows from EMR Alpha.
// Alpha fields: claim_id, patient_id, procedure_code, denial_reason,
// submitted_at, status. Empty cells and the literal "None" are nulls.
type AlphaAdapter struct{}

// NewAlphaAdapter creates the Alpha adapter
func NewAlphaAdapter() *AlphaAdapter {
	return &AlphaAdapter{}
}

// Source returns the system this adapter handles
func (a *AlphaAdapter) Source() model.SourceSystem {
	return model.SourceAlpha
}

// Normalize maps one Alpha row into a canonical Claim
func (a *AlphaAdapter) Normalize(raw model.RawRecord) (*model.Claim, *model.NormalizationFailure) {
	claimID := stringField(raw, "claim_id")
	if claimID == "" {
		return nil, failure(model.SourceAlpha, raw, "missing claim id")
	}

	submittedAt := stringField(raw, "submitted_at")
	if submittedAt == "" {
		return nil, failure(model.SourceAlpha, raw, "missing submission date")
	}
	submissionDate, err := time.Parse(alphaDateLayout, submittedAt)
	if err != nil {
		return nil, failure(model.SourceAlpha, raw, "unparseable submission date %q", submittedAt)
	}

	lastUpdated := submissionDate
	if updatedAt := stringField(raw, "updated_at"); updatedAt != "" {
		if t, err := time.Parse(alphaDateLayout, updatedAt); err == nil {
			lastUpdated = t
		}
	}

	return &model.Claim{
		ClaimID:         claimID,
		PatientID:       stringField(raw, "patient_id"), // empty is valid input to eligibility rules
		ProcedureCode:   stringField(raw, "procedure_code"),
		Status:          canonicalStatus(stringField(raw, "status")),
		DenialReason:    stringField(raw, "denial_reason"),
		SubmissionDate:  submissionDate,
		LastUpdatedDate: lastUpdated,
		SourceSystem:    model.SourceAlpha,
		RawFields:       raw,
	}, nil
}
