package normalize

import (
	"strings"
	"time"

	"github.com/claimsift/claimsift/internal/model"
)

// betaDateLayouts are the ISO-8601 variants EMR Beta emits
var betaDateLayouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// BetaAdapter normalizes JSON objects from EMR Beta.
// Beta fields: id, member, code, error_msg, date, status. Patient id may
// also arrive nested as {"patient": {"id": ...}}.
type BetaAdapter struct{}

// NewBetaAdapter creates the Beta adapter
func NewBetaAdapter() *BetaAdapter {
	return &BetaAdapter{}
}

// Source returns the system this adapter handles
func (b *BetaAdapter) Source() model.SourceSystem {
	return model.SourceBeta
}

// Normalize maps one Beta object into a canonical Claim
func (b *BetaAdapter) Normalize(raw model.RawRecord) (*model.Claim, *model.NormalizationFailure) {
	claimID := stringField(raw, "id")
	if claimID == "" {
		return nil, failure(model.SourceBeta, raw, "missing claim id")
	}

	date := stringField(raw, "date")
	if date == "" {
		return nil, failure(model.SourceBeta, raw, "missing submission date")
	}
	submissionDate, ok := parseBetaDate(date)
	if !ok {
		return nil, failure(model.SourceBeta, raw, "unparseable submission date %q", date)
	}

	lastUpdated := submissionDate
	if updated := stringField(raw, "updated"); updated != "" {
		if t, ok := parseBetaDate(updated); ok {
			lastUpdated = t
		}
	}

	return &model.Claim{
		ClaimID:         claimID,
		PatientID:       b.patientID(raw),
		ProcedureCode:   stringField(raw, "code"),
		Status:          canonicalStatus(stringField(raw, "status")),
		DenialReason:    stringField(raw, "error_msg"),
		SubmissionDate:  submissionDate,
		LastUpdatedDate: lastUpdated,
		SourceSystem:    model.SourceBeta,
		RawFields:       raw,
	}, nil
}

// patientID reads the flat "member" field, falling back to the nested
// "patient.id" shape some Beta exports use.
func (b *BetaAdapter) patientID(raw model.RawRecord) string {
	if member := stringField(raw, "member"); member != "" {
		return member
	}
	if patient, ok := raw["patient"].(map[string]any); ok {
		return stringField(model.RawRecord(patient), "id")
	}
	return ""
}

func parseBetaDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range betaDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
