// Package engine evaluates resubmission eligibility for normalized
// claims. Rule order is a fixed policy, not incidental control flow:
// each claim exits at its first failing rule so the verdict carries one
// clear exclusion reason, and fixtures depend on that order.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/rules"
	"github.com/claimsift/claimsift/internal/validate"
)

// ReasonClassifier is the classifier dependency. The concrete
// implementation lives in internal/classify; the engine only needs the
// seam so a real model can be substituted without touching rule logic.
type ReasonClassifier interface {
	Classify(ctx context.Context, reason string) model.RetryabilityVerdict
}

// Engine decides resubmission eligibility
type Engine struct {
	validator      *validate.Validator
	classifier     ReasonClassifier
	table          *rules.Table
	processingDate time.Time
	minAgeDays     int
}

// NewEngine creates an engine. processingDate is the reference date for
// claim age; minAgeDays is the strict threshold a claim must exceed.
func NewEngine(classifier ReasonClassifier, table *rules.Table, processingDate time.Time, minAgeDays int) *Engine {
	return &Engine{
		validator:      validate.NewValidator(),
		classifier:     classifier,
		table:          table,
		processingDate: processingDate,
		minAgeDays:     minAgeDays,
	}
}

// Evaluate produces exactly one verdict for the claim. The claim itself
// is never mutated; calling Evaluate twice yields identical verdicts.
func (e *Engine) Evaluate(ctx context.Context, claim *model.Claim) model.EligibilityVerdict {
	verdict := model.EligibilityVerdict{
		ClaimID:          claim.ClaimID,
		ExclusionReasons: []string{},
	}

	// 1. Structural defects exclude before any business rule runs
	if defects := e.validator.Validate(claim); len(defects) > 0 {
		verdict.ExclusionReasons = defects
		return verdict
	}

	// 2. Only denied claims are candidates. Unrecognized source statuses
	// arrive as StatusUnknown and exit here.
	if claim.Status != model.StatusDenied {
		verdict.ExclusionReasons = append(verdict.ExclusionReasons, "status is not denied")
		return verdict
	}

	// 3. A claim without a patient cannot be resubmitted
	if claim.PatientID == "" {
		verdict.ExclusionReasons = append(verdict.ExclusionReasons, "missing patient id")
		return verdict
	}

	// 4. Age must be strictly greater than the threshold; exactly
	// minAgeDays old is still too fresh.
	if claim.AgeDays(e.processingDate) <= e.minAgeDays {
		verdict.ExclusionReasons = append(verdict.ExclusionReasons, "claim not old enough for resubmission")
		return verdict
	}

	// 5. The denial reason must be correctable
	retryability := e.classifier.Classify(ctx, claim.DenialReason)
	verdict.ClassifierConfidence = retryability.Confidence
	if retryability.Label == model.LabelNotRetryable {
		verdict.ExclusionReasons = append(verdict.ExclusionReasons,
			fmt.Sprintf("denial reason not retryable: %s", claim.DenialReason))
		return verdict
	}

	// 6. Eligible: attach the remediation action
	verdict.Eligible = true
	recommendation := rules.GenericRecommendation
	if retryability.Confidence == nil {
		// Exact phrase match; look up the phrase-specific action
		recommendation = e.table.Recommendation(claim.DenialReason)
	}
	verdict.Recommendation = &recommendation

	return verdict
}

// ProcessingDate returns the engine's reference date
func (e *Engine) ProcessingDate() time.Time {
	return e.processingDate
}
