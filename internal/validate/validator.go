// Package validate checks structural completeness of normalized claims.
// Defects are returned as human-readable strings, never as errors: they
// feed directly into exclusion reasons when eligibility is evaluated.
package validate

import (
	"fmt"

	"github.com/claimsift/claimsift/internal/model"
)

// Validator checks normalized claims for structural defects
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns the claim's defects in check order. An empty slice
// means the claim is structurally complete.
func (v *Validator) Validate(claim *model.Claim) []string {
	var defects []string

	if claim.ClaimID == "" {
		defects = append(defects, "claim id is empty")
	}

	if !claim.Status.IsKnown() {
		defects = append(defects, fmt.Sprintf("unrecognized status %q", claim.Status))
	}

	if claim.Status == model.StatusDenied && claim.DenialReason == "" {
		defects = append(defects, "denied claim has no denial reason")
	}

	return defects
}
