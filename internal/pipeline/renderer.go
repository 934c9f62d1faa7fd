package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/claimsift/claimsift/internal/model"
)

// Renderer writes the two output documents and the stderr summary
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// WriteCandidates writes the resubmission-candidates document
func (r *Renderer) WriteCandidates(report *model.RunReport, path string) error {
	return writeJSON(path, report.Candidates)
}

// WriteExcluded writes the excluded-claims document, with normalization
// failures folded in so every non-candidate input is accounted for.
func (r *Renderer) WriteExcluded(report *model.RunReport, path string) error {
	excluded := make([]model.ExcludedClaim, 0, len(report.Excluded)+len(report.Failures))
	excluded = append(excluded, report.Excluded...)
	for _, fail := range report.Failures {
		excluded = append(excluded, model.ExcludedClaim{
			ExclusionReason: "normalization failure: " + fail.Reason,
			SourceSystem:    fail.SourceSystem,
		})
	}
	return writeJSON(path, excluded)
}

// RenderSummary prints run metrics to stderr
func (r *Renderer) RenderSummary(report *model.RunReport) {
	m := report.Metrics

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Claim Resubmission Report  (run %s)\n", report.RunID)
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Processing date:          %s\n", report.ProcessingDate.Format("2006-01-02"))
	fmt.Fprintf(os.Stderr, "  Total claims processed:   %d\n", m.TotalProcessed)
	for _, source := range sortedKeys(m.SourceCounts) {
		fmt.Fprintf(os.Stderr, "  Claims from %-13s %d\n", source+":", m.SourceCounts[source])
	}
	fmt.Fprintf(os.Stderr, "  Flagged for resubmission: %d\n", m.ResubmissionCandidates)
	fmt.Fprintf(os.Stderr, "  Excluded:                 %d\n", m.ExcludedClaims)
	fmt.Fprintf(os.Stderr, "  Malformed records:        %d\n", m.MalformedRecords)
	fmt.Fprintf(os.Stderr, "  Fallback classifications: %d\n", m.ClassifierInvocations)

	if len(m.ExclusionReasonCounts) > 0 {
		fmt.Fprintf(os.Stderr, "\n  Exclusions by reason:\n")
		for _, reason := range sortedKeys(m.ExclusionReasonCounts) {
			fmt.Fprintf(os.Stderr, "    %3d  %s\n", m.ExclusionReasonCounts[reason], reason)
		}
	}
	fmt.Fprintf(os.Stderr, "\n")
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
