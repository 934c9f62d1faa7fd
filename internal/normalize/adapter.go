// Package normalize reconciles source-specific raw records into the
// canonical Claim schema. Each EMR source gets its own Adapter; the
// Registry dispatches on the source tag.
package normalize

import (
	"fmt"
	"strings"

	"github.com/claimsift/claimsift/internal/model"
)

// Adapter defines the interface for source-specific normalizers
type Adapter interface {
	// Source returns the system this adapter handles
	Source() model.SourceSystem

	// Normalize maps one raw record into a canonical Claim. Exactly one
	// of the return values is non-nil; a failure is data for the caller,
	// never a panic.
	Normalize(raw model.RawRecord) (*model.Claim, *model.NormalizationFailure)
}

// Registry manages source adapters
type Registry struct {
	adapters map[model.SourceSystem]Adapter
}

// NewRegistry creates a registry with the built-in adapters registered
func NewRegistry() *Registry {
	r := &Registry{adapters: make(map[model.SourceSystem]Adapter)}
	r.Register(NewAlphaAdapter())
	r.Register(NewBetaAdapter())
	return r
}

// Register registers an adapter for its source
func (r *Registry) Register(adapter Adapter) {
	r.adapters[adapter.Source()] = adapter
}

// Normalize dispatches the record to the adapter for source. An unknown
// source tag yields a NormalizationFailure, keeping the per-record
// contract: one outcome per input, no aborts.
func (r *Registry) Normalize(raw model.RawRecord, source model.SourceSystem) (*model.Claim, *model.NormalizationFailure) {
	adapter, ok := r.adapters[source]
	if !ok {
		return nil, &model.NormalizationFailure{
			SourceSystem: source,
			Reason:       fmt.Sprintf("no adapter registered for source %q", source),
			RawFields:    raw,
		}
	}
	return adapter.Normalize(raw)
}

// stringField reads a raw field as a trimmed string. Missing keys, nil
// values and the literal "None" (Alpha's null marker) all come back
// empty.
func stringField(raw model.RawRecord, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	if s == "None" {
		return ""
	}
	return s
}

// canonicalStatus maps a source status vocabulary onto the canonical
// enum. Unrecognized values become StatusUnknown rather than failing
// normalization; the engine treats unknown as "not denied".
func canonicalStatus(raw string) model.ClaimStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "denied", "denial", "rejected":
		return model.StatusDenied
	case "approved", "paid":
		return model.StatusPaid
	case "submitted":
		return model.StatusSubmitted
	case "pending", "in_review", "in review":
		return model.StatusPending
	default:
		return model.StatusUnknown
	}
}

func failure(source model.SourceSystem, raw model.RawRecord, format string, args ...any) *model.NormalizationFailure {
	return &model.NormalizationFailure{
		SourceSystem: source,
		Reason:       fmt.Sprintf(format, args...),
		RawFields:    raw,
	}
}
