// Package ingest reads raw EMR exports from disk into untyped records.
// It only parses container formats; per-record problems surface later as
// normalization failures, keeping one bad record from hiding the rest.
package ingest

import "github.com/claimsift/claimsift/internal/model"

// Batch pairs a source tag with its parsed raw records
type Batch struct {
	Source  model.SourceSystem
	Records []model.RawRecord
}
