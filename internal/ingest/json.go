package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/claimsift/claimsift/internal/model"
)

// ReadBetaJSON reads an EMR Beta export: a JSON array of claim objects
func ReadBetaJSON(path string) (Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return Batch{}, fmt.Errorf("open beta export: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := ParseBetaJSON(f)
	if err != nil {
		return Batch{}, fmt.Errorf("parse beta export %s: %w", path, err)
	}

	return Batch{Source: model.SourceBeta, Records: records}, nil
}

// ParseBetaJSON parses Beta objects from a reader
func ParseBetaJSON(r io.Reader) ([]model.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var records []model.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode array: %w", err)
	}

	return records, nil
}
