package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/claimsift/claimsift/internal/model"
)

// ReadAlphaCSV reads an EMR Alpha export: a header row followed by one
// claim per line. Rows are returned as header-keyed mappings; short rows
// are padded with empty fields rather than dropped.
func ReadAlphaCSV(path string) (Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return Batch{}, fmt.Errorf("open alpha export: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := ParseAlphaCSV(f)
	if err != nil {
		return Batch{}, fmt.Errorf("parse alpha export %s: %w", path, err)
	}

	return Batch{Source: model.SourceAlpha, Records: records}, nil
}

// ParseAlphaCSV parses Alpha rows from a reader
func ParseAlphaCSV(r io.Reader) ([]model.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []model.RawRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []model.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		record := make(model.RawRecord, len(header))
		for i, key := range header {
			if i < len(row) {
				record[key] = row[i]
			} else {
				record[key] = ""
			}
		}
		records = append(records, record)
	}

	return records, nil
}
