package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claimsift/claimsift/internal/model"
)

func TestParseAlphaCSV(t *testing.T) {
	input := strings.Join([]string{
		"claim_id,patient_id,procedure_code,denial_reason,submitted_at,status",
		"A123,P001,99213,Missing modifier,2025-07-01,denied",
		"A125,,99215,Authorization expired,2025-07-05,denied",
	}, "\n")

	records, err := ParseAlphaCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	if records[0]["claim_id"] != "A123" {
		t.Errorf("Expected claim_id A123, got %v", records[0]["claim_id"])
	}
	if records[0]["denial_reason"] != "Missing modifier" {
		t.Errorf("Expected denial reason preserved, got %v", records[0]["denial_reason"])
	}
	if records[1]["patient_id"] != "" {
		t.Errorf("Expected empty patient_id preserved, got %v", records[1]["patient_id"])
	}
}

func TestParseAlphaCSV_RaggedRow(t *testing.T) {
	input := "claim_id,patient_id,status\nA1,P1\n"

	records, err := ParseAlphaCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Expected ragged row to parse, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0]["status"] != "" {
		t.Errorf("Expected missing field padded empty, got %v", records[0]["status"])
	}
}

func TestParseAlphaCSV_EmptyFile(t *testing.T) {
	records, err := ParseAlphaCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Expected no error for empty input, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestParseBetaJSON(t *testing.T) {
	input := `[
		{"id": "B987", "member": "P010", "code": "99213", "error_msg": "Incorrect provider type", "date": "2025-07-03T00:00:00", "status": "denied"},
		{"id": "B990", "member": null, "code": "99401", "error_msg": "incorrect procedure", "date": "2025-07-01T00:00:00", "status": "denied"}
	]`

	records, err := ParseBetaJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0]["id"] != "B987" {
		t.Errorf("Expected id B987, got %v", records[0]["id"])
	}
	if records[1]["member"] != nil {
		t.Errorf("Expected null member preserved as nil, got %v", records[1]["member"])
	}
}

func TestParseBetaJSON_Malformed(t *testing.T) {
	if _, err := ParseBetaJSON(strings.NewReader(`{"not": "an array"}`)); err == nil {
		t.Error("Expected error for non-array input")
	}
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()

	alphaPath := filepath.Join(dir, "alpha.csv")
	if err := os.WriteFile(alphaPath, []byte("claim_id,status\nA1,denied\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	betaPath := filepath.Join(dir, "beta.json")
	if err := os.WriteFile(betaPath, []byte(`[{"id": "B1", "status": "denied"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	alpha, err := ReadAlphaCSV(alphaPath)
	if err != nil {
		t.Fatalf("ReadAlphaCSV: %v", err)
	}
	if alpha.Source != model.SourceAlpha || len(alpha.Records) != 1 {
		t.Errorf("Unexpected alpha batch: %+v", alpha)
	}

	beta, err := ReadBetaJSON(betaPath)
	if err != nil {
		t.Fatalf("ReadBetaJSON: %v", err)
	}
	if beta.Source != model.SourceBeta || len(beta.Records) != 1 {
		t.Errorf("Unexpected beta batch: %+v", beta)
	}

	if _, err := ReadAlphaCSV(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}
