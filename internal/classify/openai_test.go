package classify

import (
	"testing"

	"github.com/claimsift/claimsift/internal/model"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantLabel model.RetryabilityLabel
		wantConf  float64
		wantErr   bool
	}{
		{
			name:      "clean JSON",
			content:   `{"label": "retryable", "confidence": 0.8}`,
			wantLabel: model.LabelRetryable,
			wantConf:  0.8,
		},
		{
			name:      "JSON wrapped in prose",
			content:   "Here is my answer:\n{\"label\": \"not_retryable\", \"confidence\": 0.9}\nHope that helps.",
			wantLabel: model.LabelNotRetryable,
			wantConf:  0.9,
		},
		{
			name:      "unknown label defaults to not_retryable",
			content:   `{"label": "maybe", "confidence": 0.5}`,
			wantLabel: model.LabelNotRetryable,
			wantConf:  0.5,
		},
		{
			name:      "confidence clamped",
			content:   `{"label": "retryable", "confidence": 1.7}`,
			wantLabel: model.LabelRetryable,
			wantConf:  1.0,
		},
		{
			name:    "no JSON at all",
			content: "I cannot classify this.",
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			content: `{"label": retryable}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := parseVerdict(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if verdict.Label != tt.wantLabel {
				t.Errorf("Expected label %s, got %s", tt.wantLabel, verdict.Label)
			}
			if verdict.Confidence == nil || *verdict.Confidence != tt.wantConf {
				t.Errorf("Expected confidence %v, got %v", tt.wantConf, verdict.Confidence)
			}
		})
	}
}

func TestNewProvider_Factory(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("Expected error for openai provider without API key")
	}

	p, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected heuristic for empty provider, got error %v", err)
	}
	if p.Name() != "heuristic" {
		t.Errorf("Expected heuristic provider, got %s", p.Name())
	}

	if _, err := NewProvider(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("Expected error for unknown provider")
	}

	ollama, err := NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("Expected ollama provider without key, got error %v", err)
	}
	if ollama.Name() != "ollama" {
		t.Errorf("Expected ollama provider, got %s", ollama.Name())
	}
}
