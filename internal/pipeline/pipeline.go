// Package pipeline wires ingestion, normalization, and eligibility
// evaluation into one run and renders the output documents.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claimsift/claimsift/internal/cache"
	"github.com/claimsift/claimsift/internal/classify"
	"github.com/claimsift/claimsift/internal/engine"
	"github.com/claimsift/claimsift/internal/ingest"
	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/normalize"
	"github.com/claimsift/claimsift/internal/rules"
)

// Pipeline orchestrates one processing run
type Pipeline struct {
	registry   *normalize.Registry
	classifier *classify.Classifier
	engine     *engine.Engine
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	processingDate, err := cfg.ResolveProcessingDate(time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("resolve processing date: %w", err)
	}

	table := rules.NewTable(cfg.Rules.ExtraRetryable, cfg.Rules.ExtraNotRetryable)

	var opts []classify.Option
	if cfg.LLM.Provider != "" {
		provider, err := classify.NewProvider(classify.ConfigFromModel(cfg.LLM))
		if err != nil {
			// A broken remote provider downgrades to the heuristic
			// rather than blocking the run
			slog.Warn("failed to initialize classifier provider, using heuristic", "error", err)
		} else {
			opts = append(opts, classify.WithFallback(provider))
		}
	}
	if cfg.Cache.Enabled {
		memory := cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
		opts = append(opts, classify.WithCache(memory, cfg.Cache.TTL))
	}

	classifier := classify.NewClassifier(table, opts...)

	return &Pipeline{
		registry:   normalize.NewRegistry(),
		classifier: classifier,
		engine:     engine.NewEngine(classifier, table, processingDate, cfg.Pipeline.MinAgeDays),
		renderer:   NewRenderer(),
		config:     cfg,
	}, nil
}

// Run processes every record in the given batches sequentially and
// returns the complete report. Each input record yields exactly one
// outcome: candidate, excluded, or normalization failure. A malformed
// record never aborts the run.
func (p *Pipeline) Run(ctx context.Context, batches []ingest.Batch) (*model.RunReport, error) {
	if batches == nil {
		return nil, fmt.Errorf("no input batches")
	}

	fallbackBefore := p.classifier.FallbackInvocations()

	report := &model.RunReport{
		RunID:          uuid.NewString(),
		ProcessedAt:    time.Now().UTC(),
		ProcessingDate: p.engine.ProcessingDate(),
		Candidates:     []model.ResubmissionCandidate{},
		Excluded:       []model.ExcludedClaim{},
		Failures:       []model.NormalizationFailure{},
		Metrics:        model.NewMetrics(),
	}

	for _, batch := range batches {
		for _, raw := range batch.Records {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			p.processRecord(ctx, raw, batch.Source, report)
		}
	}

	// Metrics report this run only, not the classifier's lifetime
	report.Metrics.ClassifierInvocations = p.classifier.FallbackInvocations() - fallbackBefore

	slog.Info("pipeline run complete",
		"run_id", report.RunID,
		"total", report.Metrics.TotalProcessed,
		"candidates", report.Metrics.ResubmissionCandidates,
		"excluded", report.Metrics.ExcludedClaims,
		"malformed", report.Metrics.MalformedRecords,
		"classifier_invocations", report.Metrics.ClassifierInvocations)

	return report, nil
}

func (p *Pipeline) processRecord(ctx context.Context, raw model.RawRecord, source model.SourceSystem, report *model.RunReport) {
	report.Metrics.TotalProcessed++
	report.Metrics.SourceCounts[string(source)]++

	claim, fail := p.registry.Normalize(raw, source)
	if fail != nil {
		report.Failures = append(report.Failures, *fail)
		report.Metrics.MalformedRecords++
		slog.Warn("record failed normalization", "source", fail.SourceSystem, "reason", fail.Reason)
		return
	}

	verdict := p.engine.Evaluate(ctx, claim)
	if verdict.Eligible {
		reason := claim.DenialReason
		if reason == "" {
			reason = "Unknown"
		}
		report.Candidates = append(report.Candidates, model.ResubmissionCandidate{
			ClaimID:            claim.ClaimID,
			ResubmissionReason: reason,
			SourceSystem:       claim.SourceSystem,
			RecommendedChanges: *verdict.Recommendation,
			Confidence:         verdict.ClassifierConfidence,
		})
		report.Metrics.ResubmissionCandidates++
		slog.Debug("claim flagged for resubmission", "claim_id", claim.ClaimID, "reason", reason)
		return
	}

	exclusion := strings.Join(verdict.ExclusionReasons, "; ")
	report.Excluded = append(report.Excluded, model.ExcludedClaim{
		ClaimID:         claim.ClaimID,
		ExclusionReason: exclusion,
		SourceSystem:    claim.SourceSystem,
	})
	report.Metrics.ExcludedClaims++
	for _, reason := range verdict.ExclusionReasons {
		report.Metrics.ExclusionReasonCounts[reason]++
	}
	slog.Debug("claim excluded", "claim_id", claim.ClaimID, "reason", exclusion)
}

// RenderReport writes the output documents and prints the summary
func (p *Pipeline) RenderReport(report *model.RunReport) error {
	if path := p.config.Output.CandidatesPath; path != "" {
		if err := p.renderer.WriteCandidates(report, path); err != nil {
			return fmt.Errorf("write candidates: %w", err)
		}
	}
	if path := p.config.Output.ExcludedPath; path != "" {
		if err := p.renderer.WriteExcluded(report, path); err != nil {
			return fmt.Errorf("write exclusions: %w", err)
		}
	}
	p.renderer.RenderSummary(report)
	return nil
}
