package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/claimsift/claimsift/internal/ingest"
	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/pipeline"
)

var (
	alphaPath      string
	betaPath       string
	candidatesPath string
	excludedPath   string
	processingDate string
	minAgeDays     int
	runTimeout     time.Duration
	noCache        bool
	llmProvider    string
	llmModel       string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process EMR exports and flag resubmission candidates",
	Long: `Run processes one or both EMR exports end to end:
- Normalize source records into the canonical claim schema
- Validate structural completeness
- Apply the resubmission eligibility rules in fixed order
- Classify ambiguous denial reasons through the fallback classifier
- Write the candidates and exclusions documents

Example:
  claimsift run --alpha emr_alpha.csv --beta emr_beta.json
  claimsift run --alpha emr_alpha.csv --processing-date 2025-07-30
  claimsift run --beta emr_beta.json --llm-provider openai --llm-model gpt-4o-mini`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Input flags
	runCmd.Flags().StringVar(&alphaPath, "alpha", "", "EMR Alpha CSV export path")
	runCmd.Flags().StringVar(&betaPath, "beta", "", "EMR Beta JSON export path")

	// Output flags
	runCmd.Flags().StringVar(&candidatesPath, "candidates", "resubmission_candidates.json", "candidates output path")
	runCmd.Flags().StringVar(&excludedPath, "excluded", "excluded_claims.json", "exclusions output path")

	// Pipeline flags
	runCmd.Flags().StringVar(&processingDate, "processing-date", "", "reference date for claim age, YYYY-MM-DD (default: today)")
	runCmd.Flags().IntVar(&minAgeDays, "min-age-days", 7, "claims must be strictly older than this many days")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 5*time.Minute, "overall run timeout")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable classification memoization")

	// Fallback classifier flags
	runCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "remote classifier provider for ambiguous reasons (openai, ollama; default: built-in heuristic)")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "", "remote classifier model name")
}

// buildRunConfig resolves the effective configuration: defaults,
// then config file and CLAIMSIFT_* env through viper, then any flag
// the operator set explicitly on this invocation.
func buildRunConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("processing-date") {
		cfg.Pipeline.ProcessingDate = processingDate
	}
	if flags.Changed("min-age-days") {
		cfg.Pipeline.MinAgeDays = minAgeDays
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("candidates") {
		cfg.Output.CandidatesPath = candidatesPath
	}
	if flags.Changed("excluded") {
		cfg.Output.ExcludedPath = excludedPath
	}
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}

	// Credentials come from the environment only, never from the file
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	if alphaPath == "" && betaPath == "" {
		return fmt.Errorf("at least one of --alpha or --beta is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := buildRunConfig(cmd)
	if err != nil {
		return err
	}

	// Read source exports
	var batches []ingest.Batch
	if alphaPath != "" {
		batch, err := ingest.ReadAlphaCSV(alphaPath)
		if err != nil {
			return fmt.Errorf("ingest alpha: %w", err)
		}
		batches = append(batches, batch)
	}
	if betaPath != "" {
		batch, err := ingest.ReadBetaJSON(betaPath)
		if err != nil {
			return fmt.Errorf("ingest beta: %w", err)
		}
		batches = append(batches, batch)
	}

	// Create and run pipeline
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	report, err := p.Run(ctx, batches)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if err := p.RenderReport(report); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
