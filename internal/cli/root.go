package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/claimsift/claimsift/internal/model"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimsift",
	Short: "Claimsift - denied-claim resubmission triage",
	Long: `Claimsift ingests denied-claim exports from heterogeneous EMR systems,
normalizes them into one canonical schema, and classifies each claim as
eligible or ineligible for resubmission.

Eligible claims get a concrete remediation recommendation; excluded
claims get a single, auditable exclusion reason. Ambiguous denial
reasons are resolved by a deterministic fallback classifier whose
confidence is always surfaced alongside the verdict.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("claimsift v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.claimsift/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.claimsift")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CLAIMSIFT_*,
	// e.g. CLAIMSIFT_PIPELINE_MIN_AGE_DAYS for pipeline.min_age_days
	viper.SetEnvPrefix("CLAIMSIFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setConfigDefaults()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setConfigDefaults registers every config key with viper so env
// variables and config-file values survive Unmarshal.
func setConfigDefaults() {
	defaults := model.DefaultConfig()

	viper.SetDefault("pipeline.processing_date", defaults.Pipeline.ProcessingDate)
	viper.SetDefault("pipeline.min_age_days", defaults.Pipeline.MinAgeDays)
	viper.SetDefault("rules.extra_retryable", defaults.Rules.ExtraRetryable)
	viper.SetDefault("rules.extra_not_retryable", defaults.Rules.ExtraNotRetryable)
	viper.SetDefault("llm.provider", defaults.LLM.Provider)
	viper.SetDefault("llm.model", defaults.LLM.Model)
	viper.SetDefault("llm.base_url", defaults.LLM.BaseURL)
	viper.SetDefault("llm.timeout", defaults.LLM.Timeout)
	viper.SetDefault("llm.rate_per_second", defaults.LLM.RatePerSecond)
	viper.SetDefault("llm.burst", defaults.LLM.Burst)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("output.candidates_path", defaults.Output.CandidatesPath)
	viper.SetDefault("output.excluded_path", defaults.Output.ExcludedPath)
	viper.SetDefault("output.verbose", defaults.Output.Verbose)
	viper.SetDefault("output.log_format", defaults.Output.LogFormat)
}

// initLogging configures the process-wide structured logger
func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch logFormat {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
