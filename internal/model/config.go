package model

import "time"

// Config is the complete runtime configuration.
// Hierarchy (highest to lowest priority): CLI flags, CLAIMSIFT_* env
// variables, config file (~/.claimsift/config.yaml), defaults.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline" json:"pipeline" mapstructure:"pipeline"`
	Rules    RulesConfig    `yaml:"rules" json:"rules" mapstructure:"rules"`
	LLM      LLMConfig      `yaml:"llm" json:"llm" mapstructure:"llm"`
	Cache    CacheConfig    `yaml:"cache" json:"cache" mapstructure:"cache"`
	Output   OutputConfig   `yaml:"output" json:"output" mapstructure:"output"`
}

// PipelineConfig controls the run itself
type PipelineConfig struct {
	// ProcessingDate is the reference date for claim-age rules,
	// "2006-01-02". Empty means today.
	ProcessingDate string `yaml:"processing_date" json:"processing_date" mapstructure:"processing_date"`

	// MinAgeDays is the resubmission age threshold; a claim must be
	// strictly older than this many days.
	MinAgeDays int `yaml:"min_age_days" json:"min_age_days" mapstructure:"min_age_days"`
}

// RulesConfig extends the built-in denial-reason phrase tables
type RulesConfig struct {
	ExtraRetryable    []string `yaml:"extra_retryable" json:"extra_retryable" mapstructure:"extra_retryable"`
	ExtraNotRetryable []string `yaml:"extra_not_retryable" json:"extra_not_retryable" mapstructure:"extra_not_retryable"`
}

// LLMConfig configures the optional remote fallback classifier
type LLMConfig struct {
	// Provider name: "openai", "ollama", or "" (heuristic only)
	Provider string `yaml:"provider" json:"provider" mapstructure:"provider"`
	Model    string `yaml:"model" json:"model" mapstructure:"model"`
	APIKey   string `yaml:"-" json:"-" mapstructure:"-"`
	BaseURL  string `yaml:"base_url" json:"base_url" mapstructure:"base_url"`

	// Timeout for a single classification call, seconds
	Timeout int `yaml:"timeout" json:"timeout" mapstructure:"timeout"`

	// RatePerSecond / Burst throttle remote calls
	RatePerSecond float64 `yaml:"rate_per_second" json:"rate_per_second" mapstructure:"rate_per_second"`
	Burst         int     `yaml:"burst" json:"burst" mapstructure:"burst"`
}

// CacheConfig controls classification memoization
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls the output documents and summary
type OutputConfig struct {
	CandidatesPath string `yaml:"candidates_path" json:"candidates_path" mapstructure:"candidates_path"`
	ExcludedPath   string `yaml:"excluded_path" json:"excluded_path" mapstructure:"excluded_path"`
	Verbose        bool   `yaml:"verbose" json:"verbose" mapstructure:"verbose"`
	LogFormat      string `yaml:"log_format" json:"log_format" mapstructure:"log_format"` // "text" or "json"
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			MinAgeDays: 7,
		},
		LLM: LLMConfig{
			Provider:      "", // Disabled by default
			Timeout:       30,
			RatePerSecond: 2,
			Burst:         5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Output: OutputConfig{
			CandidatesPath: "resubmission_candidates.json",
			ExcludedPath:   "excluded_claims.json",
			LogFormat:      "text",
		},
	}
}

// ResolveProcessingDate parses the configured processing date, falling
// back to the current day when unset.
func (c *Config) ResolveProcessingDate(now time.Time) (time.Time, error) {
	if c.Pipeline.ProcessingDate == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", c.Pipeline.ProcessingDate)
}
