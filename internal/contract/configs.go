package contract

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/huangsam/integral/schema"
	"github.com/rs/zerolog"
)

// Default values for configuration.
const (
	DefaultResultLimit      = 50
	MaxResultLimit          = 10000
	DefaultPrecision        = 2
	MaxPrecision            = 4
	DefaultWeightFinancial  = 0.4
	DefaultWeightMedia      = 0.3
	DefaultWeightReputation = 0.3
	DefaultLogLevel         = "warn"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a ranking.
// This struct is the "final, validated" config.
type Config struct {
	FinancialPath  string
	MediaPath      string
	ReputationPath string
	Key            string

	// Raw weights as supplied, before rescaling.
	WeightFinancial  float64
	WeightMedia      float64
	WeightReputation float64

	// Weights is the validated and rescaled weight vector.
	Weights schema.Weights

	Vocabulary schema.Vocabulary

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	LogLevel zerolog.Level
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Source fields from rootCmd.PersistentFlags() ---
	Financial  string `mapstructure:"financial"`
	Media      string `mapstructure:"media"`
	Reputation string `mapstructure:"reputation"`
	Key        string `mapstructure:"key"`

	// --- Weight fields ---
	WeightFinancial  float64 `mapstructure:"weight-financial"`
	WeightMedia      float64 `mapstructure:"weight-media"`
	WeightReputation float64 `mapstructure:"weight-reputation"`

	// --- Output fields ---
	OutputFile string `mapstructure:"output-file"`
	Limit      int    `mapstructure:"limit"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	Detail     bool   `mapstructure:"detail"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	// --- History fields ---
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`

	LogLevel string `mapstructure:"log-level"`

	// --- Vocabulary overrides from config file ---
	Vocabulary map[string][]string `mapstructure:"vocabulary"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Vocabulary != nil {
		clone.Vocabulary = c.Vocabulary.Clone()
	}
	return &clone
}

// SourcePath returns the configured path for a metric group.
func (c *Config) SourcePath(group schema.MetricGroup) string {
	switch group {
	case schema.FinancialGroup:
		return c.FinancialPath
	case schema.MediaGroup:
		return c.MediaPath
	case schema.ReputationGroup:
		return c.ReputationPath
	default:
		return ""
	}
}

// HasSources reports whether at least one source path is configured.
func (c *Config) HasSources() bool {
	for _, g := range schema.AllGroups {
		if c.SourcePath(g) != "" {
			return true
		}
	}
	return false
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processWeights(cfg, input); err != nil {
		return err
	}
	return processVocabulary(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the ranking history backend. An empty backend disables history.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(input.AnalysisBackend)))
	if cfg.AnalysisBackend == "" {
		cfg.AnalysisBackend = schema.NoneBackend
	}
	if !schema.ValidDatabaseBackends[cfg.AnalysisBackend] {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	return ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect)
}

// validateSimpleInputs processes and validates all non-weight fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple fields from input -> cfg ---
	cfg.FinancialPath = strings.TrimSpace(input.Financial)
	cfg.MediaPath = strings.TrimSpace(input.Media)
	cfg.ReputationPath = strings.TrimSpace(input.Reputation)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width

	cfg.Key = strings.TrimSpace(input.Key)
	if cfg.Key == "" {
		cfg.Key = schema.DefaultKeyColumn
	}

	colorFlag := input.Color
	if colorFlag == "" {
		colorFlag = "yes"
	}
	colors, err := ParseBoolString(colorFlag)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if !schema.ValidOutputModes[cfg.Output] {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 3. Log level ---
	level := input.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	cfg.LogLevel, err = zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid --log-level value '%s': %w", input.LogLevel, err)
	}
	return nil
}

// processWeights checks each raw weight and builds the rescaled weight vector.
func processWeights(cfg *Config, input *ConfigRawInput) error {
	return RevalidateWeights(cfg, input.WeightFinancial, input.WeightMedia, input.WeightReputation)
}

// RevalidateWeights validates raw group weights and stores them, with the rescaled
// vector, on cfg. It is used by config loading and by MCP requests that override weights.
func RevalidateWeights(cfg *Config, financial, media, reputation float64) error {
	raw := map[schema.MetricGroup]float64{
		schema.FinancialGroup:  financial,
		schema.MediaGroup:      media,
		schema.ReputationGroup: reputation,
	}
	for _, g := range schema.AllGroups {
		w := raw[g]
		if math.IsNaN(w) || w < 0 || w > 1 {
			return fmt.Errorf("weight-%s must be between 0.0 and 1.0 (received %v): %w", g, w, schema.ErrInvalidWeight)
		}
	}

	weights, err := schema.NewWeights(financial, media, reputation)
	if err != nil {
		if errors.Is(err, schema.ErrZeroWeightSum) {
			return fmt.Errorf("at least one weight must be positive: %w", err)
		}
		return err
	}

	cfg.WeightFinancial = financial
	cfg.WeightMedia = media
	cfg.WeightReputation = reputation
	cfg.Weights = weights
	return nil
}

// processVocabulary starts from the default vocabulary and applies per-group overrides.
func processVocabulary(cfg *Config, input *ConfigRawInput) error {
	vocab := schema.DefaultVocabulary()
	for name, patterns := range input.Vocabulary {
		group := schema.MetricGroup(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := vocab[group]; !ok {
			return fmt.Errorf("invalid vocabulary group '%s'. must be financial, media, reputation", name)
		}
		cleaned := make([]string, 0, len(patterns))
		for _, p := range patterns {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, p)
			}
		}
		vocab[group] = cleaned
	}
	cfg.Vocabulary = vocab
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
