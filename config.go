package stagerange

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// SeedMode selects how the seeds line of an almanac is interpreted
type SeedMode string

const (
	// ModeRanges reads seeds as (start, length) pairs
	ModeRanges SeedMode = "ranges"

	// ModeValues reads every seed as a single value
	ModeValues SeedMode = "values"
)

// ParseSeedMode converts a user supplied string into a SeedMode
func ParseSeedMode(s string) (SeedMode, error) {
	switch SeedMode(s) {
	case ModeRanges, ModeValues:
		return SeedMode(s), nil
	default:
		return "", fmt.Errorf("%w: '%s': must be one of ranges, values", ErrUnknownMode, s)
	}
}

// Config represents the stagerange configuration
type Config struct {
	Input    string         `yaml:"input"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Solve    SolveConfig    `yaml:"solve"`
	Output   OutputConfig   `yaml:"output"`
}

// PipelineConfig represents the checks applied while building stages from an almanac
type PipelineConfig struct {
	// ExpectedStages is the required number of map blocks. 0 accepts any
	// count. Pointer to distinguish between unset (7) and 0.
	ExpectedStages *int `yaml:"expected_stages"`
	// StrictChain requires the chain to start at FirstCategory and end at
	// LastCategory. Pointer to distinguish between unset and false.
	StrictChain   *bool  `yaml:"strict_chain"`
	FirstCategory string `yaml:"first_category"`
	LastCategory  string `yaml:"last_category"`
}

// defaultExpectedStages is the seed-to-location chain length
const defaultExpectedStages = 7

// ExpectedStageCount returns the required number of map blocks, 0 for any
func (p *PipelineConfig) ExpectedStageCount() int {
	if p.ExpectedStages == nil {
		return defaultExpectedStages
	}

	return *p.ExpectedStages
}

// IsStrictChain returns true unless strict_chain: false is set
func (p *PipelineConfig) IsStrictChain() bool {
	return p.StrictChain == nil || *p.StrictChain
}

// SolveConfig represents solve command defaults
type SolveConfig struct {
	DefaultMode SeedMode `yaml:"default_mode"`
	// Workers is the number of parallel runs. 0 means runtime.NumCPU().
	Workers int `yaml:"workers"`
}

// OutputConfig represents terminal and log output settings
type OutputConfig struct {
	Color     *bool  `yaml:"color"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// IsColorEnabled returns true unless color: false is set
func (o *OutputConfig) IsColorEnabled() bool {
	return o.Color == nil || *o.Color
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Check if config file exists
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		// Return default configuration if file doesn't exist
		config := DefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate the configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	// Apply defaults for missing values
	applyDefaults(&config)

	// Expand environment variables
	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	if config.Pipeline.ExpectedStages != nil && *config.Pipeline.ExpectedStages < 0 {
		return fmt.Errorf("%w: pipeline.expected_stages must be non-negative, got %d", ErrConfigValidation, *config.Pipeline.ExpectedStages)
	}

	if config.Solve.DefaultMode != "" {
		if _, err := ParseSeedMode(string(config.Solve.DefaultMode)); err != nil {
			return fmt.Errorf("%w: solve.default_mode: %w", ErrConfigValidation, err)
		}
	}

	if config.Solve.Workers < 0 {
		return fmt.Errorf("%w: solve.workers must be non-negative, got %d", ErrConfigValidation, config.Solve.Workers)
	}

	if config.Output.LogLevel != "" {
		validLevels := map[string]bool{
			"debug":   true,
			"info":    true,
			"warn":    true,
			"warning": true,
			"error":   true,
		}
		if !validLevels[config.Output.LogLevel] {
			return fmt.Errorf("%w: output.log_level '%s' is invalid: must be one of debug, info, warn, warning, error", ErrConfigValidation, config.Output.LogLevel)
		}
	}

	if config.Output.LogFormat != "" {
		validFormats := map[string]bool{
			"text": true,
			"json": true,
		}
		if !validFormats[config.Output.LogFormat] {
			return fmt.Errorf("%w: output.log_format '%s' is invalid: must be one of text, json", ErrConfigValidation, config.Output.LogFormat)
		}
	}

	return nil
}

// boolPtr returns a pointer to a bool value
func boolPtr(b bool) *bool {
	return &b
}

// intPtr returns a pointer to an int value
func intPtr(i int) *int {
	return &i
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Input: "",
		Pipeline: PipelineConfig{
			ExpectedStages: intPtr(defaultExpectedStages),
			StrictChain:    boolPtr(true),
			FirstCategory:  "seed",
			LastCategory:   "location",
		},
		Solve: SolveConfig{
			DefaultMode: ModeRanges,
			Workers:     0,
		},
		Output: OutputConfig{
			Color:     boolPtr(true),
			LogLevel:  "info",
			LogFormat: "text",
		},
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	if config.Pipeline.ExpectedStages == nil {
		config.Pipeline.ExpectedStages = intPtr(defaultExpectedStages)
	}

	if config.Pipeline.FirstCategory == "" {
		config.Pipeline.FirstCategory = "seed"
	}

	if config.Pipeline.LastCategory == "" {
		config.Pipeline.LastCategory = "location"
	}

	if config.Solve.DefaultMode == "" {
		config.Solve.DefaultMode = ModeRanges
	}

	if config.Output.LogLevel == "" {
		config.Output.LogLevel = "info"
	}

	if config.Output.LogFormat == "" {
		config.Output.LogFormat = "text"
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	// Try to load .env file from current directory
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		return os.Getenv(varName)
	})

	s = plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		return os.Getenv(varName)
	})

	return s
}

// expandConfigEnvVars expands environment variables in path-like settings
func expandConfigEnvVars(config *Config) {
	config.Input = expandEnvVars(config.Input)
	config.Pipeline.FirstCategory = expandEnvVars(config.Pipeline.FirstCategory)
	config.Pipeline.LastCategory = expandEnvVars(config.Pipeline.LastCategory)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
