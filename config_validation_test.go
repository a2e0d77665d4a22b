package stagerange

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/stagerange/logging"
)

func TestLoadConfig_StrictMode_UnknownKeys(t *testing.T) {
	// Create a temporary config file with unknown keys
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "stagerange.yaml")

	configContent := `
pipeline:
  expected_stages: 7
  unknown_key: "should cause error"
`

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	// Load config should fail due to unknown keys
	_, err = LoadConfig(configPath)
	assert.Error(t, err, "expected error for unknown keys in strict mode")
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "stagerange.yaml")

	configContent := `
pipeline:
  expected_stages: 2
  strict_chain: false
solve:
  default_mode: values
  workers: 4
output:
  color: false
  log_format: json
`

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, 2, config.Pipeline.ExpectedStageCount())
	assert.False(t, config.Pipeline.IsStrictChain())
	assert.Equal(t, ModeValues, config.Solve.DefaultMode)
	assert.Equal(t, 4, config.Solve.Workers)
	assert.False(t, config.Output.IsColorEnabled())
	assert.Equal(t, "json", config.Output.LogFormat)

	// Unset values fall back to defaults
	assert.Equal(t, "seed", config.Pipeline.FirstCategory)
	assert.Equal(t, "location", config.Pipeline.LastCategory)
	assert.Equal(t, "info", config.Output.LogLevel)
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "stagerange.yaml")

	err := os.WriteFile(configPath, []byte("solve:\n  default_mode: pairs\n"), 0644)
	assert.NoError(t, err)

	_, err = LoadConfig(configPath)
	assert.True(t, errors.Is(err, ErrConfigValidation))
	assert.True(t, errors.Is(err, ErrUnknownMode))
	assert.Equal(t, 1, strings.Count(err.Error(), ErrConfigValidation.Error()), err.Error())
	assert.Contains(t, err.Error(), configPath)
}

func TestLoadConfig_PartialFileKeepsStageCount(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "stagerange.yaml")

	err := os.WriteFile(configPath, []byte("solve:\n  default_mode: values\n"), 0644)
	assert.NoError(t, err)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, 7, config.Pipeline.ExpectedStageCount())

	_, err = ParseAlmanac("seeds: 1\nseed-to-location map:\n1 2 3\n", config)
	assert.True(t, errors.Is(err, ErrStageCountMismatch), "got %v", err)
}

func TestLoadConfig_ZeroStageCountAcceptsAny(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "stagerange.yaml")

	err := os.WriteFile(configPath, []byte("pipeline:\n  expected_stages: 0\n"), 0644)
	assert.NoError(t, err)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, 0, config.Pipeline.ExpectedStageCount())

	_, err = ParseAlmanac("seeds: 1\nseed-to-location map:\n1 2 3\n", config)
	assert.NoError(t, err)
}

func TestValidateConfig_LogLevelsMatchLogging(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error"} {
		t.Run(level, func(t *testing.T) {
			assert.NoError(t, validateConfig(&Config{Output: OutputConfig{LogLevel: level}}))

			_, err := logging.ParseLevel(level)
			assert.NoError(t, err)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		message string
	}{
		{
			name:    "negative expected stages",
			config:  &Config{Pipeline: PipelineConfig{ExpectedStages: intPtr(-1)}},
			message: "expected_stages",
		},
		{
			name:    "unknown mode",
			config:  &Config{Solve: SolveConfig{DefaultMode: "pairs"}},
			message: "default_mode",
		},
		{
			name:    "negative workers",
			config:  &Config{Solve: SolveConfig{Workers: -2}},
			message: "workers",
		},
		{
			name:    "invalid log level",
			config:  &Config{Output: OutputConfig{LogLevel: "trace"}},
			message: "log_level",
		},
		{
			name:    "invalid log format",
			config:  &Config{Output: OutputConfig{LogFormat: "xml"}},
			message: "log_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.config)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigValidation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateConfig_Empty(t *testing.T) {
	assert.NoError(t, validateConfig(&Config{}))
	assert.NoError(t, validateConfig(DefaultConfig()))
}
