package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/dupliscan/dupliscan/internal/constants"
)

// Default config file names, searched in order
var configFileNames = []string{
	".dupliscan.toml",
	"dupliscan.toml",
	".dupliscan.yaml",
	"dupliscan.yaml",
}

// Config is the process-wide configuration. The detection sensitivity it
// carries is only ever read once per run, at run start; mid-run changes to
// the configuration never affect a run in flight.
type Config struct {
	Detection DetectionConfig `mapstructure:"detection" toml:"detection" yaml:"detection"`
	Input     InputConfig     `mapstructure:"input" toml:"input" yaml:"input"`
	Output    OutputConfig    `mapstructure:"output" toml:"output" yaml:"output"`
}

// DetectionConfig controls classification
type DetectionConfig struct {
	// Sensitivity scales the three base classification ratios, in (0, 1].
	Sensitivity float64 `mapstructure:"sensitivity" toml:"sensitivity" yaml:"sensitivity"`
}

// InputConfig controls source file discovery
type InputConfig struct {
	Extensions      []string `mapstructure:"extensions" toml:"extensions" yaml:"extensions"`
	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns" yaml:"exclude_patterns"`
	Recursive       bool     `mapstructure:"recursive" toml:"recursive" yaml:"recursive"`
}

// OutputConfig controls report generation
type OutputConfig struct {
	Format     string `mapstructure:"format" toml:"format" yaml:"format"`
	Directory  string `mapstructure:"directory" toml:"directory" yaml:"directory"`
	SortBy     string `mapstructure:"sort_by" toml:"sort_by" yaml:"sort_by"`
	ShowSource bool   `mapstructure:"show_source" toml:"show_source" yaml:"show_source"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			Sensitivity: constants.DefaultSensitivity,
		},
		Input: InputConfig{
			Extensions:      []string{".py", ".java"},
			IncludePatterns: []string{},
			ExcludePatterns: []string{},
			Recursive:       true,
		},
		Output: OutputConfig{
			Format:     "text",
			Directory:  "",
			SortBy:     "location",
			ShowSource: false,
		},
	}
}

// Validate checks the configuration for out-of-range values
func (c *Config) Validate() error {
	if c.Detection.Sensitivity <= 0.0 || c.Detection.Sensitivity > constants.MaxSensitivity {
		return fmt.Errorf("detection.sensitivity must be in (0.0, %.1f], got %.3f",
			constants.MaxSensitivity, c.Detection.Sensitivity)
	}
	return nil
}

// LoadConfig loads configuration from the given path, or from the first
// config file discovered in the working directory when path is empty.
// A missing discovery result yields the defaults, not an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = FindConfigFile(".")
		if path == "" {
			return DefaultConfig(), nil
		}
	}

	if strings.HasSuffix(path, ".toml") {
		return LoadTomlConfig(path)
	}

	return loadWithViper(path)
}

// FindConfigFile returns the first config file found in dir, or ""
func FindConfigFile(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// loadWithViper reads a non-TOML config file (YAML) through viper
func loadWithViper(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes the configuration to path. TOML paths go through the
// TOML writer; anything else is written as YAML via viper.
func SaveConfig(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if strings.HasSuffix(path, ".toml") {
		return SaveTomlConfig(config, path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.Set("detection", config.Detection)
	v.Set("input", config.Input)
	v.Set("output", config.Output)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
