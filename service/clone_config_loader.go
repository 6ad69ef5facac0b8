package service

import (
	"fmt"

	"github.com/dupliscan/dupliscan/domain"
	"github.com/dupliscan/dupliscan/internal/config"
)

// CloneConfigurationLoader implements the domain.CloneConfigurationLoader interface
type CloneConfigurationLoader struct{}

// NewCloneConfigurationLoader creates a new clone configuration loader
func NewCloneConfigurationLoader() *CloneConfigurationLoader {
	return &CloneConfigurationLoader{}
}

// LoadCloneConfig loads clone detection configuration from file
func (c *CloneConfigurationLoader) LoadCloneConfig(configPath string) (*domain.CloneRequest, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return c.configToCloneRequest(cfg), nil
}

// SaveCloneConfig saves clone detection configuration to file
func (c *CloneConfigurationLoader) SaveCloneConfig(cloneConfig *domain.CloneRequest, configPath string) error {
	cfg := config.DefaultConfig()
	c.updateConfigFromCloneRequest(cfg, cloneConfig)
	return config.SaveConfig(cfg, configPath)
}

// GetDefaultCloneConfig returns default clone detection configuration,
// preferring a config file discovered in the working directory.
func (c *CloneConfigurationLoader) GetDefaultCloneConfig() *domain.CloneRequest {
	if configFile := config.FindConfigFile("."); configFile != "" {
		if request, err := c.LoadCloneConfig(configFile); err == nil {
			return request
		}
	}
	return domain.DefaultCloneRequest()
}

// configToCloneRequest converts a configuration to a clone request
func (c *CloneConfigurationLoader) configToCloneRequest(cfg *config.Config) *domain.CloneRequest {
	request := domain.DefaultCloneRequest()

	request.Sensitivity = cfg.Detection.Sensitivity
	request.Extensions = cfg.Input.Extensions
	request.IncludePatterns = cfg.Input.IncludePatterns
	request.ExcludePatterns = cfg.Input.ExcludePatterns
	request.Recursive = cfg.Input.Recursive
	request.OutputFormat = domain.OutputFormat(cfg.Output.Format)
	request.SortBy = domain.SortCriteria(cfg.Output.SortBy)
	request.ShowSource = cfg.Output.ShowSource

	return request
}

// updateConfigFromCloneRequest updates a configuration from a clone request
func (c *CloneConfigurationLoader) updateConfigFromCloneRequest(cfg *config.Config, request *domain.CloneRequest) {
	cfg.Detection.Sensitivity = request.Sensitivity
	cfg.Input.Extensions = request.Extensions
	cfg.Input.IncludePatterns = request.IncludePatterns
	cfg.Input.ExcludePatterns = request.ExcludePatterns
	cfg.Input.Recursive = request.Recursive
	cfg.Output.Format = string(request.OutputFormat)
	cfg.Output.SortBy = string(request.SortBy)
	cfg.Output.ShowSource = request.ShowSource
}

// CloneConfigurationLoaderWithFlags loads configuration and merges it with
// command-line values, letting explicitly set flags win over file values.
type CloneConfigurationLoaderWithFlags struct {
	base    *CloneConfigurationLoader
	tracker *config.FlagTracker
}

// NewCloneConfigurationLoaderWithFlags creates a loader aware of explicitly set flags
func NewCloneConfigurationLoaderWithFlags(explicitFlags map[string]bool) *CloneConfigurationLoaderWithFlags {
	return &CloneConfigurationLoaderWithFlags{
		base:    NewCloneConfigurationLoader(),
		tracker: config.NewFlagTrackerWithFlags(explicitFlags),
	}
}

// LoadCloneConfig loads clone detection configuration from file
func (c *CloneConfigurationLoaderWithFlags) LoadCloneConfig(configPath string) (*domain.CloneRequest, error) {
	return c.base.LoadCloneConfig(configPath)
}

// SaveCloneConfig saves clone detection configuration to file
func (c *CloneConfigurationLoaderWithFlags) SaveCloneConfig(cloneConfig *domain.CloneRequest, configPath string) error {
	return c.base.SaveCloneConfig(cloneConfig, configPath)
}

// GetDefaultCloneConfig returns default clone detection configuration
func (c *CloneConfigurationLoaderWithFlags) GetDefaultCloneConfig() *domain.CloneRequest {
	return c.base.GetDefaultCloneConfig()
}

// MergeWithFlags merges a file-derived request with a flag-derived request.
// File values form the base; a flag value overrides only when the user set
// the flag explicitly, except paths and output wiring which always come
// from the command line.
func (c *CloneConfigurationLoaderWithFlags) MergeWithFlags(fileReq, flagReq *domain.CloneRequest) *domain.CloneRequest {
	merged := *fileReq

	merged.Paths = flagReq.Paths
	merged.OutputWriter = flagReq.OutputWriter
	merged.OutputPath = flagReq.OutputPath
	merged.ConfigPath = flagReq.ConfigPath
	merged.Timeout = flagReq.Timeout

	merged.Sensitivity = c.tracker.MergeFloat(merged.Sensitivity, flagReq.Sensitivity, "sensitivity")
	merged.Recursive = c.tracker.MergeBool(merged.Recursive, flagReq.Recursive, "recursive")
	merged.ShowSource = c.tracker.MergeBool(merged.ShowSource, flagReq.ShowSource, "show-source")
	merged.Extensions = c.tracker.MergeStringSlice(merged.Extensions, flagReq.Extensions, "extensions")
	merged.IncludePatterns = c.tracker.MergeStringSlice(merged.IncludePatterns, flagReq.IncludePatterns, "include")
	merged.ExcludePatterns = c.tracker.MergeStringSlice(merged.ExcludePatterns, flagReq.ExcludePatterns, "exclude")

	if c.tracker.WasSet("sort") {
		merged.SortBy = flagReq.SortBy
	}
	if flagReq.OutputFormat != "" {
		merged.OutputFormat = flagReq.OutputFormat
	}

	return &merged
}
