package service

import (
	"github.com/ludo-technologies/mockscn/domain"
	"github.com/ludo-technologies/mockscn/internal/config"
)

// MockCloneConfigurationLoader implements the domain.MockCloneConfigurationLoader interface
type MockCloneConfigurationLoader struct {
	loader *config.TomlConfigLoader
}

// NewMockCloneConfigurationLoader creates a new configuration loader
func NewMockCloneConfigurationLoader() *MockCloneConfigurationLoader {
	return &MockCloneConfigurationLoader{loader: config.NewTomlConfigLoader()}
}

// LoadConfig loads .mockscn.toml for path (a config file, or a directory to
// search upward from) and applies MOCKSCN_ environment overrides.
func (l *MockCloneConfigurationLoader) LoadConfig(path string) (*domain.MockCloneRequest, error) {
	cfg, err := l.loader.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	config.ApplyEnvOverrides(cfg, nil)
	if err := cfg.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration from environment", err)
	}
	return cfg.ToRequest(), nil
}

// LoadDefaultConfig loads the configuration found from the working directory,
// falling back to built-in defaults when it cannot be read
func (l *MockCloneConfigurationLoader) LoadDefaultConfig() *domain.MockCloneRequest {
	if req, err := l.LoadConfig("."); err == nil {
		return req
	}
	return domain.DefaultMockCloneRequest()
}

// MergeConfig overlays the set fields of override onto a copy of base.
// Zero values and nil pointers in override leave base untouched. Recursive is
// always taken from base.
func (l *MockCloneConfigurationLoader) MergeConfig(base *domain.MockCloneRequest, override *domain.MockCloneRequest) *domain.MockCloneRequest {
	if base == nil {
		base = domain.DefaultMockCloneRequest()
	}
	merged := *base
	if override == nil {
		return &merged
	}

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	merged.NoOpen = merged.NoOpen || override.NoOpen

	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}
	if override.SkipInvalid != nil {
		merged.SkipInvalid = override.SkipInvalid
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	if override.MinSupport > 0 {
		merged.MinSupport = override.MinSupport
	}
	if override.MinLocReduced > 0 {
		merged.MinLocReduced = override.MinLocReduced
	}
	if override.IncludeNoStub != nil {
		merged.IncludeNoStub = override.IncludeNoStub
	}
	if override.MaxGoroutines > 0 {
		merged.MaxGoroutines = override.MaxGoroutines
	}
	if override.Timeout > 0 {
		merged.Timeout = override.Timeout
	}

	if override.SortBy != "" {
		merged.SortBy = override.SortBy
	}
	merged.ShowDetails = merged.ShowDetails || override.ShowDetails

	return &merged
}
