package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// MockscnTomlConfig represents the structure of .mockscn.toml
type MockscnTomlConfig struct {
	Input     MockscnTomlInputConfig     `toml:"input"`
	Detection MockscnTomlDetectionConfig `toml:"detection"`
	Output    MockscnTomlOutputConfig    `toml:"output"`
	Log       MockscnTomlLogConfig       `toml:"log"`
}

type MockscnTomlInputConfig struct {
	Paths           []string `toml:"paths"`
	Recursive       *bool    `toml:"recursive"` // pointer to detect unset
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	SkipInvalid     *bool    `toml:"skip_invalid"` // pointer to detect unset
}

type MockscnTomlDetectionConfig struct {
	MinSupport     *int  `toml:"min_support"`
	MinLocReduced  *int  `toml:"min_loc_reduced"`
	IncludeNoStub  *bool `toml:"include_no_stub"` // pointer to detect unset
	MaxGoroutines  *int  `toml:"max_goroutines"`
	TimeoutSeconds *int  `toml:"timeout_seconds"`
}

type MockscnTomlOutputConfig struct {
	Format      string `toml:"format"`
	Directory   string `toml:"directory"`
	SortBy      string `toml:"sort_by"`
	ShowDetails *bool  `toml:"show_details"` // pointer to detect unset
}

type MockscnTomlLogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// TomlConfigLoader handles .mockscn.toml discovery and loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads configuration for a target path. startDir may be a
// directory, a file inside the project, or a .toml file to load directly.
// Defaults are returned when no configuration file exists.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*MockscnConfig, error) {
	if startDir == "" {
		startDir = "."
	}

	if info, err := os.Stat(startDir); err == nil && !info.IsDir() {
		if filepath.Ext(startDir) == ".toml" {
			return l.LoadConfigFile(startDir)
		}
		startDir = filepath.Dir(startDir)
	}

	configPath, err := l.FindConfigFile(startDir)
	if err != nil {
		return DefaultMockscnConfig(), nil
	}
	return l.LoadConfigFile(configPath)
}

// LoadConfigFile parses one configuration file and merges it over defaults
func (l *TomlConfigLoader) LoadConfigFile(path string) (*MockscnConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var tomlCfg MockscnTomlConfig
	if err := toml.Unmarshal(data, &tomlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := DefaultMockscnConfig()
	l.mergeInputSection(cfg, &tomlCfg.Input)
	l.mergeDetectionSection(cfg, &tomlCfg.Detection)
	l.mergeOutputSection(cfg, &tomlCfg.Output)
	l.mergeLogSection(cfg, &tomlCfg.Log)
	cfg.ConfigFile = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile walks up the directory tree to find .mockscn.toml
func (l *TomlConfigLoader) FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		dir = startDir
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

func (l *TomlConfigLoader) mergeInputSection(cfg *MockscnConfig, input *MockscnTomlInputConfig) {
	if len(input.Paths) > 0 {
		cfg.Paths = input.Paths
	}
	if input.Recursive != nil {
		cfg.Recursive = *input.Recursive
	}
	if len(input.IncludePatterns) > 0 {
		cfg.IncludePatterns = input.IncludePatterns
	}
	if len(input.ExcludePatterns) > 0 {
		cfg.ExcludePatterns = input.ExcludePatterns
	}
	if input.SkipInvalid != nil {
		cfg.SkipInvalid = *input.SkipInvalid
	}
}

func (l *TomlConfigLoader) mergeDetectionSection(cfg *MockscnConfig, detection *MockscnTomlDetectionConfig) {
	if detection.MinSupport != nil {
		cfg.MinSupport = *detection.MinSupport
	}
	if detection.MinLocReduced != nil {
		cfg.MinLocReduced = *detection.MinLocReduced
	}
	if detection.IncludeNoStub != nil {
		cfg.IncludeNoStub = *detection.IncludeNoStub
	}
	if detection.MaxGoroutines != nil {
		cfg.MaxGoroutines = *detection.MaxGoroutines
	}
	if detection.TimeoutSeconds != nil {
		cfg.TimeoutSeconds = *detection.TimeoutSeconds
	}
}

func (l *TomlConfigLoader) mergeOutputSection(cfg *MockscnConfig, output *MockscnTomlOutputConfig) {
	if output.Format != "" {
		cfg.OutputFormat = output.Format
	}
	if output.Directory != "" {
		cfg.OutputDirectory = output.Directory
	}
	if output.SortBy != "" {
		cfg.SortBy = output.SortBy
	}
	if output.ShowDetails != nil {
		cfg.ShowDetails = *output.ShowDetails
	}
}

func (l *TomlConfigLoader) mergeLogSection(cfg *MockscnConfig, log *MockscnTomlLogConfig) {
	if log.Level != "" {
		cfg.LogLevel = log.Level
	}
	if log.File != "" {
		cfg.LogFile = log.File
	}
}
