package config

import (
	"fmt"
	"time"

	"github.com/ludo-technologies/mockscn/domain"
)

// ConfigFileName is the dedicated configuration file searched for upward from the target directory
const ConfigFileName = ".mockscn.toml"

// Default output and log locations
const (
	DefaultOutputDirectory = ".mockscn/reports"
	DefaultLogFile         = ".mockscn.log"
	DefaultLogLevel        = "info"
)

// MockscnConfig is the resolved configuration with every default applied
type MockscnConfig struct {
	// Input
	Paths           []string
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
	SkipInvalid     bool

	// Detection
	MinSupport     int
	MinLocReduced  int
	IncludeNoStub  bool
	MaxGoroutines  int
	TimeoutSeconds int

	// Output
	OutputFormat    string
	OutputDirectory string
	SortBy          string
	ShowDetails     bool

	// Log
	LogLevel string
	LogFile  string

	// ConfigFile is the file the values were read from, empty for defaults
	ConfigFile string
}

// DefaultMockscnConfig returns the configuration used when no file is found
func DefaultMockscnConfig() *MockscnConfig {
	return &MockscnConfig{
		Recursive:       true,
		IncludePatterns: domain.DefaultFactIncludePatterns(),
		ExcludePatterns: []string{},
		SkipInvalid:     domain.DefaultSkipInvalidFacts,

		MinSupport:     domain.DefaultMinSupport,
		MinLocReduced:  0,
		IncludeNoStub:  domain.DefaultIncludeNoStub,
		MaxGoroutines:  domain.DefaultMaxGoroutines,
		TimeoutSeconds: int(domain.DefaultDetectionTimeout / time.Second),

		OutputFormat:    string(domain.OutputFormatText),
		OutputDirectory: DefaultOutputDirectory,
		SortBy:          string(domain.MockCloneSortByLocReduced),
		ShowDetails:     false,

		LogLevel: DefaultLogLevel,
		LogFile:  DefaultLogFile,
	}
}

// Validate checks value ranges and enumerations
func (c *MockscnConfig) Validate() error {
	if c.MinSupport < 2 {
		return fmt.Errorf("detection.min_support must be at least 2, got %d", c.MinSupport)
	}
	if c.MinLocReduced < 0 {
		return fmt.Errorf("detection.min_loc_reduced must be >= 0, got %d", c.MinLocReduced)
	}
	if c.MaxGoroutines < 0 {
		return fmt.Errorf("detection.max_goroutines must be >= 0, got %d", c.MaxGoroutines)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("detection.timeout_seconds must be >= 0, got %d", c.TimeoutSeconds)
	}

	switch domain.OutputFormat(c.OutputFormat) {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML,
		domain.OutputFormatCSV, domain.OutputFormatHTML:
	default:
		return fmt.Errorf("output.format must be one of text, json, yaml, csv, html, got %q", c.OutputFormat)
	}

	switch domain.MockCloneSortCriteria(c.SortBy) {
	case domain.MockCloneSortByLocReduced, domain.MockCloneSortBySize, domain.MockCloneSortByClass:
	default:
		return fmt.Errorf("output.sort_by must be one of loc, size, class, got %q", c.SortBy)
	}

	return nil
}

// Timeout returns the detection timeout as a duration (0 = none)
func (c *MockscnConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ToRequest converts the configuration into a detection request
func (c *MockscnConfig) ToRequest() *domain.MockCloneRequest {
	return &domain.MockCloneRequest{
		Paths:           append([]string(nil), c.Paths...),
		OutputFormat:    domain.OutputFormat(c.OutputFormat),
		Recursive:       c.Recursive,
		IncludePatterns: append([]string(nil), c.IncludePatterns...),
		ExcludePatterns: append([]string(nil), c.ExcludePatterns...),
		SkipInvalid:     domain.BoolPtr(c.SkipInvalid),
		ConfigPath:      c.ConfigFile,
		MinSupport:      c.MinSupport,
		MinLocReduced:   c.MinLocReduced,
		IncludeNoStub:   domain.BoolPtr(c.IncludeNoStub),
		MaxGoroutines:   c.MaxGoroutines,
		Timeout:         c.Timeout(),
		SortBy:          domain.MockCloneSortCriteria(c.SortBy),
		ShowDetails:     c.ShowDetails,
	}
}
