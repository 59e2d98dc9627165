package domain

import (
	"time"

	"github.com/ludo-technologies/mockscn/internal/constants"
)

// Mock clone detection defaults
const (
	// DefaultMinSupport is the minimum number of sequences that must share an
	// itemset before it is considered a pattern. A single sequence is never a clone.
	DefaultMinSupport = constants.DefaultMinSupport

	// DefaultAssignmentIterationFactor bounds the cleanup loop of the clone
	// assignment engine to factor * group size iterations.
	DefaultAssignmentIterationFactor = constants.DefaultAssignmentIterationFactor

	// DefaultIncludeNoStub enables the no-stub clustering pass
	DefaultIncludeNoStub = true

	// DefaultSkipInvalidFacts makes undecodable fact files fatal
	DefaultSkipInvalidFacts = false

	// DefaultMaxGoroutines of 0 lets the detector use runtime.NumCPU()
	DefaultMaxGoroutines = 0

	// DefaultDetectionTimeout bounds a whole detection run
	DefaultDetectionTimeout = 5 * time.Minute
)

// DefaultFactIncludePatterns returns the glob patterns that select fact documents
func DefaultFactIncludePatterns() []string {
	return []string{"**/*.mocks.json", "**/*.mocks.yaml", "**/*.mocks.yml"}
}

// HelperMethodKeywords are method name fragments that mark setup helpers
func HelperMethodKeywords() []string {
	return []string{"mock", "init", "create", "setup", "prepare", "build", "initialize", "reset", "configure"}
}

// BoolPtr returns a pointer to the given bool value
func BoolPtr(b bool) *bool {
	return &b
}

// BoolValue safely dereferences a bool pointer, returning defaultVal if nil
func BoolValue(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}
