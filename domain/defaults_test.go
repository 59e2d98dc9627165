package domain

import (
	"testing"

	"github.com/bmatcuk/doublestar/v4"
)

// TestDefaultValueConsistency ensures all default values are properly defined
// and maintain expected relationships
func TestDefaultValueConsistency(t *testing.T) {
	t.Run("Support needs at least two sequences", func(t *testing.T) {
		if DefaultMinSupport < 2 {
			t.Errorf("DefaultMinSupport (%d) should be >= 2", DefaultMinSupport)
		}
	})

	t.Run("Assignment loop is bounded", func(t *testing.T) {
		if DefaultAssignmentIterationFactor < 1 {
			t.Errorf("DefaultAssignmentIterationFactor (%d) should be >= 1", DefaultAssignmentIterationFactor)
		}
	})

	t.Run("Default request validates", func(t *testing.T) {
		req := DefaultMockCloneRequest()
		req.Paths = []string{"."}
		if err := req.Validate(); err != nil {
			t.Errorf("default request should be valid: %v", err)
		}
		if !BoolValue(req.IncludeNoStub, false) {
			t.Error("no-stub clustering should be enabled by default")
		}
		if BoolValue(req.SkipInvalid, true) {
			t.Error("invalid fact files should be fatal by default")
		}
	})

	t.Run("Include patterns select fact documents only", func(t *testing.T) {
		matches := func(path string) bool {
			for _, pattern := range DefaultFactIncludePatterns() {
				if ok, _ := doublestar.Match(pattern, path); ok {
					return true
				}
			}
			return false
		}

		for _, path := range []string{"a.mocks.json", "svc/b.mocks.yaml", "x/y/c.mocks.yml"} {
			if !matches(path) {
				t.Errorf("expected %s to match the default include patterns", path)
			}
		}
		for _, path := range []string{"package.json", "svc/config.yaml", "a.mocks.txt"} {
			if matches(path) {
				t.Errorf("expected %s not to match the default include patterns", path)
			}
		}
	})
}

func TestBoolHelpers(t *testing.T) {
	if BoolValue(nil, true) != true {
		t.Error("nil pointer should yield the default")
	}
	if BoolValue(BoolPtr(false), true) != false {
		t.Error("set pointer should win over the default")
	}
}
