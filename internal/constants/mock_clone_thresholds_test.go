package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockCloneThresholds(t *testing.T) {
	t.Run("Constants have expected values", func(t *testing.T) {
		assert.Equal(t, 2, DefaultMinSupport)
		assert.Equal(t, 2, MinCloneSequences)
		assert.Equal(t, 2, DefaultAssignmentIterationFactor)
		assert.Equal(t, 3, MinNoStubPoolSize)
	})

	t.Run("Min support never admits singleton clones", func(t *testing.T) {
		assert.GreaterOrEqual(t, DefaultMinSupport, MinCloneSequences)
	})
}

func TestCloneKindNames(t *testing.T) {
	for _, kind := range []string{"mined", "no_stub"} {
		t.Run(kind, func(t *testing.T) {
			assert.NotEmpty(t, CloneKindNames[kind])
			assert.NotEmpty(t, CloneKindDescriptions[kind])
		})
	}
}
