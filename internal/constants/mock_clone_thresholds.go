package constants

// Mining and assignment thresholds for mock clone detection.
const (
	// DefaultMinSupport is the number of distinct sequences an itemset must
	// appear in to be kept. A single sequence is never a clone.
	DefaultMinSupport = 2

	// MinCloneSequences is the smallest sequence count a clone instance may have.
	// Active itemsets holding fewer sequences are evicted by the cleanup loop.
	MinCloneSequences = 2

	// DefaultAssignmentIterationFactor caps the assignment cleanup loop at
	// factor * group size passes.
	DefaultAssignmentIterationFactor = 2

	// MinNoStubPoolSize is the pool size below which the no-stub grouper stops
	// building clusters for a file.
	MinNoStubPoolSize = 3
)

// CloneKindNames provides human-readable names for clone kinds
var CloneKindNames = map[string]string{
	"mined":   "Shared stubbing",
	"no_stub": "Unstubbed reuse",
}

// CloneKindDescriptions provides detailed descriptions for each clone kind
var CloneKindDescriptions = map[string]string{
	"mined":   "Test methods that stub the same set of calls on one mocked type",
	"no_stub": "Several mocks of one type in one file, used without any stubbing",
}
