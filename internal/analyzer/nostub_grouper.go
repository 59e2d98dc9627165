package analyzer

import (
	"github.com/ludo-technologies/mockscn/domain"
	"github.com/ludo-technologies/mockscn/internal/constants"
)

// NoStubGrouper clusters unstubbed mocks of one type that live in the same
// file. Each cluster takes at most one sequence per test method and per mock
// object, so a cluster stands for several mocks that could be one shared field.
type NoStubGrouper struct{}

// NewNoStubGrouper creates a no-stub grouper
func NewNoStubGrouper() *NoStubGrouper {
	return &NoStubGrouper{}
}

// Group builds no-stub clone instances from the sequences of one
// (mocked class, namespace) group. Sequences with any stubbing are ignored.
func (g *NoStubGrouper) Group(sequences []*domain.MockSequence, mockedClass, namespace string) []domain.MockCloneInstance {
	var fileOrder []string
	byFile := make(map[string][]*domain.MockSequence)
	for _, seq := range sequences {
		if seq.HasStubbing() {
			continue
		}
		if _, ok := byFile[seq.FilePath]; !ok {
			fileOrder = append(fileOrder, seq.FilePath)
		}
		byFile[seq.FilePath] = append(byFile[seq.FilePath], seq)
	}

	var clones []domain.MockCloneInstance
	for _, file := range fileOrder {
		pool := byFile[file]
		for len(pool) >= constants.MinNoStubPoolSize {
			accepted, rest := buildNoStubCluster(pool)
			if len(accepted) == 0 {
				break
			}
			if inst, ok := materializeNoStubClone(accepted, mockedClass, namespace); ok {
				clones = append(clones, inst)
			}
			pool = rest
		}
	}
	return clones
}

// buildNoStubCluster scans the pool once and splits it into accepted and remaining sequences
func buildNoStubCluster(pool []*domain.MockSequence) (accepted, rest []*domain.MockSequence) {
	usedMethods := make(map[string]bool)
	usedMocks := make(map[int]bool)

	for _, seq := range pool {
		if usedMethods[seq.TestMethodName] || usedMocks[seq.MockObjectID] || seq.IsReusable {
			rest = append(rest, seq)
			continue
		}
		usedMethods[seq.TestMethodName] = true
		usedMocks[seq.MockObjectID] = true
		markFirstUsageLine(seq)
		accepted = append(accepted, seq)
	}
	return accepted, rest
}

// markFirstUsageLine marks the first mock-related line that is neither a
// stubbing nor a verification. Shareable statements come first in RawByLine,
// so a helper creation wins over a test-case line above it.
func markFirstUsageLine(seq *domain.MockSequence) {
	for _, line := range seq.RawByLine.Lines() {
		stmt, _ := seq.RawByLine.Get(line)
		if !stmt.IsMockRelated {
			continue
		}
		if stmt.Kind == domain.StatementKindStubbing || stmt.Kind == domain.StatementKindVerification {
			continue
		}
		seq.MarkOverlapLine(line)
		return
	}
}

func materializeNoStubClone(accepted []*domain.MockSequence, mockedClass, namespace string) (domain.MockCloneInstance, bool) {
	mockObjects := make(map[int]bool)
	testCases := make(map[string]bool)
	for _, seq := range accepted {
		mockObjects[seq.MockObjectID] = true
		testCases[seq.TestMethodName] = true
	}

	count := len(mockObjects)
	if count <= 1 {
		return domain.MockCloneInstance{}, false
	}

	inst := domain.MockCloneInstance{
		Kind:                     domain.MockCloneKindNoStub,
		MockedClass:              mockedClass,
		Namespace:                namespace,
		SharedStatements:         []string{},
		Sequences:                accepted,
		SequenceCount:            count,
		TestCaseCount:            len(testCases),
		SharedStatementLineCount: 0,
		LocReduced:               count - 1,
		MockObjectCount:          count,
	}
	inst.ID = CloneFingerprint(&inst)
	return inst, true
}
