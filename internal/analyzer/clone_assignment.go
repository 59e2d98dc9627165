package analyzer

import (
	"log/slog"
	"sort"

	"github.com/ludo-technologies/mockscn/domain"
	"github.com/ludo-technologies/mockscn/internal/constants"
)

// AssignmentResult is the outcome of assigning sequences to mined itemsets
type AssignmentResult struct {
	Clones []domain.MockCloneInstance

	// Iterations is the number of cleanup passes that ran
	Iterations int

	// Converged is false when the iteration cap stopped the cleanup loop
	Converged bool
}

// CloneAssigner greedily assigns each sequence of a group to at most one
// frequent itemset, then evicts itemsets left with fewer than two sequences
// and lets the survivors pick up the freed sequences.
type CloneAssigner struct {
	iterationFactor int
	logger          *slog.Logger
}

// NewCloneAssigner creates an assigner whose cleanup loop runs at most
// iterationFactor * len(group) passes.
func NewCloneAssigner(iterationFactor int, logger *slog.Logger) *CloneAssigner {
	if iterationFactor <= 0 {
		iterationFactor = constants.DefaultAssignmentIterationFactor
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CloneAssigner{iterationFactor: iterationFactor, logger: logger}
}

// Assign runs the assignment engine for one (mocked class, namespace) group.
// Support indices in table refer to positions in group.
func (a *CloneAssigner) Assign(table *ItemsetTable, group []*domain.MockSequence, mockedClass, namespace string) AssignmentResult {
	patterns := table.Entries()
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Score() > patterns[j].Score()
	})

	// sequence index -> pattern index
	assigned := make(map[int]int)
	// pattern index -> claimed sequence indices
	active := make(map[int]map[int]bool)
	var activeOrder []int

	for p, pattern := range patterns {
		claimed := make(map[int]bool)
		for _, idx := range pattern.Support {
			if _, taken := assigned[idx]; !taken {
				assigned[idx] = p
				claimed[idx] = true
			}
		}
		if len(claimed) > 0 {
			active[p] = claimed
			activeOrder = append(activeOrder, p)
		}
	}

	maxIterations := a.iterationFactor * len(group)
	iterations := 0
	changed := true

	for changed && iterations < maxIterations {
		iterations++
		changed = false

		var evict []int
		for _, p := range activeOrder {
			if claimed, ok := active[p]; ok && len(claimed) < constants.MinCloneSequences {
				evict = append(evict, p)
			}
		}
		for _, p := range evict {
			for idx := range active[p] {
				delete(assigned, idx)
			}
			delete(active, p)
			changed = true
		}

		// Evicted patterns are never reinstated
		for p, pattern := range patterns {
			claimed, ok := active[p]
			if !ok {
				continue
			}
			for _, idx := range pattern.Support {
				if _, taken := assigned[idx]; !taken {
					assigned[idx] = p
					claimed[idx] = true
					changed = true
				}
			}
		}
	}

	if changed {
		a.logger.Debug("clone assignment stopped at iteration cap",
			"mocked_class", mockedClass,
			"namespace", namespace,
			"iterations", iterations)
	}

	clones := make([]domain.MockCloneInstance, 0, len(active))
	for _, p := range activeOrder {
		claimed, ok := active[p]
		if !ok {
			continue
		}
		clones = append(clones, materializeMinedClone(patterns[p].Items, claimed, group, mockedClass, namespace))
	}

	return AssignmentResult{
		Clones:     clones,
		Iterations: iterations,
		Converged:  !changed,
	}
}

func materializeMinedClone(items Itemset, claimed map[int]bool, group []*domain.MockSequence, mockedClass, namespace string) domain.MockCloneInstance {
	indices := make([]int, 0, len(claimed))
	for idx := range claimed {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	sequences := make([]*domain.MockSequence, 0, len(indices))
	testCases := make(map[string]bool)
	mockObjects := make(map[int]bool)
	for _, idx := range indices {
		seq := group[idx]
		sequences = append(sequences, seq)
		testCases[seq.TestMethodName+"::"+seq.ClassName] = true
		mockObjects[seq.MockObjectID] = true
	}

	shared := append([]string(nil), items...)
	inst := domain.MockCloneInstance{
		Kind:                     domain.MockCloneKindMined,
		MockedClass:              mockedClass,
		Namespace:                namespace,
		SharedStatements:         shared,
		Sequences:                sequences,
		SequenceCount:            len(sequences),
		TestCaseCount:            len(testCases),
		SharedStatementLineCount: len(shared),
		LocReduced:               len(shared) * (len(sequences) - 1),
		MockObjectCount:          len(mockObjects),
	}
	inst.ID = CloneFingerprint(&inst)
	return inst
}
