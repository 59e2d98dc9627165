package analyzer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/mockscn/domain"
)

// newTestSequence builds a sequence whose abstracted statements are stubs, one per line
func newTestSequence(mockID int, file, method string, stubs ...string) *domain.MockSequence {
	entity := &domain.MockEntity{
		ID:           mockID,
		VariableName: fmt.Sprintf("mock%d", mockID),
		MockedClass:  "Repo",
		Namespace:    "com.example",
		FilePath:     file,
		ClassName:    "RepoTest",
	}
	seq := domain.NewMockSequence(entity, method)
	for i, stub := range stubs {
		line := 10 + i
		stmt := stubFact(line, method, "when(...)", stub)
		stmt.Locate = domain.LocateTestCase
		stmt.AbstractedForm = stub
		seq.TestLines.Set(line, stmt.RawText)
		seq.RawByLine.Set(line, stmt)
		seq.AbstractedStatements.Set(line, stub)
	}
	return seq
}

func tableOf(entries ...FrequentItemset) *ItemsetTable {
	table := newItemsetTable()
	for _, e := range entries {
		table.add(e)
	}
	return table
}

func assertAtMostOneClone(t *testing.T, clones []domain.MockCloneInstance) {
	t.Helper()
	seen := make(map[*domain.MockSequence]bool)
	for _, c := range clones {
		assert.GreaterOrEqual(t, c.SequenceCount, 2, "singleton clone %v", c.SharedStatements)
		assert.Equal(t, len(c.SharedStatements)*(c.SequenceCount-1), c.LocReduced)
		for _, seq := range c.Sequences {
			assert.False(t, seen[seq], "sequence %s assigned twice", seq.TestMethodName)
			seen[seq] = true
		}
	}
}

func TestCloneAssigner(t *testing.T) {
	assigner := NewCloneAssigner(0, nil)

	t.Run("Highest score claims first", func(t *testing.T) {
		group := []*domain.MockSequence{
			newTestSequence(0, "A.java", "testA", "x", "y"),
			newTestSequence(1, "A.java", "testB", "x", "y"),
			newTestSequence(2, "A.java", "testC", "x", "y"),
			newTestSequence(3, "A.java", "testD", "x"),
		}
		table := NewAprioriMiner(2).Mine([][]string{
			group[0].Transaction(), group[1].Transaction(), group[2].Transaction(), group[3].Transaction(),
		})

		result := assigner.Assign(table, group, "Repo", "com.example")

		require.Len(t, result.Clones, 1)
		clone := result.Clones[0]
		assert.Equal(t, []string{"x", "y"}, clone.SharedStatements)
		assert.Equal(t, 3, clone.SequenceCount)
		assert.Equal(t, 4, clone.LocReduced)
		assert.Equal(t, 2, clone.SharedStatementLineCount)
		assert.Equal(t, 3, clone.TestCaseCount)
		assert.Equal(t, 3, clone.MockObjectCount)
		assert.Equal(t, domain.MockCloneKindMined, clone.Kind)
		assert.NotEmpty(t, clone.ID)
		assert.True(t, result.Converged)
		assertAtMostOneClone(t, result.Clones)
	})

	t.Run("Single-claim itemset is evicted and never reinstated", func(t *testing.T) {
		group := make([]*domain.MockSequence, 4)
		for i := range group {
			group[i] = newTestSequence(i, "A.java", fmt.Sprintf("test%d", i))
		}
		table := tableOf(
			FrequentItemset{Items: Itemset{"a", "b"}, Support: []int{0, 1, 2}},
			FrequentItemset{Items: Itemset{"c"}, Support: []int{2, 3}},
		)

		result := assigner.Assign(table, group, "Repo", "com.example")

		require.Len(t, result.Clones, 1)
		assert.Equal(t, []string{"a", "b"}, result.Clones[0].SharedStatements)
		assert.Equal(t, []*domain.MockSequence{group[0], group[1], group[2]}, result.Clones[0].Sequences)
		assertAtMostOneClone(t, result.Clones)
	})

	t.Run("Iteration cap stops cleanup without clones", func(t *testing.T) {
		group := []*domain.MockSequence{newTestSequence(0, "A.java", "testA")}
		table := tableOf(FrequentItemset{Items: Itemset{"a"}, Support: []int{0}})

		result := NewCloneAssigner(1, nil).Assign(table, group, "Repo", "com.example")

		assert.False(t, result.Converged)
		assert.Equal(t, 1, result.Iterations)
		assert.Empty(t, result.Clones)
	})

	t.Run("Freed sequence moves to the next surviving itemset", func(t *testing.T) {
		group := make([]*domain.MockSequence, 5)
		for i := range group {
			group[i] = newTestSequence(i, "A.java", fmt.Sprintf("test%d", i))
		}
		table := tableOf(
			FrequentItemset{Items: Itemset{"a", "b", "c"}, Support: []int{0, 1}},
			FrequentItemset{Items: Itemset{"a", "d"}, Support: []int{1, 2}},
			FrequentItemset{Items: Itemset{"e"}, Support: []int{2, 3, 4}},
		)

		result := assigner.Assign(table, group, "Repo", "com.example")

		require.Len(t, result.Clones, 2)
		assert.Equal(t, []string{"a", "b", "c"}, result.Clones[0].SharedStatements)
		assert.Equal(t, []*domain.MockSequence{group[0], group[1]}, result.Clones[0].Sequences)
		assert.Equal(t, []string{"e"}, result.Clones[1].SharedStatements)
		assert.Equal(t, []*domain.MockSequence{group[2], group[3], group[4]}, result.Clones[1].Sequences)
		assert.Equal(t, 2, result.Clones[1].LocReduced)
		assertAtMostOneClone(t, result.Clones)
	})

	t.Run("Equal scores keep table order", func(t *testing.T) {
		group := make([]*domain.MockSequence, 4)
		for i := range group {
			group[i] = newTestSequence(i, "A.java", fmt.Sprintf("test%d", i))
		}
		table := tableOf(
			FrequentItemset{Items: Itemset{"p"}, Support: []int{0, 1, 2}},
			FrequentItemset{Items: Itemset{"q", "r"}, Support: []int{1, 2}},
			FrequentItemset{Items: Itemset{"s"}, Support: []int{3, 2}},
		)

		result := assigner.Assign(table, group, "Repo", "com.example")

		require.Len(t, result.Clones, 1)
		assert.Equal(t, []string{"p"}, result.Clones[0].SharedStatements)
	})

	t.Run("Test cases count distinct method and class pairs", func(t *testing.T) {
		group := []*domain.MockSequence{
			newTestSequence(0, "A.java", "testA", "x"),
			newTestSequence(1, "A.java", "testA", "x"),
			newTestSequence(2, "A.java", "testB", "x"),
		}
		table := NewAprioriMiner(2).Mine([][]string{
			group[0].Transaction(), group[1].Transaction(), group[2].Transaction(),
		})

		result := assigner.Assign(table, group, "Repo", "com.example")

		require.Len(t, result.Clones, 1)
		assert.Equal(t, 3, result.Clones[0].SequenceCount)
		assert.Equal(t, 2, result.Clones[0].TestCaseCount)
	})

	t.Run("Empty table yields no clones", func(t *testing.T) {
		group := []*domain.MockSequence{newTestSequence(0, "A.java", "testA")}
		result := assigner.Assign(newItemsetTable(), group, "Repo", "com.example")
		assert.Empty(t, result.Clones)
	})
}

func TestCloneFingerprint(t *testing.T) {
	group := []*domain.MockSequence{
		newTestSequence(0, "A.java", "testA", "x"),
		newTestSequence(1, "A.java", "testB", "x"),
	}
	table := NewAprioriMiner(2).Mine([][]string{group[0].Transaction(), group[1].Transaction()})

	first := NewCloneAssigner(2, nil).Assign(table, group, "Repo", "com.example")
	second := NewCloneAssigner(2, nil).Assign(table, group, "Repo", "com.example")
	require.Len(t, first.Clones, 1)
	assert.Equal(t, first.Clones[0].ID, second.Clones[0].ID)

	other := first.Clones[0]
	other.Namespace = "org.example"
	assert.NotEqual(t, first.Clones[0].ID, CloneFingerprint(&other))
}
