package analyzer

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/mockscn/domain"
)

// sharedSetupEntity has a field declaration, a setup init, two tests stubbing
// the same call and a third test that only verifies.
func sharedSetupEntity() domain.MockEntity {
	return domain.MockEntity{
		ID:           0,
		VariableName: "a",
		DeclaredType: "A",
		MockedClass:  "A",
		Namespace:    "com.example",
		FilePath:     "ATest.java",
		ClassName:    "ATest",
		Statements: []domain.ClassifiedStatement{
			fact(3, domain.StatementKindFieldDeclaration, domain.FieldDeclarationContext, "@Mock A a;"),
			fact(6, domain.StatementKindAssignmentMock, "setUp", "a = mock(A.class);", "@Before"),
			stubFact(10, "testOne", "when(a.foo(1)).thenReturn(x);", "A.foo(int)"),
			stubFact(20, "testTwo", "when(a.foo(2)).thenReturn(y);", "A.foo(int)"),
			fact(31, domain.StatementKindVerification, "testThree", "verify(a).bar();"),
		},
	}
}

func unstubbedEntities(class, namespace, file string, count int) []domain.MockEntity {
	entities := make([]domain.MockEntity, count)
	for i := range entities {
		entities[i] = domain.MockEntity{
			ID:           i,
			VariableName: fmt.Sprintf("m%d", i),
			MockedClass:  class,
			Namespace:    namespace,
			FilePath:     file,
			ClassName:    "BTest",
			Statements: []domain.ClassifiedStatement{
				fact(10*i+5, domain.StatementKindLocalDeclaration, fmt.Sprintf("test%d", i),
					fmt.Sprintf("%s m%d = mock(%s.class);", class, i, class)),
			},
		}
	}
	return entities
}

func TestMockCloneDetector(t *testing.T) {
	ctx := context.Background()

	t.Run("Shared stubbing forms one mined clone", func(t *testing.T) {
		entities := []domain.MockEntity{sharedSetupEntity()}
		sequences := BuildAllSequences(entities)
		require.Len(t, sequences, 3)

		result, err := NewMockCloneDetector(nil, nil).Detect(ctx, sequences)
		require.NoError(t, err)

		require.Len(t, result.Groups, 1)
		group := result.Groups[0]
		assert.Equal(t, "A", group.MockedClass)
		require.Len(t, group.Instances, 1)

		clone := group.Instances[0]
		assert.Equal(t, domain.MockCloneKindMined, clone.Kind)
		assert.Equal(t, []string{"A.foo(int)"}, clone.SharedStatements)
		assert.Equal(t, 2, clone.SequenceCount)
		assert.Equal(t, "testOne", clone.Sequences[0].TestMethodName)
		assert.Equal(t, "testTwo", clone.Sequences[1].TestMethodName)
		assert.Equal(t, 1, clone.LocReduced)
		assert.Equal(t, 1, result.TotalGroups)
		assert.Equal(t, 1, result.AnalyzedGroups)
		assert.Equal(t, 1, result.Clones())
		assert.Contains(t, entities[0].MockPattern, "Attribute Mock Creation")
	})

	t.Run("Unstubbed mocks in one file form a no-stub clone", func(t *testing.T) {
		sequences := BuildAllSequences(unstubbedEntities("B", "com.example", "BTest.java", 3))

		result, err := NewMockCloneDetector(nil, nil).Detect(ctx, sequences)
		require.NoError(t, err)

		require.Len(t, result.Groups, 1)
		require.Len(t, result.Groups[0].Instances, 1)
		clone := result.Groups[0].Instances[0]
		assert.Equal(t, domain.MockCloneKindNoStub, clone.Kind)
		assert.Equal(t, 3, clone.MockObjectCount)
		assert.Equal(t, 3, clone.SequenceCount)
		assert.Equal(t, 2, clone.LocReduced)
		assert.Equal(t, []int{5}, clone.Sequences[0].OverlapLines)
	})

	t.Run("Helper creation below the test is the overlap line", func(t *testing.T) {
		entities := unstubbedEntities("B", "com.example", "BTest.java", 3)
		for i := range entities {
			entities[i].Statements[0].Kind = domain.StatementKindLocalVariableInit
			entities[i].Statements = append(entities[i].Statements,
				fact(100+10*i, domain.StatementKindMethodMockCreation, "createB", "return mock(B.class);"))
		}
		sequences := BuildAllSequences(entities)
		require.Len(t, sequences, 3)
		assert.Equal(t, []int{100, 5}, sequences[0].RawByLine.Lines())

		result, err := NewMockCloneDetector(nil, nil).Detect(ctx, sequences)
		require.NoError(t, err)

		require.Len(t, result.Groups, 1)
		clone := result.Groups[0].Instances[0]
		assert.Equal(t, domain.MockCloneKindNoStub, clone.Kind)
		assert.Equal(t, []int{100}, clone.Sequences[0].OverlapLines)
		assert.Equal(t, []int{110}, clone.Sequences[1].OverlapLines)
		assert.Equal(t, []int{120}, clone.Sequences[2].OverlapLines)
	})

	t.Run("No-stub pass can be disabled", func(t *testing.T) {
		sequences := BuildAllSequences(unstubbedEntities("B", "com.example", "BTest.java", 3))
		config := DefaultMockCloneDetectorConfig()
		config.IncludeNoStub = false

		result, err := NewMockCloneDetector(config, nil).Detect(ctx, sequences)
		require.NoError(t, err)
		assert.Empty(t, result.Groups)
	})

	t.Run("Missing namespace skips mining only", func(t *testing.T) {
		stubbed := sharedSetupEntity()
		stubbed.Namespace = ""
		entities := append([]domain.MockEntity{stubbed}, unstubbedEntities("C", "", "CTest.java", 3)...)
		for i := range entities {
			entities[i].ID = i
		}
		sequences := BuildAllSequences(entities)

		result, err := NewMockCloneDetector(nil, nil).Detect(ctx, sequences)
		require.NoError(t, err)

		require.Len(t, result.Groups, 1)
		assert.Equal(t, "C", result.Groups[0].MockedClass)
		assert.Equal(t, domain.MockCloneKindNoStub, result.Groups[0].Instances[0].Kind)
	})

	t.Run("Groups are split by namespace and sorted by class", func(t *testing.T) {
		var entities []domain.MockEntity
		entities = append(entities, unstubbedEntities("Zeta", "com.one", "ZTest.java", 3)...)
		entities = append(entities, unstubbedEntities("Alpha", "com.one", "ATest.java", 3)...)
		entities = append(entities, unstubbedEntities("Alpha", "com.two", "ATest2.java", 1)...)
		for i := range entities {
			entities[i].ID = i
		}

		config := DefaultMockCloneDetectorConfig()
		config.MaxGoroutines = 2
		detector := NewMockCloneDetector(config, nil)
		var done atomic.Int32
		detector.SetOnGroupDone(func() { done.Add(1) })

		result, err := detector.Detect(ctx, BuildAllSequences(entities))
		require.NoError(t, err)

		assert.Equal(t, 3, result.TotalGroups)
		assert.Equal(t, 2, result.AnalyzedGroups)
		assert.Equal(t, int32(2), done.Load())
		require.Len(t, result.Groups, 2)
		assert.Equal(t, "Alpha", result.Groups[0].MockedClass)
		assert.Equal(t, "Zeta", result.Groups[1].MockedClass)
	})

	t.Run("Cancelled context stops detection", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		sequences := BuildAllSequences([]domain.MockEntity{sharedSetupEntity()})
		_, err := NewMockCloneDetector(nil, nil).Detect(cancelled, sequences)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Empty input", func(t *testing.T) {
		result, err := NewMockCloneDetector(nil, nil).Detect(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Groups)
		assert.Zero(t, result.TotalGroups)
	})
}

func TestGroupSequences(t *testing.T) {
	sequences := []*domain.MockSequence{
		newTestSequence(0, "A.java", "testA"),
		newTestSequence(1, "A.java", "testB"),
	}
	sequences[1].Namespace = "org.other"
	sequences = append(sequences, newTestSequence(2, "A.java", "testC"))

	groups := GroupSequences(sequences)

	require.Len(t, groups, 2)
	assert.Equal(t, "com.example", groups[0].Namespace)
	assert.Len(t, groups[0].Sequences, 2)
	assert.Equal(t, "org.other", groups[1].Namespace)
	assert.True(t, groups[0].Minable())
	assert.False(t, (&SequenceGroup{MockedClass: "A"}).Minable())
}
