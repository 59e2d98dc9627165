package analyzer

import (
	"github.com/ludo-technologies/mockscn/domain"
)

// BuildSequences splits a classified mock entity into one sequence per test
// method. Statements at shareable locates (fields, setup, teardown, helpers)
// are copied into every sequence; test-case statements are kept only when
// they are adjacent to a non-reference statement.
func BuildSequences(entity *domain.MockEntity) []*domain.MockSequence {
	linesToKeep := make(map[int]bool)
	for _, stmt := range entity.Statements {
		if stmt.Kind != domain.StatementKindReference {
			linesToKeep[stmt.Line-1] = true
			linesToKeep[stmt.Line] = true
			linesToKeep[stmt.Line+1] = true
		}
	}

	var shareable []domain.ClassifiedStatement
	var methodOrder []string
	byMethod := make(map[string][]domain.ClassifiedStatement)

	for _, stmt := range entity.Statements {
		switch {
		case stmt.Locate.IsShareable():
			shareable = append(shareable, stmt)
		case stmt.Locate == domain.LocateTestCase && linesToKeep[stmt.Line]:
			if _, seen := byMethod[stmt.MethodName]; !seen {
				methodOrder = append(methodOrder, stmt.MethodName)
			}
			byMethod[stmt.MethodName] = append(byMethod[stmt.MethodName], stmt)
		}
	}

	sequences := make([]*domain.MockSequence, 0, len(methodOrder))
	for _, method := range methodOrder {
		seq := domain.NewMockSequence(entity, method)

		for _, stmt := range shareable {
			addToSequence(seq, stmt)
		}
		for _, stmt := range byMethod[method] {
			if seq.TestMethodRawText == "" {
				seq.TestMethodRawText = stmt.MethodRawText
			}
			addToSequence(seq, stmt)
		}

		sequences = append(sequences, seq)
	}

	return sequences
}

func addToSequence(seq *domain.MockSequence, stmt domain.ClassifiedStatement) {
	if stmt.Locate.IsShareable() {
		seq.ShareableLines.Set(stmt.Line, stmt.RawText)
	} else {
		seq.TestLines.Set(stmt.Line, stmt.RawText)
	}

	seq.RawByLine.Set(stmt.Line, stmt)

	if stmt.Kind == domain.StatementKindStubbing {
		seq.AbstractedStatements.Set(stmt.Line, stmt.AbstractedForm)
	}
}

// BuildAllSequences classifies every entity and flattens their sequences in
// input order.
func BuildAllSequences(entities []domain.MockEntity) []*domain.MockSequence {
	var all []*domain.MockSequence
	for i := range entities {
		ClassifyEntity(&entities[i])
		all = append(all, BuildSequences(&entities[i])...)
	}
	return all
}
