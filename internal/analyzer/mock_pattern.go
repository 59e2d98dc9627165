package analyzer

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/mockscn/domain"
)

// Creation labels used by the mock pattern summary
const (
	LabelDeclarationAttribute  = "Declaration Attribute"
	LabelAttributeMockCreation = "Attribute Mock Creation"
	LabelGlobalInitInBefore    = "Global Init in @Before"
)

// patternBucket maps a descriptive label to the methods where it occurs,
// preserving first-seen order of both labels and methods.
type patternBucket struct {
	labels  []string
	methods map[string][]string
}

func newPatternBucket() *patternBucket {
	return &patternBucket{methods: make(map[string][]string)}
}

func (b *patternBucket) add(label, methodName string) {
	methods, ok := b.methods[label]
	if !ok {
		b.labels = append(b.labels, label)
	}
	for _, m := range methods {
		if m == methodName {
			return
		}
	}
	b.methods[label] = append(methods, methodName)
}

func (b *patternBucket) has(label string) bool {
	_, ok := b.methods[label]
	return ok
}

// mockPatternSummary is the three-bucket aggregation of a mock's statements
type mockPatternSummary struct {
	creation     *patternBucket
	stubbing     *patternBucket
	verification *patternBucket
}

// SummarizeMockPattern aggregates classified statements into a human-readable
// structural signature of how the mock is created, stubbed and verified.
func SummarizeMockPattern(statements []domain.ClassifiedStatement) string {
	summary := mockPatternSummary{
		creation:     newPatternBucket(),
		stubbing:     newPatternBucket(),
		verification: newPatternBucket(),
	}

	hasFieldCreation := false
	for _, stmt := range statements {
		if stmt.Kind.IsFieldCreation() {
			hasFieldCreation = true
			break
		}
	}

	for _, stmt := range statements {
		switch stmt.Kind {
		case domain.StatementKindStubbing:
			summary.stubbing.add(string(stmt.Locate), stmt.MethodName)
		case domain.StatementKindVerification:
			summary.verification.add(string(stmt.Locate), stmt.MethodName)
		default:
			if label, ok := creationLabel(stmt, hasFieldCreation); ok {
				summary.creation.add(label, stmt.MethodName)
			}
		}
	}

	if len(summary.creation.labels) == 2 &&
		summary.creation.has(LabelDeclarationAttribute) &&
		summary.creation.has(LabelGlobalInitInBefore) {
		merged := newPatternBucket()
		merged.labels = []string{LabelAttributeMockCreation}
		merged.methods[LabelAttributeMockCreation] = nil
		summary.creation = merged
	}

	return summary.format()
}

// creationLabel returns the creation label for a statement, if its kind has one
func creationLabel(stmt domain.ClassifiedStatement, hasFieldCreation bool) (string, bool) {
	switch stmt.Kind {
	case domain.StatementKindFieldDeclaration:
		return LabelDeclarationAttribute, true

	case domain.StatementKindFieldMockCreation, domain.StatementKindFieldSpyCreation:
		return LabelAttributeMockCreation, true

	case domain.StatementKindMethodMockCreation, domain.StatementKindMethodSpyCreation,
		domain.StatementKindAssignmentMock, domain.StatementKindAssignmentSpy:
		if stmt.Locate == domain.LocateBefore {
			return LabelGlobalInitInBefore, true
		}
		if hasFieldCreation {
			return fmt.Sprintf("Lazy-init via %s", stmt.Locate), true
		}
		return fmt.Sprintf("Local Assignment in %s", stmt.Locate), true

	case domain.StatementKindLocalDeclaration:
		where := string(stmt.Locate)
		if stmt.Locate == domain.LocateHelperMethod {
			where = "Helper"
		}
		return fmt.Sprintf("Local Mock Creation in %s", where), true

	case domain.StatementKindFieldInitialization, domain.StatementKindLocalVariableInit,
		domain.StatementKindAssignment, domain.StatementKindReference,
		domain.StatementKindStubbing, domain.StatementKindVerification:
		return "", false
	}
	return "", false
}

func (s mockPatternSummary) format() string {
	var sb strings.Builder
	categories := []struct {
		title  string
		bucket *patternBucket
	}{
		{"Creation", s.creation},
		{"Stubbing", s.stubbing},
		{"Verification", s.verification},
	}

	for _, c := range categories {
		sb.WriteString(c.title + ":\n")
		if len(c.bucket.labels) == 0 {
			sb.WriteString("— None\n")
		}
		for _, label := range c.bucket.labels {
			sb.WriteString("— " + label + "\n")
		}
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}
