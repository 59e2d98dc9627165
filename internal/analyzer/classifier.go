package analyzer

import (
	"strings"

	"github.com/ludo-technologies/mockscn/domain"
)

// Classify determines the structural role of a statement from its enclosing
// method name and annotations. Rules are evaluated in priority order and the
// first match wins. Missing context falls through to LocateOtherMethods.
func Classify(methodName string, annotations []string) domain.Locate {
	lowerName := strings.ToLower(methodName)

	if strings.Contains(lowerName, "test") {
		return domain.LocateTestCase
	}

	for _, ann := range annotations {
		if strings.Contains(strings.ToLower(strings.ReplaceAll(ann, "@", "")), "test") {
			return domain.LocateTestCase
		}
	}

	if annotationContains(annotations, "before") {
		return domain.LocateBefore
	}

	if annotationContains(annotations, "after") {
		return domain.LocateAfter
	}

	for _, kw := range domain.HelperMethodKeywords() {
		if strings.Contains(lowerName, kw) {
			return domain.LocateHelperMethod
		}
	}

	if methodName == domain.FieldDeclarationContext {
		return domain.LocateAttribute
	}

	if annotationContains(annotations, "override") {
		return domain.LocateOverride
	}

	return domain.LocateOtherMethods
}

func annotationContains(annotations []string, keyword string) bool {
	for _, ann := range annotations {
		if strings.Contains(strings.ToLower(ann), keyword) {
			return true
		}
	}
	return false
}

// ClassifyStatement derives a ClassifiedStatement from a fact. The input is not
// modified. A missing kind is normalized to a plain reference.
func ClassifyStatement(fact domain.StatementFact) domain.ClassifiedStatement {
	fact.Kind = domain.ParseStatementKind(string(fact.Kind))
	if len(fact.MethodAnnotations) > 0 {
		fact.MethodAnnotations = append([]string(nil), fact.MethodAnnotations...)
	}

	stmt := domain.ClassifiedStatement{
		StatementFact: fact,
		Locate:        safeClassify(fact.MethodName, fact.MethodAnnotations),
		IsMockRelated: fact.MockRelated,
	}
	if fact.Kind == domain.StatementKindStubbing {
		stmt.AbstractedForm = fact.Abstracted
	}
	return stmt
}

// safeClassify never fails: any panic while classifying yields LocateOtherMethods
func safeClassify(methodName string, annotations []string) (locate domain.Locate) {
	defer func() {
		if r := recover(); r != nil {
			locate = domain.LocateOtherMethods
		}
	}()
	return Classify(methodName, annotations)
}

// ClassifyEntity classifies every statement of the entity in place and
// attaches its mock pattern summary.
func ClassifyEntity(entity *domain.MockEntity) {
	for i := range entity.Statements {
		entity.Statements[i] = ClassifyStatement(entity.Statements[i].StatementFact)
	}
	entity.MockPattern = SummarizeMockPattern(entity.Statements)
}
