package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// StatementKind is the structural kind of a statement that touches a mock variable.
// The set is closed; unknown kinds decode to StatementKindReference.
type StatementKind string

const (
	StatementKindFieldDeclaration    StatementKind = "FIELD_DECLARATION"
	StatementKindFieldMockCreation   StatementKind = "FIELD_MOCK_CREATION"
	StatementKindFieldSpyCreation    StatementKind = "FIELD_SPY_CREATION"
	StatementKindFieldInitialization StatementKind = "FIELD_INITIALIZATION"
	StatementKindLocalDeclaration    StatementKind = "DECLARATION"
	StatementKindLocalVariableInit   StatementKind = "LOCAL_VARIABLE_INIT"
	StatementKindMethodMockCreation  StatementKind = "METHOD_MOCK_CREATION"
	StatementKindMethodSpyCreation   StatementKind = "METHOD_SPY_CREATION"
	StatementKindAssignment          StatementKind = "ASSIGNMENT"
	StatementKindAssignmentMock      StatementKind = "ASSIGNMENT_MOCK"
	StatementKindAssignmentSpy       StatementKind = "ASSIGNMENT_SPY"
	StatementKindStubbing            StatementKind = "STUBBING"
	StatementKindVerification        StatementKind = "VERIFICATION"
	StatementKindReference           StatementKind = "REFERENCE"
)

var statementKinds = map[StatementKind]bool{
	StatementKindFieldDeclaration:    true,
	StatementKindFieldMockCreation:   true,
	StatementKindFieldSpyCreation:    true,
	StatementKindFieldInitialization: true,
	StatementKindLocalDeclaration:    true,
	StatementKindLocalVariableInit:   true,
	StatementKindMethodMockCreation:  true,
	StatementKindMethodSpyCreation:   true,
	StatementKindAssignment:          true,
	StatementKindAssignmentMock:      true,
	StatementKindAssignmentSpy:       true,
	StatementKindStubbing:            true,
	StatementKindVerification:        true,
	StatementKindReference:           true,
}

// ParseStatementKind normalizes a wire name. Matching is case-insensitive and
// anything unrecognized is treated as a plain reference.
func ParseStatementKind(s string) StatementKind {
	kind := StatementKind(strings.ToUpper(strings.TrimSpace(s)))
	if statementKinds[kind] {
		return kind
	}
	return StatementKindReference
}

// UnmarshalText implements encoding.TextUnmarshaler for JSON and YAML fact files
func (k *StatementKind) UnmarshalText(text []byte) error {
	*k = ParseStatementKind(string(text))
	return nil
}

// IsFieldCreation reports whether the kind creates a mock or spy at field level
func (k StatementKind) IsFieldCreation() bool {
	return k == StatementKindFieldMockCreation || k == StatementKindFieldSpyCreation
}

// Locate is the structural role of a statement within its test class.
type Locate string

const (
	LocateTestCase     Locate = "Test Case"
	LocateBefore       Locate = "@Before"
	LocateAfter        Locate = "@After"
	LocateHelperMethod Locate = "Helper Method"
	LocateAttribute    Locate = "Attribute"
	LocateOverride     Locate = "@Override"
	LocateOtherMethods Locate = "Other Methods"
)

// IsShareable reports whether statements at this locate are shared by every
// test method that uses the mock.
func (l Locate) IsShareable() bool {
	switch l {
	case LocateAttribute, LocateBefore, LocateAfter, LocateHelperMethod:
		return true
	default:
		return false
	}
}

// FieldDeclarationContext is the method name extractors use for statements
// that sit at field level rather than inside a method.
const FieldDeclarationContext = "FieldDeclaration"

// MockRole distinguishes full mocks from partial spies
type MockRole string

const (
	MockRoleMock MockRole = "mock"
	MockRoleSpy  MockRole = "spy"
)

// StatementFact is one extractor-produced fact about a statement touching a mock
type StatementFact struct {
	Line              int           `json:"line" yaml:"line"`
	RawText           string        `json:"raw_text" yaml:"raw_text"`
	Kind              StatementKind `json:"kind" yaml:"kind"`
	MethodName        string        `json:"method_name" yaml:"method_name"`
	MethodAnnotations []string      `json:"method_annotations,omitempty" yaml:"method_annotations,omitempty"`
	MethodRawText     string        `json:"method_raw_text,omitempty" yaml:"method_raw_text,omitempty"`

	// Abstracted is the type-level signature of a stubbing, e.g. "UserRepo.find(long)"
	Abstracted  string `json:"abstracted,omitempty" yaml:"abstracted,omitempty"`
	MockRelated bool   `json:"mock_related" yaml:"mock_related"`
}

// ClassifiedStatement is a StatementFact with its derived structural role
type ClassifiedStatement struct {
	StatementFact `yaml:",inline"`

	Locate         Locate `json:"locate,omitempty" yaml:"locate,omitempty"`
	AbstractedForm string `json:"abstracted_form,omitempty" yaml:"abstracted_form,omitempty"`
	IsMockRelated  bool   `json:"is_mock_related,omitempty" yaml:"is_mock_related,omitempty"`
}

// MockEntity is one declared mock-like variable occurrence (field or local)
type MockEntity struct {
	ID           int      `json:"id" yaml:"id"`
	VariableName string   `json:"variable_name" yaml:"variable_name"`
	DeclaredType string   `json:"declared_type" yaml:"declared_type"`
	MockedClass  string   `json:"mocked_class" yaml:"mocked_class"`
	IsReusable   bool     `json:"reusable" yaml:"reusable"`
	Role         MockRole `json:"role,omitempty" yaml:"role,omitempty"`

	// Class context
	Namespace string `json:"namespace" yaml:"namespace"`
	FilePath  string `json:"file_path" yaml:"file_path"`
	ClassName string `json:"class_name" yaml:"class_name"`

	Statements  []ClassifiedStatement `json:"statements" yaml:"statements"`
	MockPattern string                `json:"mock_pattern,omitempty" yaml:"mock_pattern,omitempty"`
}

// HasGroupingKey reports whether the entity can take part in itemset mining
func (e *MockEntity) HasGroupingKey() bool {
	return e.MockedClass != "" && e.Namespace != ""
}

// LineEntry is a single (line, value) pair of a LineMap
type LineEntry[V any] struct {
	Line  int `json:"line" yaml:"line"`
	Value V   `json:"value" yaml:"value"`
}

// LineMap is an insertion-ordered map keyed by source line.
// Setting an existing line replaces its value but keeps its position.
type LineMap[V any] struct {
	lines  []int
	values map[int]V
}

// NewLineMap creates an empty LineMap
func NewLineMap[V any]() *LineMap[V] {
	return &LineMap[V]{values: make(map[int]V)}
}

// Set stores value at line
func (m *LineMap[V]) Set(line int, value V) {
	if m.values == nil {
		m.values = make(map[int]V)
	}
	if _, ok := m.values[line]; !ok {
		m.lines = append(m.lines, line)
	}
	m.values[line] = value
}

// Get returns the value stored at line
func (m *LineMap[V]) Get(line int) (V, bool) {
	v, ok := m.values[line]
	return v, ok
}

// Len returns the number of lines stored
func (m *LineMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.lines)
}

// Lines returns the stored lines in insertion order
func (m *LineMap[V]) Lines() []int {
	if m == nil {
		return nil
	}
	out := make([]int, len(m.lines))
	copy(out, m.lines)
	return out
}

// SortedLines returns the stored lines in ascending order
func (m *LineMap[V]) SortedLines() []int {
	out := m.Lines()
	sort.Ints(out)
	return out
}

// Values returns the stored values in insertion order
func (m *LineMap[V]) Values() []V {
	if m == nil {
		return nil
	}
	out := make([]V, 0, len(m.lines))
	for _, line := range m.lines {
		out = append(out, m.values[line])
	}
	return out
}

// Entries returns (line, value) pairs in insertion order
func (m *LineMap[V]) Entries() []LineEntry[V] {
	if m == nil {
		return []LineEntry[V]{}
	}
	out := make([]LineEntry[V], 0, len(m.lines))
	for _, line := range m.lines {
		out = append(out, LineEntry[V]{Line: line, Value: m.values[line]})
	}
	return out
}

// MarshalJSON encodes the map as an ordered list of entries
func (m *LineMap[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Entries())
}

// MarshalYAML encodes the map as an ordered list of entries
func (m *LineMap[V]) MarshalYAML() (interface{}, error) {
	return m.Entries(), nil
}

// MockSequence is the usage of one mock entity within one test method,
// including the statements shared through fields, setup and helpers.
type MockSequence struct {
	MockObjectID      int    `json:"mock_object_id" yaml:"mock_object_id"`
	VariableName      string `json:"variable_name" yaml:"variable_name"`
	DeclaredType      string `json:"declared_type" yaml:"declared_type"`
	MockedClass       string `json:"mocked_class" yaml:"mocked_class"`
	Namespace         string `json:"namespace" yaml:"namespace"`
	FilePath          string `json:"file_path" yaml:"file_path"`
	ClassName         string `json:"class_name" yaml:"class_name"`
	TestMethodName    string `json:"test_method_name" yaml:"test_method_name"`
	TestMethodRawText string `json:"test_method_raw_text,omitempty" yaml:"test_method_raw_text,omitempty"`
	IsReusable        bool   `json:"reusable" yaml:"reusable"`

	ShareableLines       *LineMap[string]              `json:"shareable_lines" yaml:"shareable_lines"`
	TestLines            *LineMap[string]              `json:"test_lines" yaml:"test_lines"`
	AbstractedStatements *LineMap[string]              `json:"abstracted_statements" yaml:"abstracted_statements"`
	RawByLine            *LineMap[ClassifiedStatement] `json:"-" yaml:"-"`
	OverlapLines         []int                         `json:"overlap_lines,omitempty" yaml:"overlap_lines,omitempty"`
}

// NewMockSequence creates a sequence for one test method of entity
func NewMockSequence(entity *MockEntity, testMethodName string) *MockSequence {
	return &MockSequence{
		MockObjectID:         entity.ID,
		VariableName:         entity.VariableName,
		DeclaredType:         entity.DeclaredType,
		MockedClass:          entity.MockedClass,
		Namespace:            entity.Namespace,
		FilePath:             entity.FilePath,
		ClassName:            entity.ClassName,
		TestMethodName:       testMethodName,
		IsReusable:           entity.IsReusable,
		ShareableLines:       NewLineMap[string](),
		TestLines:            NewLineMap[string](),
		AbstractedStatements: NewLineMap[string](),
		RawByLine:            NewLineMap[ClassifiedStatement](),
	}
}

// Transaction returns the abstracted statements of the sequence in insertion order
func (s *MockSequence) Transaction() []string {
	return s.AbstractedStatements.Values()
}

// HasStubbing reports whether any stubbing statement was recorded
func (s *MockSequence) HasStubbing() bool {
	return s.AbstractedStatements.Len() > 0
}

// GroupKey identifies the (mocked class, namespace) group of the sequence
func (s *MockSequence) GroupKey() string {
	return s.MockedClass + "#" + s.Namespace
}

// MarkOverlapLine records line as the statement overlapping with other clone members
func (s *MockSequence) MarkOverlapLine(line int) {
	for _, l := range s.OverlapLines {
		if l == line {
			return
		}
	}
	s.OverlapLines = append(s.OverlapLines, line)
}
