package domain

import (
	"context"
	"io"
	"time"
)

// MockCloneKind tells how a clone instance was found
type MockCloneKind string

const (
	// MockCloneKindMined is a group of sequences sharing a frequent set of stubbings
	MockCloneKindMined MockCloneKind = "mined"
	// MockCloneKindNoStub is a group of unstubbed mocks of one type in one file
	MockCloneKindNoStub MockCloneKind = "no_stub"
)

// MockCloneSortCriteria represents the criteria for sorting clone instances
type MockCloneSortCriteria string

const (
	MockCloneSortByLocReduced MockCloneSortCriteria = "loc"
	MockCloneSortBySize       MockCloneSortCriteria = "size"
	MockCloneSortByClass      MockCloneSortCriteria = "class"
)

// MockInfoView selects what the info use case reports
type MockInfoView string

const (
	MockInfoViewMocks     MockInfoView = "mocks"
	MockInfoViewSequences MockInfoView = "sequences"
)

// MockCloneInstance is a reported group of at least two sequences sharing a pattern
type MockCloneInstance struct {
	ID          string        `json:"id" yaml:"id"`
	Kind        MockCloneKind `json:"kind" yaml:"kind"`
	MockedClass string        `json:"mocked_class" yaml:"mocked_class"`
	Namespace   string        `json:"namespace" yaml:"namespace"`

	SharedStatements []string        `json:"shared_statements" yaml:"shared_statements"`
	Sequences        []*MockSequence `json:"sequences" yaml:"sequences"`

	SequenceCount            int `json:"sequence_count" yaml:"sequence_count"`
	TestCaseCount            int `json:"test_case_count" yaml:"test_case_count"`
	SharedStatementLineCount int `json:"shared_statement_line_count" yaml:"shared_statement_line_count"`
	LocReduced               int `json:"loc_reduced" yaml:"loc_reduced"`
	MockObjectCount          int `json:"mock_object_count" yaml:"mock_object_count"`
}

// MockCloneGroup holds every clone instance found for one mocked class
type MockCloneGroup struct {
	MockedClass string              `json:"mocked_class" yaml:"mocked_class"`
	Instances   []MockCloneInstance `json:"instances" yaml:"instances"`
}

// LocReduced returns the total lines removable across the group's instances
func (g *MockCloneGroup) LocReduced() int {
	total := 0
	for _, inst := range g.Instances {
		total += inst.LocReduced
	}
	return total
}

// MockCloneRequest represents a request for mock clone detection.
// The info and sequence views reuse it for file discovery.
type MockCloneRequest struct {
	// Input fact files or directories
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string // Path to save output file (for non-text formats)
	NoOpen       bool   // Don't auto-open HTML in browser

	// Input options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
	SkipInvalid     *bool // nil = use default (false)

	// Configuration
	ConfigPath string

	// Detection options
	MinSupport    int
	MinLocReduced int
	IncludeNoStub *bool // nil = use default (true)
	MaxGoroutines int
	Timeout       time.Duration

	// Reporting
	SortBy      MockCloneSortCriteria
	ShowDetails bool
}

// MockCloneSummary represents aggregate statistics for mock clone detection
type MockCloneSummary struct {
	TotalFactFiles int `json:"total_fact_files" yaml:"total_fact_files"`
	TotalMocks     int `json:"total_mocks" yaml:"total_mocks"`
	TotalSequences int `json:"total_sequences" yaml:"total_sequences"`
	TotalGroups    int `json:"total_groups" yaml:"total_groups"`
	AnalyzedGroups int `json:"analyzed_groups" yaml:"analyzed_groups"`

	MockedClassesWithClones int `json:"mocked_classes_with_clones" yaml:"mocked_classes_with_clones"`
	MinedClones             int `json:"mined_clones" yaml:"mined_clones"`
	NoStubClones            int `json:"no_stub_clones" yaml:"no_stub_clones"`
	TotalClones             int `json:"total_clones" yaml:"total_clones"`
	ClonedSequences         int `json:"cloned_sequences" yaml:"cloned_sequences"`
	TotalLocReduced         int `json:"total_loc_reduced" yaml:"total_loc_reduced"`
}

// MockCloneResponse represents the complete mock clone detection result
type MockCloneResponse struct {
	Clones  []MockCloneGroup `json:"clones" yaml:"clones"`
	Summary MockCloneSummary `json:"summary" yaml:"summary"`

	Warnings []string `json:"warnings" yaml:"warnings"`
	Errors   []string `json:"errors" yaml:"errors"`

	// Metadata
	RunID       string      `json:"run_id" yaml:"run_id"`
	GeneratedAt string      `json:"generated_at" yaml:"generated_at"`
	Version     string      `json:"version" yaml:"version"`
	DurationMs  int64       `json:"duration_ms" yaml:"duration_ms"`
	Config      interface{} `json:"config,omitempty" yaml:"config,omitempty"`
}

// HasClones returns true if any clone instance was reported
func (r *MockCloneResponse) HasClones() bool {
	return r.Summary.TotalClones > 0
}

// MockInfoResponse lists the detected mock objects or their sequences
type MockInfoResponse struct {
	View      MockInfoView    `json:"view" yaml:"view"`
	Mocks     []MockEntity    `json:"mocks,omitempty" yaml:"mocks,omitempty"`
	Sequences []*MockSequence `json:"sequences,omitempty" yaml:"sequences,omitempty"`

	Summary  MockCloneSummary `json:"summary" yaml:"summary"`
	Warnings []string         `json:"warnings" yaml:"warnings"`
	Errors   []string         `json:"errors" yaml:"errors"`

	RunID       string `json:"run_id" yaml:"run_id"`
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// MockFactReader discovers and decodes mock fact documents
type MockFactReader interface {
	// CollectFactFiles finds fact documents under the given paths
	CollectFactFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFactFile decodes the mock entities stored in one fact document
	ReadFactFile(path string) ([]MockEntity, error)
}

// MockCloneService defines the core business logic for mock clone detection
type MockCloneService interface {
	// DetectClones loads facts and runs the full detection pipeline
	DetectClones(ctx context.Context, req *MockCloneRequest) (*MockCloneResponse, error)

	// InspectMocks loads facts and returns classified mocks with their sequences
	InspectMocks(ctx context.Context, req *MockCloneRequest) (*MockInfoResponse, error)
}

// MockCloneConfigurationLoader defines the interface for loading mock clone configuration
type MockCloneConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*MockCloneRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *MockCloneRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *MockCloneRequest, override *MockCloneRequest) *MockCloneRequest
}

// MockCloneFormatter defines the interface for formatting mock clone results
type MockCloneFormatter interface {
	// Format formats the clone response according to the specified format
	Format(response *MockCloneResponse, format OutputFormat) (string, error)

	// Write writes the formatted clone output to the writer
	Write(response *MockCloneResponse, format OutputFormat, writer io.Writer) error

	// WriteInfo writes the formatted mock listing to the writer
	WriteInfo(response *MockInfoResponse, format OutputFormat, writer io.Writer) error
}

// DefaultMockCloneRequest returns the default configuration for mock clone detection
func DefaultMockCloneRequest() *MockCloneRequest {
	return &MockCloneRequest{
		OutputFormat:    OutputFormatText,
		Recursive:       true,
		IncludePatterns: DefaultFactIncludePatterns(),
		ExcludePatterns: []string{},
		SkipInvalid:     BoolPtr(DefaultSkipInvalidFacts),
		MinSupport:      DefaultMinSupport,
		MinLocReduced:   0,
		IncludeNoStub:   BoolPtr(DefaultIncludeNoStub),
		MaxGoroutines:   DefaultMaxGoroutines,
		Timeout:         DefaultDetectionTimeout,
		SortBy:          MockCloneSortByLocReduced,
	}
}

// Validate validates the mock clone request
func (req *MockCloneRequest) Validate() error {
	if len(req.Paths) == 0 {
		return NewInvalidInputError("at least one path must be specified", nil)
	}

	validFormats := map[OutputFormat]bool{
		OutputFormatText: true,
		OutputFormatJSON: true,
		OutputFormatYAML: true,
		OutputFormatCSV:  true,
		OutputFormatHTML: true,
	}
	if !validFormats[req.OutputFormat] {
		return NewInvalidInputError("invalid output format", nil)
	}

	if req.MinSupport < 2 {
		return NewValidationError("min support must be at least 2")
	}
	if req.MinLocReduced < 0 {
		return NewValidationError("min LOC reduced must be >= 0")
	}
	if req.MaxGoroutines < 0 {
		return NewValidationError("max goroutines must be >= 0")
	}

	if req.SortBy != "" {
		validSortBy := map[MockCloneSortCriteria]bool{
			MockCloneSortByLocReduced: true,
			MockCloneSortBySize:       true,
			MockCloneSortByClass:      true,
		}
		if !validSortBy[req.SortBy] {
			return NewInvalidInputError("invalid sort criteria", nil)
		}
	}

	return nil
}

// HasValidOutputWriter reports whether output can be written somewhere
func (req *MockCloneRequest) HasValidOutputWriter() bool {
	return req.OutputWriter != nil || req.OutputPath != ""
}
