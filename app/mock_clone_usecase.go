package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/mockscn/domain"
)

// MockCloneUseCase orchestrates mock clone detection
type MockCloneUseCase struct {
	service      domain.MockCloneService
	factReader   domain.MockFactReader
	formatter    domain.MockCloneFormatter
	configLoader domain.MockCloneConfigurationLoader
	output       domain.ReportWriter
}

// NewMockCloneUseCase creates a new mock clone use case. configLoader and
// output may be nil.
func NewMockCloneUseCase(
	service domain.MockCloneService,
	factReader domain.MockFactReader,
	formatter domain.MockCloneFormatter,
	configLoader domain.MockCloneConfigurationLoader,
	output domain.ReportWriter,
) *MockCloneUseCase {
	return &MockCloneUseCase{
		service:      service,
		factReader:   factReader,
		formatter:    formatter,
		configLoader: configLoader,
		output:       output,
	}
}

// Execute detects mock clones and writes the report. The response is
// returned so callers can act on the findings.
func (uc *MockCloneUseCase) Execute(ctx context.Context, req domain.MockCloneRequest) (*domain.MockCloneResponse, error) {
	// Step 1: Load configuration if specified. Request values take precedence.
	if req.ConfigPath != "" && uc.configLoader != nil {
		configReq, err := uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return nil, err
		}
		merged := uc.configLoader.MergeConfig(configReq, &req)
		merged.Recursive = req.Recursive
		req = *merged
	}

	// Step 2: Validate the request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 3: Collect fact files
	files, err := collectFactFiles(uc.factReader, &req)
	if err != nil {
		return nil, err
	}
	req.Paths = files

	// Step 4: Run detection
	response, err := uc.service.DetectClones(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("mock clone detection failed: %w", err)
	}

	// Step 5: Format and output results
	if err := uc.write(&req, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	}); err != nil {
		return nil, err
	}

	return response, nil
}

func (uc *MockCloneUseCase) write(req *domain.MockCloneRequest, writeFunc func(io.Writer) error) error {
	if !req.HasValidOutputWriter() {
		return domain.NewOutputError("no valid output writer specified", nil)
	}
	if uc.output != nil {
		return uc.output.Write(req.OutputWriter, req.OutputPath, req.OutputFormat, req.NoOpen, writeFunc)
	}
	if req.OutputWriter == nil {
		return domain.NewOutputError("output path given but no report writer configured", nil)
	}
	if err := writeFunc(req.OutputWriter); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

// collectFactFiles resolves the request paths to fact documents
func collectFactFiles(reader domain.MockFactReader, req *domain.MockCloneRequest) ([]string, error) {
	files, err := reader.CollectFactFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("no fact files found in %v", req.Paths), nil)
	}
	return files, nil
}

// MockCloneUseCaseBuilder helps build MockCloneUseCase with dependencies
type MockCloneUseCaseBuilder struct {
	service      domain.MockCloneService
	factReader   domain.MockFactReader
	formatter    domain.MockCloneFormatter
	configLoader domain.MockCloneConfigurationLoader
	output       domain.ReportWriter
}

// NewMockCloneUseCaseBuilder creates a new builder for MockCloneUseCase
func NewMockCloneUseCaseBuilder() *MockCloneUseCaseBuilder {
	return &MockCloneUseCaseBuilder{}
}

// WithService sets the mock clone service
func (b *MockCloneUseCaseBuilder) WithService(service domain.MockCloneService) *MockCloneUseCaseBuilder {
	b.service = service
	return b
}

// WithFactReader sets the fact reader
func (b *MockCloneUseCaseBuilder) WithFactReader(factReader domain.MockFactReader) *MockCloneUseCaseBuilder {
	b.factReader = factReader
	return b
}

// WithFormatter sets the output formatter
func (b *MockCloneUseCaseBuilder) WithFormatter(formatter domain.MockCloneFormatter) *MockCloneUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *MockCloneUseCaseBuilder) WithConfigLoader(configLoader domain.MockCloneConfigurationLoader) *MockCloneUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithOutputWriter sets the report writer used for file output
func (b *MockCloneUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *MockCloneUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the MockCloneUseCase with the configured dependencies
func (b *MockCloneUseCaseBuilder) Build() (*MockCloneUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("mock clone service is required")
	}
	if b.factReader == nil {
		return nil, fmt.Errorf("fact reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	return NewMockCloneUseCase(b.service, b.factReader, b.formatter, b.configLoader, b.output), nil
}
