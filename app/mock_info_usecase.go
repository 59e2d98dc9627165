package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/mockscn/domain"
)

// MockInfoUseCase lists classified mocks or their sequences without mining
type MockInfoUseCase struct {
	service    domain.MockCloneService
	factReader domain.MockFactReader
	formatter  domain.MockCloneFormatter
}

// NewMockInfoUseCase creates a new mock info use case
func NewMockInfoUseCase(service domain.MockCloneService, factReader domain.MockFactReader, formatter domain.MockCloneFormatter) *MockInfoUseCase {
	return &MockInfoUseCase{
		service:    service,
		factReader: factReader,
		formatter:  formatter,
	}
}

// Execute loads the fact files of req and writes the requested view
func (uc *MockInfoUseCase) Execute(ctx context.Context, req domain.MockCloneRequest, view domain.MockInfoView) (*domain.MockInfoResponse, error) {
	switch view {
	case domain.MockInfoViewMocks, domain.MockInfoViewSequences:
	case "":
		view = domain.MockInfoViewMocks
	default:
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown view %q", view), nil)
	}

	files, err := collectFactFiles(uc.factReader, &req)
	if err != nil {
		return nil, err
	}
	req.Paths = files

	response, err := uc.service.InspectMocks(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect mocks: %w", err)
	}
	response.View = view

	var w io.Writer = req.OutputWriter
	if w == nil {
		return response, nil
	}
	if err := uc.formatter.WriteInfo(response, req.OutputFormat, w); err != nil {
		return nil, fmt.Errorf("failed to format output: %w", err)
	}
	return response, nil
}

// MockInfoUseCaseBuilder helps build MockInfoUseCase with dependencies
type MockInfoUseCaseBuilder struct {
	service    domain.MockCloneService
	factReader domain.MockFactReader
	formatter  domain.MockCloneFormatter
}

// NewMockInfoUseCaseBuilder creates a new builder for MockInfoUseCase
func NewMockInfoUseCaseBuilder() *MockInfoUseCaseBuilder {
	return &MockInfoUseCaseBuilder{}
}

// WithService sets the mock clone service
func (b *MockInfoUseCaseBuilder) WithService(service domain.MockCloneService) *MockInfoUseCaseBuilder {
	b.service = service
	return b
}

// WithFactReader sets the fact reader
func (b *MockInfoUseCaseBuilder) WithFactReader(factReader domain.MockFactReader) *MockInfoUseCaseBuilder {
	b.factReader = factReader
	return b
}

// WithFormatter sets the output formatter
func (b *MockInfoUseCaseBuilder) WithFormatter(formatter domain.MockCloneFormatter) *MockInfoUseCaseBuilder {
	b.formatter = formatter
	return b
}

// Build creates the MockInfoUseCase with the configured dependencies
func (b *MockInfoUseCaseBuilder) Build() (*MockInfoUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("mock clone service is required")
	}
	if b.factReader == nil {
		return nil, fmt.Errorf("fact reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewMockInfoUseCase(b.service, b.factReader, b.formatter), nil
}
