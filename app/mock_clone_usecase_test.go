package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/mockscn/domain"
)

type mockCloneService struct {
	mock.Mock
}

func (m *mockCloneService) DetectClones(ctx context.Context, req *domain.MockCloneRequest) (*domain.MockCloneResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MockCloneResponse), args.Error(1)
}

func (m *mockCloneService) InspectMocks(ctx context.Context, req *domain.MockCloneRequest) (*domain.MockInfoResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MockInfoResponse), args.Error(1)
}

type mockFactReader struct {
	mock.Mock
}

func (m *mockFactReader) CollectFactFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	args := m.Called(paths, recursive, includePatterns, excludePatterns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockFactReader) ReadFactFile(path string) ([]domain.MockEntity, error) {
	args := m.Called(path)
	return args.Get(0).([]domain.MockEntity), args.Error(1)
}

type mockFormatter struct {
	mock.Mock
}

func (m *mockFormatter) Format(response *domain.MockCloneResponse, format domain.OutputFormat) (string, error) {
	args := m.Called(response, format)
	return args.String(0), args.Error(1)
}

func (m *mockFormatter) Write(response *domain.MockCloneResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

func (m *mockFormatter) WriteInfo(response *domain.MockInfoResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

type mockConfigLoader struct {
	mock.Mock
}

func (m *mockConfigLoader) LoadConfig(path string) (*domain.MockCloneRequest, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MockCloneRequest), args.Error(1)
}

func (m *mockConfigLoader) LoadDefaultConfig() *domain.MockCloneRequest {
	return m.Called().Get(0).(*domain.MockCloneRequest)
}

func (m *mockConfigLoader) MergeConfig(base *domain.MockCloneRequest, override *domain.MockCloneRequest) *domain.MockCloneRequest {
	return m.Called(base, override).Get(0).(*domain.MockCloneRequest)
}

func newRequest(out io.Writer) domain.MockCloneRequest {
	req := domain.DefaultMockCloneRequest()
	req.Paths = []string{"facts"}
	req.OutputWriter = out
	return *req
}

func TestMockCloneUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Collects files, detects and writes", func(t *testing.T) {
		var out bytes.Buffer
		req := newRequest(&out)

		service := &mockCloneService{}
		reader := &mockFactReader{}
		formatter := &mockFormatter{}
		response := &domain.MockCloneResponse{Summary: domain.MockCloneSummary{TotalClones: 1}}

		reader.On("CollectFactFiles", []string{"facts"}, true, req.IncludePatterns, req.ExcludePatterns).
			Return([]string{"facts/a.mocks.json", "facts/b.mocks.json"}, nil)
		service.On("DetectClones", ctx, mock.MatchedBy(func(r *domain.MockCloneRequest) bool {
			return len(r.Paths) == 2 && r.Paths[0] == "facts/a.mocks.json"
		})).Return(response, nil)
		formatter.On("Write", response, domain.OutputFormatText, &out).Return(nil)

		uc, err := NewMockCloneUseCaseBuilder().
			WithService(service).
			WithFactReader(reader).
			WithFormatter(formatter).
			Build()
		require.NoError(t, err)

		got, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.Same(t, response, got)

		service.AssertExpectations(t)
		reader.AssertExpectations(t)
		formatter.AssertExpectations(t)
	})

	t.Run("No fact files is a usage error", func(t *testing.T) {
		req := newRequest(&bytes.Buffer{})
		reader := &mockFactReader{}
		reader.On("CollectFactFiles", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)
		service := &mockCloneService{}

		uc := NewMockCloneUseCase(service, reader, &mockFormatter{}, nil, nil)
		_, err := uc.Execute(ctx, req)

		require.Error(t, err)
		assert.True(t, domain.IsUsageError(err))
		service.AssertNotCalled(t, "DetectClones", mock.Anything, mock.Anything)
	})

	t.Run("Validation failure", func(t *testing.T) {
		req := newRequest(&bytes.Buffer{})
		req.MinSupport = 1

		uc := NewMockCloneUseCase(&mockCloneService{}, &mockFactReader{}, &mockFormatter{}, nil, nil)
		_, err := uc.Execute(ctx, req)
		assert.True(t, domain.IsUsageError(err))
	})

	t.Run("Service failure is wrapped", func(t *testing.T) {
		req := newRequest(&bytes.Buffer{})
		reader := &mockFactReader{}
		reader.On("CollectFactFiles", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]string{"a.json"}, nil)
		service := &mockCloneService{}
		boom := errors.New("boom")
		service.On("DetectClones", mock.Anything, mock.Anything).Return(nil, boom)

		uc := NewMockCloneUseCase(service, reader, &mockFormatter{}, nil, nil)
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Config file is merged under the request", func(t *testing.T) {
		var out bytes.Buffer
		req := newRequest(&out)
		req.ConfigPath = ".mockscn.toml"
		req.Recursive = false

		fromFile := domain.DefaultMockCloneRequest()
		fromFile.MinSupport = 4
		merged := *fromFile
		merged.Paths = req.Paths
		merged.OutputWriter = &out
		merged.Recursive = true

		loader := &mockConfigLoader{}
		loader.On("LoadConfig", ".mockscn.toml").Return(fromFile, nil)
		loader.On("MergeConfig", fromFile, mock.Anything).Return(&merged)

		reader := &mockFactReader{}
		reader.On("CollectFactFiles", []string{"facts"}, false, mock.Anything, mock.Anything).Return([]string{"a.json"}, nil)
		service := &mockCloneService{}
		response := &domain.MockCloneResponse{}
		service.On("DetectClones", mock.Anything, mock.MatchedBy(func(r *domain.MockCloneRequest) bool {
			return r.MinSupport == 4
		})).Return(response, nil)
		formatter := &mockFormatter{}
		formatter.On("Write", response, domain.OutputFormatText, &out).Return(nil)

		uc := NewMockCloneUseCase(service, reader, formatter, loader, nil)
		_, err := uc.Execute(ctx, req)
		require.NoError(t, err)

		loader.AssertExpectations(t)
		reader.AssertExpectations(t)
		service.AssertExpectations(t)
	})

	t.Run("Config load failure", func(t *testing.T) {
		req := newRequest(&bytes.Buffer{})
		req.ConfigPath = "bad.toml"
		loader := &mockConfigLoader{}
		loader.On("LoadConfig", "bad.toml").Return(nil, domain.NewConfigError("bad", nil))

		uc := NewMockCloneUseCase(&mockCloneService{}, &mockFactReader{}, &mockFormatter{}, loader, nil)
		_, err := uc.Execute(ctx, req)
		assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))
	})
}

type recordingReportWriter struct {
	path   string
	format domain.OutputFormat
	noOpen bool
}

func (w *recordingReportWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error {
	w.path, w.format, w.noOpen = outputPath, format, noOpen
	return writeFunc(io.Discard)
}

func TestMockCloneUseCase_OutputPath(t *testing.T) {
	ctx := context.Background()
	req := newRequest(nil)
	req.OutputPath = "report.html"
	req.OutputFormat = domain.OutputFormatHTML
	req.NoOpen = true

	reader := &mockFactReader{}
	reader.On("CollectFactFiles", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]string{"a.json"}, nil)
	service := &mockCloneService{}
	response := &domain.MockCloneResponse{}
	service.On("DetectClones", mock.Anything, mock.Anything).Return(response, nil)
	formatter := &mockFormatter{}
	formatter.On("Write", response, domain.OutputFormatHTML, io.Discard).Return(nil)
	output := &recordingReportWriter{}

	uc, err := NewMockCloneUseCaseBuilder().
		WithService(service).
		WithFactReader(reader).
		WithFormatter(formatter).
		WithOutputWriter(output).
		Build()
	require.NoError(t, err)

	_, err = uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "report.html", output.path)
	assert.Equal(t, domain.OutputFormatHTML, output.format)
	assert.True(t, output.noOpen)
	formatter.AssertExpectations(t)
}

func TestMockCloneUseCaseBuilder_MissingDependencies(t *testing.T) {
	_, err := NewMockCloneUseCaseBuilder().Build()
	assert.Error(t, err)

	_, err = NewMockCloneUseCaseBuilder().WithService(&mockCloneService{}).Build()
	assert.Error(t, err)

	_, err = NewMockCloneUseCaseBuilder().WithService(&mockCloneService{}).WithFactReader(&mockFactReader{}).Build()
	assert.Error(t, err)
}
