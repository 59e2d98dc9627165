package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ludo-technologies/mockscn/domain"
	"github.com/ludo-technologies/mockscn/internal/analyzer"
	"github.com/ludo-technologies/mockscn/internal/constants"
	"github.com/ludo-technologies/mockscn/internal/version"
)

// MockCloneServiceImpl implements the domain.MockCloneService interface.
// req.Paths holds the fact files already collected by the use case.
type MockCloneServiceImpl struct {
	reader   domain.MockFactReader
	progress domain.ProgressManager
	logger   *slog.Logger
}

// NewMockCloneService creates a new mock clone service.
// progress and logger may be nil.
func NewMockCloneService(reader domain.MockFactReader, progress domain.ProgressManager, logger *slog.Logger) *MockCloneServiceImpl {
	if reader == nil {
		reader = NewFactReader()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MockCloneServiceImpl{
		reader:   reader,
		progress: progress,
		logger:   logger,
	}
}

// DetectClones runs the full pipeline over the fact files in req.Paths
func (s *MockCloneServiceImpl) DetectClones(ctx context.Context, req *domain.MockCloneRequest) (*domain.MockCloneResponse, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("mock clone request cannot be nil", nil)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mock clone request: %w", err)
	}

	startTime := time.Now()

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	entities, warnings, err := s.loadEntities(ctx, req)
	if err != nil {
		return nil, err
	}

	sequences := analyzer.BuildAllSequences(entities)
	s.logger.Debug("built mock sequences",
		"fact_files", len(req.Paths),
		"mocks", len(entities),
		"sequences", len(sequences))

	detector := analyzer.NewMockCloneDetector(s.createDetectorConfig(req), s.logger)
	if s.progress != nil {
		s.progress.Initialize(countAnalyzableGroups(sequences))
		s.progress.Start()
		detector.SetOnGroupDone(func() { s.progress.Increment(1) })
	}

	result, err := detector.Detect(ctx, sequences)
	if s.progress != nil {
		s.progress.Complete(err == nil)
	}
	if err != nil {
		return nil, domain.NewAnalysisError("mock clone detection failed", err)
	}
	warnings = append(warnings, result.Warnings...)

	groups := filterCloneGroups(result.Groups, req.MinLocReduced)
	sortCloneGroups(groups, req.SortBy)

	summary := buildCloneSummary(groups)
	summary.TotalFactFiles = len(req.Paths)
	summary.TotalMocks = len(entities)
	summary.TotalSequences = len(sequences)
	summary.TotalGroups = result.TotalGroups
	summary.AnalyzedGroups = result.AnalyzedGroups

	s.logger.Info("mock clone detection finished",
		"clones", summary.TotalClones,
		"loc_reduced", summary.TotalLocReduced,
		"duration", time.Since(startTime))

	return &domain.MockCloneResponse{
		Clones:      groups,
		Summary:     summary,
		Warnings:    nonNil(warnings),
		Errors:      []string{},
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
		DurationMs:  time.Since(startTime).Milliseconds(),
		Config:      s.buildConfigForResponse(req),
	}, nil
}

// InspectMocks loads and classifies mocks without mining
func (s *MockCloneServiceImpl) InspectMocks(ctx context.Context, req *domain.MockCloneRequest) (*domain.MockInfoResponse, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("mock clone request cannot be nil", nil)
	}
	if len(req.Paths) == 0 {
		return nil, domain.NewInvalidInputError("at least one path must be specified", nil)
	}

	entities, warnings, err := s.loadEntities(ctx, req)
	if err != nil {
		return nil, err
	}
	sequences := analyzer.BuildAllSequences(entities)

	return &domain.MockInfoResponse{
		Mocks:     entities,
		Sequences: sequences,
		Summary: domain.MockCloneSummary{
			TotalFactFiles: len(req.Paths),
			TotalMocks:     len(entities),
			TotalSequences: len(sequences),
			TotalGroups:    len(analyzer.GroupSequences(sequences)),
			AnalyzedGroups: countAnalyzableGroups(sequences),
		},
		Warnings:    nonNil(warnings),
		Errors:      []string{},
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}

// loadEntities reads every fact file in parallel and numbers the entities
// in file order. Undecodable files are fatal unless SkipInvalid is set.
func (s *MockCloneServiceImpl) loadEntities(ctx context.Context, req *domain.MockCloneRequest) ([]domain.MockEntity, []string, error) {
	perFile := make([][]domain.MockEntity, len(req.Paths))
	tasks := make([]domain.ExecutableTask, len(req.Paths))
	for i, path := range req.Paths {
		tasks[i] = NewSimpleTask(path, true, func(context.Context) (interface{}, error) {
			entities, err := s.reader.ReadFactFile(path)
			if err != nil {
				return nil, err
			}
			perFile[i] = entities
			return len(entities), nil
		})
	}

	executor := NewParallelExecutor()
	if req.MaxGoroutines > 0 {
		executor.SetMaxConcurrency(req.MaxGoroutines)
	}
	if req.Timeout > 0 {
		executor.SetTimeout(req.Timeout)
	}

	var warnings []string
	if err := executor.Execute(ctx, tasks); err != nil {
		var agg *AggregatedError
		if !errors.As(err, &agg) {
			return nil, nil, err
		}
		if !domain.BoolValue(req.SkipInvalid, domain.DefaultSkipInvalidFacts) || hasContextError(agg) {
			return nil, nil, agg.Errors[0].Err
		}
		for _, taskErr := range agg.Errors {
			s.logger.Warn("skipping invalid fact file", "path", taskErr.TaskName, "error", taskErr.Err)
			warnings = append(warnings, fmt.Sprintf("skipped %s: %v", taskErr.TaskName, taskErr.Err))
		}
	}

	var entities []domain.MockEntity
	for _, fileEntities := range perFile {
		entities = append(entities, fileEntities...)
	}
	for i := range entities {
		entities[i].ID = i
	}
	return entities, warnings, nil
}

func hasContextError(agg *AggregatedError) bool {
	for _, e := range agg.Errors {
		if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) {
			return true
		}
	}
	return false
}

func (s *MockCloneServiceImpl) createDetectorConfig(req *domain.MockCloneRequest) *analyzer.MockCloneDetectorConfig {
	config := analyzer.DefaultMockCloneDetectorConfig()
	if req.MinSupport > 0 {
		config.MinSupport = req.MinSupport
	}
	config.IncludeNoStub = domain.BoolValue(req.IncludeNoStub, domain.DefaultIncludeNoStub)
	config.MaxGoroutines = req.MaxGoroutines
	return config
}

func (s *MockCloneServiceImpl) buildConfigForResponse(req *domain.MockCloneRequest) map[string]interface{} {
	return map[string]interface{}{
		"min_support":     req.MinSupport,
		"min_loc_reduced": req.MinLocReduced,
		"include_no_stub": domain.BoolValue(req.IncludeNoStub, domain.DefaultIncludeNoStub),
		"skip_invalid":    domain.BoolValue(req.SkipInvalid, domain.DefaultSkipInvalidFacts),
		"sort_by":         string(req.SortBy),
		"max_goroutines":  req.MaxGoroutines,
	}
}

func countAnalyzableGroups(sequences []*domain.MockSequence) int {
	count := 0
	for _, g := range analyzer.GroupSequences(sequences) {
		if len(g.Sequences) >= constants.MinCloneSequences {
			count++
		}
	}
	return count
}

// filterCloneGroups drops instances below minLocReduced and then empty groups
func filterCloneGroups(groups []domain.MockCloneGroup, minLocReduced int) []domain.MockCloneGroup {
	filtered := make([]domain.MockCloneGroup, 0, len(groups))
	for _, g := range groups {
		var kept []domain.MockCloneInstance
		for _, inst := range g.Instances {
			if inst.LocReduced >= minLocReduced {
				kept = append(kept, inst)
			}
		}
		if len(kept) > 0 {
			filtered = append(filtered, domain.MockCloneGroup{MockedClass: g.MockedClass, Instances: kept})
		}
	}
	return filtered
}

// sortCloneGroups orders groups and their instances. Ties keep the
// class-sorted detection order.
func sortCloneGroups(groups []domain.MockCloneGroup, by domain.MockCloneSortCriteria) {
	switch by {
	case domain.MockCloneSortBySize:
		for i := range groups {
			instances := groups[i].Instances
			sort.SliceStable(instances, func(a, b int) bool {
				return instances[a].SequenceCount > instances[b].SequenceCount
			})
		}
		sort.SliceStable(groups, func(a, b int) bool {
			return groupSequenceCount(groups[a]) > groupSequenceCount(groups[b])
		})
	case domain.MockCloneSortByClass:
		sort.SliceStable(groups, func(a, b int) bool {
			return groups[a].MockedClass < groups[b].MockedClass
		})
	default:
		for i := range groups {
			instances := groups[i].Instances
			sort.SliceStable(instances, func(a, b int) bool {
				return instances[a].LocReduced > instances[b].LocReduced
			})
		}
		sort.SliceStable(groups, func(a, b int) bool {
			return groups[a].LocReduced() > groups[b].LocReduced()
		})
	}
}

func groupSequenceCount(g domain.MockCloneGroup) int {
	total := 0
	for _, inst := range g.Instances {
		total += inst.SequenceCount
	}
	return total
}

func buildCloneSummary(groups []domain.MockCloneGroup) domain.MockCloneSummary {
	summary := domain.MockCloneSummary{MockedClassesWithClones: len(groups)}
	for _, g := range groups {
		for _, inst := range g.Instances {
			switch inst.Kind {
			case domain.MockCloneKindNoStub:
				summary.NoStubClones++
			default:
				summary.MinedClones++
			}
			summary.TotalClones++
			summary.ClonedSequences += len(inst.Sequences)
			summary.TotalLocReduced += inst.LocReduced
		}
	}
	return summary
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
