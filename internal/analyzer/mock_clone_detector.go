package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/mockscn/domain"
	"github.com/ludo-technologies/mockscn/internal/constants"
)

// MockCloneDetectorConfig holds configuration for mock clone detection
type MockCloneDetectorConfig struct {
	// Minimum number of sequences sharing an itemset
	MinSupport int

	// Cleanup loop cap, as a multiple of the group size
	IterationFactor int

	// Whether to run the no-stub clustering pass
	IncludeNoStub bool

	// Maximum number of groups processed concurrently (0 = NumCPU)
	MaxGoroutines int
}

// DefaultMockCloneDetectorConfig returns default configuration
func DefaultMockCloneDetectorConfig() *MockCloneDetectorConfig {
	return &MockCloneDetectorConfig{
		MinSupport:      constants.DefaultMinSupport,
		IterationFactor: constants.DefaultAssignmentIterationFactor,
		IncludeNoStub:   domain.DefaultIncludeNoStub,
		MaxGoroutines:   domain.DefaultMaxGoroutines,
	}
}

// SequenceGroup is the set of sequences sharing one (mocked class, namespace) key
type SequenceGroup struct {
	MockedClass string
	Namespace   string
	Sequences   []*domain.MockSequence
}

// Minable reports whether the group has a complete key and may be mined
func (g *SequenceGroup) Minable() bool {
	return g.MockedClass != "" && g.Namespace != ""
}

// DetectionResult is the detector output
type DetectionResult struct {
	// Clone groups keyed by mocked class, sorted by class name
	Groups []domain.MockCloneGroup

	Warnings []string

	// TotalGroups counts every (mocked class, namespace) group formed
	TotalGroups int

	// AnalyzedGroups counts groups with at least two sequences
	AnalyzedGroups int
}

// Clones returns the number of clone instances across all groups
func (r *DetectionResult) Clones() int {
	total := 0
	for _, g := range r.Groups {
		total += len(g.Instances)
	}
	return total
}

// MockCloneDetector runs mining, assignment and no-stub clustering over
// every group of sequences.
type MockCloneDetector struct {
	config   *MockCloneDetectorConfig
	miner    *AprioriMiner
	assigner *CloneAssigner
	grouper  *NoStubGrouper
	logger   *slog.Logger

	onGroupDone func()
}

// NewMockCloneDetector creates a new detector with the given configuration
func NewMockCloneDetector(config *MockCloneDetectorConfig, logger *slog.Logger) *MockCloneDetector {
	if config == nil {
		config = DefaultMockCloneDetectorConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MockCloneDetector{
		config:   config,
		miner:    NewAprioriMiner(config.MinSupport),
		assigner: NewCloneAssigner(config.IterationFactor, logger),
		grouper:  NewNoStubGrouper(),
		logger:   logger,
	}
}

// SetOnGroupDone registers a callback invoked once per finished group.
// It may be called from several goroutines.
func (d *MockCloneDetector) SetOnGroupDone(fn func()) {
	d.onGroupDone = fn
}

// GroupSequences partitions sequences by (mocked class, namespace) in first-seen order
func GroupSequences(sequences []*domain.MockSequence) []*SequenceGroup {
	var groups []*SequenceGroup
	index := make(map[string]*SequenceGroup)
	for _, seq := range sequences {
		key := seq.GroupKey()
		g, ok := index[key]
		if !ok {
			g = &SequenceGroup{MockedClass: seq.MockedClass, Namespace: seq.Namespace}
			index[key] = g
			groups = append(groups, g)
		}
		g.Sequences = append(g.Sequences, seq)
	}
	return groups
}

type groupOutcome struct {
	clones  []domain.MockCloneInstance
	warning string
}

// Detect finds mock clones across all sequences. A failure inside one group
// becomes a warning and does not affect the others.
func (d *MockCloneDetector) Detect(ctx context.Context, sequences []*domain.MockSequence) (*DetectionResult, error) {
	groups := GroupSequences(sequences)
	result := &DetectionResult{TotalGroups: len(groups)}

	var work []*SequenceGroup
	for _, g := range groups {
		if len(g.Sequences) < constants.MinCloneSequences {
			continue
		}
		work = append(work, g)
	}
	result.AnalyzedGroups = len(work)

	limit := d.config.MaxGoroutines
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	outcomes := make([]groupOutcome, len(work))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, g := range work {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = d.detectGroupSafe(g)
			if d.onGroupDone != nil {
				d.onGroupDone()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("mock clone detection cancelled: %w", err)
	}

	byClass := make(map[string][]domain.MockCloneInstance)
	for _, out := range outcomes {
		if out.warning != "" {
			result.Warnings = append(result.Warnings, out.warning)
		}
		for _, inst := range out.clones {
			byClass[inst.MockedClass] = append(byClass[inst.MockedClass], inst)
		}
	}

	classes := make([]string, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	result.Groups = make([]domain.MockCloneGroup, 0, len(classes))
	for _, class := range classes {
		result.Groups = append(result.Groups, domain.MockCloneGroup{
			MockedClass: class,
			Instances:   byClass[class],
		})
	}

	return result, nil
}

func (d *MockCloneDetector) detectGroupSafe(g *SequenceGroup) (out groupOutcome) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("mock clone group failed",
				"mocked_class", g.MockedClass,
				"namespace", g.Namespace,
				"panic", r)
			out = groupOutcome{
				warning: fmt.Sprintf("group %s#%s skipped: %v", g.MockedClass, g.Namespace, r),
			}
		}
	}()
	return groupOutcome{clones: d.DetectGroup(g)}
}

// DetectGroup runs the mined pass and then the no-stub pass on one group
func (d *MockCloneDetector) DetectGroup(g *SequenceGroup) []domain.MockCloneInstance {
	var clones []domain.MockCloneInstance

	if g.Minable() {
		transactions := make([][]string, len(g.Sequences))
		for i, seq := range g.Sequences {
			transactions[i] = seq.Transaction()
		}
		table := d.miner.Mine(transactions)
		assignment := d.assigner.Assign(table, g.Sequences, g.MockedClass, g.Namespace)
		clones = append(clones, assignment.Clones...)

		d.logger.Debug("mined mock clone group",
			"mocked_class", g.MockedClass,
			"namespace", g.Namespace,
			"sequences", len(g.Sequences),
			"itemsets", table.Len(),
			"clones", len(assignment.Clones),
			"iterations", assignment.Iterations,
			"converged", assignment.Converged)
	}

	if d.config.IncludeNoStub {
		clones = append(clones, d.grouper.Group(g.Sequences, g.MockedClass, g.Namespace)...)
	}

	return clones
}
