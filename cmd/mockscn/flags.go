package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/mockscn/domain"
	"github.com/ludo-technologies/mockscn/service"
)

// inputFlags select and decode fact files
type inputFlags struct {
	configFile      string
	recursive       bool
	includePatterns []string
	excludePatterns []string
	skipInvalid     bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to .mockscn.toml (default: searched upward from the first path)")
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", true, "Recursively search directories for fact files")
	cmd.Flags().StringSliceVar(&f.includePatterns, "include", domain.DefaultFactIncludePatterns(), "Glob patterns selecting fact files")
	cmd.Flags().StringSliceVar(&f.excludePatterns, "exclude", nil, "Glob patterns of fact files to ignore")
	cmd.Flags().BoolVar(&f.skipInvalid, "skip-invalid", false, "Warn about undecodable fact files instead of failing")
}

// detectionFlags tune the mining and clustering passes
type detectionFlags struct {
	minSupport    int
	minLocReduced int
	noStub        bool
	maxGoroutines int
	timeout       time.Duration
}

func (f *detectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.minSupport, "min-support", domain.DefaultMinSupport, "Minimum number of tests sharing a stubbing set")
	cmd.Flags().IntVar(&f.minLocReduced, "min-loc-reduced", 0, "Only report clones removing at least this many lines")
	cmd.Flags().BoolVar(&f.noStub, "no-stub", domain.DefaultIncludeNoStub, "Cluster mocks that are never stubbed")
	cmd.Flags().IntVarP(&f.maxGoroutines, "workers", "w", domain.DefaultMaxGoroutines, "Parallel workers (0 = number of CPUs)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", domain.DefaultDetectionTimeout, "Abort detection after this duration")
}

// buildRequest loads the configuration for target and applies every flag the
// user set explicitly on top of it
func buildRequest(cmd *cobra.Command, args []string, in *inputFlags, det *detectionFlags) (*domain.MockCloneRequest, error) {
	configTarget := in.configFile
	if configTarget == "" {
		configTarget = getTargetPathFromArgs(args)
	}
	if configTarget == "" {
		configTarget = "."
	}

	req, err := service.NewMockCloneConfigurationLoader().LoadConfig(configTarget)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		req.Paths = args
	}
	if len(req.Paths) == 0 {
		req.Paths = []string{"."}
	}
	if flags.Changed("recursive") {
		req.Recursive = in.recursive
	}
	if flags.Changed("include") {
		req.IncludePatterns = in.includePatterns
	}
	if flags.Changed("exclude") {
		req.ExcludePatterns = in.excludePatterns
	}
	if flags.Changed("skip-invalid") {
		req.SkipInvalid = domain.BoolPtr(in.skipInvalid)
	}

	if det != nil {
		if flags.Changed("min-support") {
			req.MinSupport = det.minSupport
		}
		if flags.Changed("min-loc-reduced") {
			req.MinLocReduced = det.minLocReduced
		}
		if flags.Changed("no-stub") {
			req.IncludeNoStub = domain.BoolPtr(det.noStub)
		}
		if flags.Changed("workers") {
			req.MaxGoroutines = det.maxGoroutines
		}
		if flags.Changed("timeout") {
			req.Timeout = det.timeout
		}
	}

	return req, nil
}
