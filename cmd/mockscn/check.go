package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/mockscn/domain"
)

// CheckCommand runs clone detection with CI-friendly output and exit codes
type CheckCommand struct {
	input     inputFlags
	detection detectionFlags

	quiet         bool
	maxClones     int
	maxLocReduced int
}

// NewCheckCommand creates a new check command
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{maxLocReduced: -1}
}

// CreateCobraCommand creates the cobra command for the check
func (c *CheckCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Fail when duplicated mock setup is found",
		Long: `Quick mock clone check optimized for CI/CD pipelines.

Runs the same detection as 'mockscn clone' and prints a one-line summary per
mocked class. No report file is written.

Exit codes:
  0: Within --max-clones and --max-loc-reduced
  1: Too many clones or too many reducible lines found
  2: Detection failed (invalid input, missing files, etc.)

Examples:
  # Fail on any mock clone
  mockscn check build/mock-facts

  # Tolerate up to five clones
  mockscn check --max-clones 5 build/mock-facts

  # Fail when more than 50 lines of mock setup could be shared
  mockscn check --max-clones 100 --max-loc-reduced 50 build/mock-facts

  # Only print something when the check fails
  mockscn check --quiet build/mock-facts`,
		Args: cobra.ArbitraryArgs,
		RunE: c.runCheck,
	}

	c.input.register(cmd)
	c.detection.register(cmd)

	cmd.Flags().BoolVarP(&c.quiet, "quiet", "q", false, "Suppress output unless clones exceed the limit")
	cmd.Flags().IntVar(&c.maxClones, "max-clones", 0, "Maximum allowed mock clones before failing")
	cmd.Flags().IntVar(&c.maxLocReduced, "max-loc-reduced", c.maxLocReduced, "Maximum allowed reducible lines before failing (-1 disables)")

	return cmd
}

// runCheck executes the check
func (c *CheckCommand) runCheck(cmd *cobra.Command, args []string) error {
	if c.maxClones < 0 {
		return domain.NewInvalidInputError("--max-clones must be >= 0", nil)
	}

	req, err := buildRequest(cmd, args, &c.input, &c.detection)
	if err != nil {
		return err
	}
	req.OutputFormat = domain.OutputFormatText
	req.OutputWriter = io.Discard
	req.OutputPath = ""

	out := cmd.ErrOrStderr()
	if !c.quiet {
		fmt.Fprintf(out, "Checking mock setup in %d path(s)...\n", len(req.Paths))
	}

	clone := NewCloneCommand()
	response, err := clone.execute(cmd.Context(), cmd, req)
	if err != nil {
		return err
	}

	total := response.Summary.TotalClones
	locReduced := response.Summary.TotalLocReduced
	failed := total > c.maxClones || (c.maxLocReduced >= 0 && locReduced > c.maxLocReduced)
	if failed || !c.quiet {
		for _, group := range response.Clones {
			fmt.Fprintf(out, "  %s: %d clone(s), %d line(s) reducible\n",
				group.MockedClass, len(group.Instances), group.LocReduced())
		}
	}

	if failed {
		return &findingsError{clones: total, limit: c.maxClones, locReduced: locReduced, locLimit: c.maxLocReduced}
	}

	if !c.quiet {
		fmt.Fprintf(out, "Mock clone check passed (%d clone(s), limit %d)\n", total, c.maxClones)
	}
	return nil
}

// NewCheckCmd creates and returns the check cobra command
func NewCheckCmd() *cobra.Command {
	return NewCheckCommand().CreateCobraCommand()
}
