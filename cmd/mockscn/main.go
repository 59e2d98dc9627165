package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/mockscn/domain"
	"github.com/ludo-technologies/mockscn/internal/config"
	"github.com/ludo-technologies/mockscn/internal/version"
	"github.com/ludo-technologies/mockscn/service"
)

// Exit codes
const (
	exitOK       = 0
	exitFindings = 1
	exitFailure  = 2
)

// findingsError reports that a check exceeded its clone or line limit.
// A negative locLimit means lines were not checked.
type findingsError struct {
	clones     int
	limit      int
	locReduced int
	locLimit   int
}

func (e *findingsError) Error() string {
	if e.locLimit >= 0 && e.locReduced > e.locLimit {
		return fmt.Sprintf("found %d mock clones with %d reducible lines (allowed: %d clones, %d lines)",
			e.clones, e.locReduced, e.limit, e.locLimit)
	}
	return fmt.Sprintf("found %d mock clones (allowed: %d)", e.clones, e.limit)
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var logFile string

	rootCmd := &cobra.Command{
		Use:   "mockscn",
		Short: "Find duplicated mock setup in unit tests",
		Long: `mockscn reads mock facts extracted from test sources and reports
groups of tests that repeat the same mock creation and stubbing.

Each reported clone is a candidate for moving the shared setup into a
fixture or helper.

Features:
  • Frequent stubbing patterns mined per mocked class
  • Conflict-free assignment of tests to clone groups
  • Clusters of created-but-never-stubbed mocks
  • Text, JSON, YAML, CSV and HTML reports`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.NewTomlConfigLoader().LoadConfig(".")
			if err != nil {
				cfg = config.DefaultMockscnConfig()
			}
			config.ApplyEnvOverrides(cfg, nil)
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
			}
			configureLogger(cfg.LogFile, cfg.LogLevel, verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", config.DefaultLogFile, "Log file path")

	rootCmd.AddCommand(NewCloneCmd())
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewInfoCmd())
	rootCmd.AddCommand(NewSequencesCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// exitCode maps a command error to the process exit status
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var findings *findingsError
	if errors.As(err, &findings) {
		return exitFindings
	}
	return exitFailure
}

func reportError(err error) {
	var findings *findingsError
	if errors.As(err, &findings) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return
	}

	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if !domain.IsUsageError(err) && categorized.Category == domain.ErrorCategoryUnknown {
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s. Suggestions:\n", categorized.Message)
	for _, suggestion := range categorizer.GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(os.Stderr, "  - %s\n", suggestion)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(err)
		os.Exit(exitCode(err))
	}
}
