package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/mockscn/domain"
)

// NewSequencesCmd creates the sequence command, a shortcut for info --view sequences
func NewSequencesCmd() *cobra.Command {
	info := NewInfoCommand(domain.MockInfoViewSequences)
	cmd := info.CreateCobraCommand()
	cmd.Use = "sequence [paths...]"
	cmd.Aliases = []string{"sequences"}
	cmd.Short = "List per-test mock sequences"
	cmd.Long = `List one row per mock and test method with the abstracted stubbing
statements, the overlap lines and the number of lines in the test case.

Examples:
  mockscn sequence build/mock-facts
  mockscn sequence --format csv build/mock-facts > sequences.csv`
	return cmd
}
