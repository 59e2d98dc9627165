package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/mockscn/app"
	"github.com/ludo-technologies/mockscn/domain"
	"github.com/ludo-technologies/mockscn/service"
)

// InfoCommand lists the classified mocks or their per-test sequences
type InfoCommand struct {
	input  inputFlags
	view   string
	format string
}

// NewInfoCommand creates a new info command
func NewInfoCommand(view domain.MockInfoView) *InfoCommand {
	return &InfoCommand{
		view:   string(view),
		format: string(domain.OutputFormatText),
	}
}

// CreateCobraCommand creates the cobra command for mock listings
func (i *InfoCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [paths...]",
		Short: "List extracted mocks and their creation patterns",
		Long: `List the mocks found in fact files without running clone detection.

The mocks view shows every mock with its creation pattern. The sequences
view shows one row per mock and test method with the abstracted stubbings
that clone mining works on.

Examples:
  # List mocks with their creation patterns
  mockscn info build/mock-facts

  # List per-test sequences as JSON
  mockscn info --view sequences --format json build/mock-facts`,
		Args: cobra.ArbitraryArgs,
		RunE: i.runInfo,
	}

	i.input.register(cmd)
	cmd.Flags().StringVar(&i.view, "view", i.view, "What to list: mocks, sequences")
	cmd.Flags().StringVarP(&i.format, "format", "f", i.format, "Output format: text, json, yaml, csv")

	return cmd
}

func (i *InfoCommand) runInfo(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd, args, &i.input, nil)
	if err != nil {
		return err
	}

	format := domain.OutputFormat(strings.ToLower(i.format))
	if format == domain.OutputFormatHTML {
		return domain.NewUnsupportedFormatError(string(format))
	}
	req.OutputFormat = format
	req.OutputPath = ""
	req.OutputWriter = cmd.OutOrStdout()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reader := service.NewFactReader()
	useCase, err := app.NewMockInfoUseCaseBuilder().
		WithService(service.NewMockCloneService(reader, nil, slog.Default())).
		WithFactReader(reader).
		WithFormatter(service.NewMockCloneFormatter()).
		Build()
	if err != nil {
		return err
	}

	_, err = useCase.Execute(ctx, *req, domain.MockInfoView(strings.ToLower(i.view)))
	return err
}

// NewInfoCmd creates and returns the info cobra command
func NewInfoCmd() *cobra.Command {
	return NewInfoCommand(domain.MockInfoViewMocks).CreateCobraCommand()
}
