package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/mockscn/app"
	"github.com/ludo-technologies/mockscn/domain"
	"github.com/ludo-technologies/mockscn/service"
)

// CloneCommand handles the mock clone detection CLI command
type CloneCommand struct {
	input     inputFlags
	detection detectionFlags

	// Output format flags (only one should be true)
	format string
	html   bool
	json   bool
	csv    bool
	yaml   bool
	noOpen bool
	output string

	// Output options
	showDetails bool
	sortBy      string
}

// NewCloneCommand creates a new clone detection command
func NewCloneCommand() *CloneCommand {
	return &CloneCommand{
		format: string(domain.OutputFormatText),
		sortBy: string(domain.MockCloneSortByLocReduced),
	}
}

// CreateCobraCommand creates the Cobra command for clone detection
func (c *CloneCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone [paths...]",
		Short: "Detect duplicated mock setup",
		Long: `Detect mock clones in extracted mock fact files.

Mocks of the same class in the same namespace are grouped. Within a group,
stubbing statements shared by at least --min-support tests are mined and each
test is assigned to at most one clone. Mocks that are created but never
stubbed are clustered per test file.

Fact files are *.mocks.json or *.mocks.yaml documents produced by an extractor.

Examples:
  # Detect clones in all fact files below the current directory
  mockscn clone .

  # Require three tests to share a stubbing set
  mockscn clone --min-support 3 build/mock-facts

  # Show the tests of every clone
  mockscn clone --details build/mock-facts

  # Write an HTML report
  mockscn clone --html build/mock-facts`,
		Args: cobra.ArbitraryArgs,
		RunE: c.runCloneDetection,
	}

	c.input.register(cmd)
	c.detection.register(cmd)

	cmd.Flags().StringVarP(&c.format, "format", "f", c.format, "Output format: text, json, yaml, csv, html")
	cmd.Flags().BoolVar(&c.html, "html", false, "Generate HTML report file")
	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Generate CSV report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().BoolVar(&c.noOpen, "no-open", false, "Don't auto-open HTML in browser")
	cmd.Flags().StringVarP(&c.output, "output", "o", "", "Report file path (default: timestamped file in the output directory)")

	cmd.Flags().BoolVarP(&c.showDetails, "details", "d", false, "List the tests of every clone")
	cmd.Flags().StringVar(&c.sortBy, "sort", c.sortBy, "Sort clones by: loc, size, class")

	return cmd
}

// runCloneDetection executes the clone detection command
func (c *CloneCommand) runCloneDetection(cmd *cobra.Command, args []string) error {
	req, err := c.buildRequest(cmd, args)
	if err != nil {
		return err
	}

	_, err = c.execute(cmd.Context(), cmd, req)
	return err
}

func (c *CloneCommand) buildRequest(cmd *cobra.Command, args []string) (*domain.MockCloneRequest, error) {
	req, err := buildRequest(cmd, args, &c.input, &c.detection)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	formatName := string(req.OutputFormat)
	if flags.Changed("format") {
		formatName = c.format
	}
	format, ext, err := service.NewOutputFormatResolver().Determine(formatName, c.html, c.json, c.csv, c.yaml)
	if err != nil {
		return nil, err
	}
	req.OutputFormat = format

	if flags.Changed("sort") {
		req.SortBy = domain.MockCloneSortCriteria(c.sortBy)
	}
	req.ShowDetails = req.ShowDetails || c.showDetails
	req.NoOpen = c.noOpen

	switch {
	case c.output != "":
		req.OutputPath = c.output
	case format == domain.OutputFormatText:
		req.OutputWriter = cmd.OutOrStdout()
	default:
		path, err := generateOutputFilePath("mock_clones", ext, c.input.configFile, getTargetPathFromArgs(args))
		if err != nil {
			return nil, err
		}
		req.OutputPath = path
	}

	return req, nil
}

func (c *CloneCommand) execute(ctx context.Context, cmd *cobra.Command, req *domain.MockCloneRequest) (*domain.MockCloneResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	progress := service.NewProgressManager()
	defer progress.Close()

	useCase, err := app.NewMockCloneUseCaseBuilder().
		WithService(service.NewMockCloneService(service.NewFactReader(), progress, slog.Default())).
		WithFactReader(service.NewFactReader()).
		WithFormatter(service.NewMockCloneFormatter().WithDetails(req.ShowDetails)).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return nil, err
	}

	return useCase.Execute(ctx, *req)
}

// NewCloneCmd creates and returns the clone cobra command
func NewCloneCmd() *cobra.Command {
	return NewCloneCommand().CreateCobraCommand()
}
