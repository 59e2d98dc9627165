package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ludo-technologies/mockscn/domain"
)

// MockCloneFormatterImpl implements the domain.MockCloneFormatter interface
type MockCloneFormatterImpl struct {
	utils       *FormatUtils
	showDetails bool
}

// NewMockCloneFormatter creates a new mock clone formatter
func NewMockCloneFormatter() *MockCloneFormatterImpl {
	return &MockCloneFormatterImpl{utils: NewFormatUtils()}
}

// WithDetails makes text output list the sequences of every clone
func (f *MockCloneFormatterImpl) WithDetails(show bool) *MockCloneFormatterImpl {
	f.showDetails = show
	return f
}

// Format formats the clone response according to the specified format
func (f *MockCloneFormatterImpl) Format(response *domain.MockCloneResponse, format domain.OutputFormat) (string, error) {
	var buf bytes.Buffer
	if err := f.Write(response, format, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write writes the formatted clone output to the writer
func (f *MockCloneFormatterImpl) Write(response *domain.MockCloneResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return domain.NewOutputError("nothing to format", nil)
	}

	switch format {
	case domain.OutputFormatText, "":
		return f.writeText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.writeCSV(response, writer)
	case domain.OutputFormatHTML:
		return writeHTMLReport(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteInfo writes the formatted mock listing to the writer
func (f *MockCloneFormatterImpl) WriteInfo(response *domain.MockInfoResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return domain.NewOutputError("nothing to format", nil)
	}

	switch format {
	case domain.OutputFormatText, "":
		return f.writeInfoText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.writeInfoCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *MockCloneFormatterImpl) writeText(response *domain.MockCloneResponse, writer io.Writer) error {
	var sb strings.Builder
	s := response.Summary

	sb.WriteString(f.utils.FormatMainHeader("Mock Clone Detection Results"))

	sb.WriteString(f.utils.FormatSectionHeader("Summary"))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Fact files", s.TotalFactFiles))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Mocks", s.TotalMocks))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Sequences", s.TotalSequences))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Mocked classes analyzed", fmt.Sprintf("%d of %d", s.AnalyzedGroups, s.TotalGroups)))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Clones", fmt.Sprintf("%d (%d mined, %d no-stub)", s.TotalClones, s.MinedClones, s.NoStubClones)))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Cloned sequences", s.ClonedSequences))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Removable lines", s.TotalLocReduced))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Duration", f.utils.FormatDuration(response.DurationMs)))
	sb.WriteString("\n")

	if len(response.Clones) == 0 {
		sb.WriteString(ColorGreen + "No mock clones found." + ColorReset + "\n\n")
	} else {
		sb.WriteString(f.utils.FormatSectionHeader("Clones"))
		sb.WriteString(renderCloneTable(response.Clones))
		sb.WriteString("\n")
		if f.showDetails {
			f.writeCloneDetails(&sb, response.Clones)
		}
	}

	sb.WriteString(f.utils.FormatWarningsSection(response.Warnings))

	_, err := io.WriteString(writer, sb.String())
	return err
}

func renderCloneTable(groups []domain.MockCloneGroup) string {
	var tableBuffer bytes.Buffer
	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Mocked Class", "Kind", "Sequences", "Tests", "Mocks", "Shared Lines", "LOC Reduced"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	total := 0
	for _, g := range groups {
		for _, inst := range g.Instances {
			table.Append([]string{
				inst.MockedClass,
				string(inst.Kind),
				strconv.Itoa(inst.SequenceCount),
				strconv.Itoa(inst.TestCaseCount),
				strconv.Itoa(inst.MockObjectCount),
				strconv.Itoa(inst.SharedStatementLineCount),
				strconv.Itoa(inst.LocReduced),
			})
			total += inst.LocReduced
		}
	}
	table.SetFooter([]string{"", "", "", "", "", "Total", strconv.Itoa(total)})
	table.Render()

	return tableBuffer.String()
}

func (f *MockCloneFormatterImpl) writeCloneDetails(sb *strings.Builder, groups []domain.MockCloneGroup) {
	sb.WriteString(f.utils.FormatSectionHeader("Details"))
	for _, g := range groups {
		for _, inst := range g.Instances {
			fmt.Fprintf(sb, "%s%s%s [%s] %s\n", ColorBold, inst.MockedClass, ColorReset, inst.Kind, inst.ID)
			if inst.Namespace != "" {
				sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Namespace", inst.Namespace))
			}
			if len(inst.SharedStatements) > 0 {
				sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Shared stubbing", strings.Join(inst.SharedStatements, ", ")))
			}
			for _, seq := range inst.Sequences {
				fmt.Fprintf(sb, "%s%s#%s (%s) %s lines %s\n",
					strings.Repeat(" ", ItemPadding), seq.ClassName, seq.TestMethodName,
					seq.VariableName, seq.FilePath, joinInts(seq.OverlapLines))
			}
			sb.WriteString("\n")
		}
	}
}

func (f *MockCloneFormatterImpl) writeCSV(response *domain.MockCloneResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	header := []string{
		"clone_id", "kind", "mocked_class", "namespace", "loc_reduced",
		"file_path", "class_name", "test_method", "mock_object_id", "variable_name",
		"overlap_lines", "shared_statements",
	}
	if err := w.Write(header); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}

	for _, g := range response.Clones {
		for _, inst := range g.Instances {
			shared := strings.Join(inst.SharedStatements, "; ")
			for _, seq := range inst.Sequences {
				record := []string{
					inst.ID,
					string(inst.Kind),
					inst.MockedClass,
					inst.Namespace,
					strconv.Itoa(inst.LocReduced),
					seq.FilePath,
					seq.ClassName,
					seq.TestMethodName,
					strconv.Itoa(seq.MockObjectID),
					seq.VariableName,
					joinInts(seq.OverlapLines),
					shared,
				}
				if err := w.Write(record); err != nil {
					return domain.NewOutputError("failed to write CSV record", err)
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return domain.NewOutputError("failed to flush CSV", err)
	}
	return nil
}

func (f *MockCloneFormatterImpl) writeInfoText(response *domain.MockInfoResponse, writer io.Writer) error {
	var sb strings.Builder
	var tableBuffer bytes.Buffer
	table := tablewriter.NewWriter(&tableBuffer)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	if response.View == domain.MockInfoViewSequences {
		sb.WriteString(f.utils.FormatMainHeader("Mock Sequences"))
		table.SetHeader([]string{"Mock", "Mocked Class", "Test Method", "Shared", "Test", "Stubbing"})
		for _, seq := range response.Sequences {
			table.Append([]string{
				fmt.Sprintf("#%d %s", seq.MockObjectID, seq.VariableName),
				seq.MockedClass,
				seq.ClassName + "#" + seq.TestMethodName,
				strconv.Itoa(seq.ShareableLines.Len()),
				strconv.Itoa(seq.TestLines.Len()),
				strings.Join(seq.Transaction(), ", "),
			})
		}
	} else {
		sb.WriteString(f.utils.FormatMainHeader("Mock Objects"))
		table.SetHeader([]string{"ID", "Variable", "Mocked Class", "Namespace", "File", "Pattern"})
		for _, m := range response.Mocks {
			table.Append([]string{
				strconv.Itoa(m.ID),
				m.VariableName,
				m.MockedClass,
				m.Namespace,
				m.FilePath,
				m.MockPattern,
			})
		}
	}
	table.Render()
	sb.WriteString(tableBuffer.String())
	sb.WriteString("\n")

	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Mocks", response.Summary.TotalMocks))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Sequences", response.Summary.TotalSequences))
	sb.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Mocked classes", response.Summary.TotalGroups))
	sb.WriteString("\n")
	sb.WriteString(f.utils.FormatWarningsSection(response.Warnings))

	_, err := io.WriteString(writer, sb.String())
	return err
}

func (f *MockCloneFormatterImpl) writeInfoCSV(response *domain.MockInfoResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)

	var records [][]string
	if response.View == domain.MockInfoViewSequences {
		records = append(records, []string{"mock_object_id", "variable_name", "mocked_class", "namespace", "file_path", "test_method", "shareable_lines", "test_lines", "stubbing"})
		for _, seq := range response.Sequences {
			records = append(records, []string{
				strconv.Itoa(seq.MockObjectID), seq.VariableName, seq.MockedClass, seq.Namespace,
				seq.FilePath, seq.TestMethodName,
				joinInts(seq.ShareableLines.Lines()), joinInts(seq.TestLines.Lines()),
				strings.Join(seq.Transaction(), "; "),
			})
		}
	} else {
		records = append(records, []string{"id", "variable_name", "declared_type", "mocked_class", "namespace", "file_path", "class_name", "reusable", "mock_pattern"})
		for _, m := range response.Mocks {
			records = append(records, []string{
				strconv.Itoa(m.ID), m.VariableName, m.DeclaredType, m.MockedClass, m.Namespace,
				m.FilePath, m.ClassName, strconv.FormatBool(m.IsReusable), m.MockPattern,
			})
		}
	}

	if err := w.WriteAll(records); err != nil {
		return domain.NewOutputError("failed to write CSV", err)
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
