package service

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/mockscn/domain"
)

// OutputFormatResolver resolves the output format from the --format value and
// the per-format shortcut flags.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine returns the selected format and its file extension ("" for text).
// At most one shortcut flag may be set; a shortcut wins over formatName.
func (r *OutputFormatResolver) Determine(formatName string, html, json, csv, yaml bool) (domain.OutputFormat, string, error) {
	var selected []domain.OutputFormat
	if html {
		selected = append(selected, domain.OutputFormatHTML)
	}
	if json {
		selected = append(selected, domain.OutputFormatJSON)
	}
	if csv {
		selected = append(selected, domain.OutputFormatCSV)
	}
	if yaml {
		selected = append(selected, domain.OutputFormatYAML)
	}

	switch len(selected) {
	case 0:
	case 1:
		return selected[0], string(selected[0]), nil
	default:
		return "", "", domain.NewInvalidInputError("only one output format flag can be specified", nil)
	}

	format := domain.OutputFormat(strings.ToLower(strings.TrimSpace(formatName)))
	switch format {
	case "", domain.OutputFormatText:
		return domain.OutputFormatText, "", nil
	case domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatCSV, domain.OutputFormatHTML:
		return format, string(format), nil
	default:
		return "", "", domain.NewInvalidInputError(fmt.Sprintf("unknown output format %q", formatName), nil)
	}
}
