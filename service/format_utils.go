package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/mockscn/domain"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

// Standard formatting constants
const (
	HeaderWidth    = 40
	SectionPadding = 2
	ItemPadding    = 4
)

// ANSI color codes
const (
	ColorReset  = "\x1b[0m"
	ColorYellow = "\x1b[33m"
	ColorGreen  = "\x1b[32m"
	ColorBold   = "\x1b[1m"
)

// FormatUtils provides shared text formatting helpers
type FormatUtils struct{}

// NewFormatUtils creates a new format utilities instance
func NewFormatUtils() *FormatUtils {
	return &FormatUtils{}
}

// FormatMainHeader creates a title underlined with '='
func (f *FormatUtils) FormatMainHeader(title string) string {
	return title + "\n" + strings.Repeat("=", HeaderWidth) + "\n\n"
}

// FormatSectionHeader creates an upper-cased title underlined with '-'
func (f *FormatUtils) FormatSectionHeader(title string) string {
	return strings.ToUpper(title) + "\n" + strings.Repeat("-", len(title)) + "\n"
}

// FormatLabelWithIndent creates an indented "label: value" line
func (f *FormatUtils) FormatLabelWithIndent(indent int, label string, value interface{}) string {
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", indent), label, value)
}

// FormatDuration formats duration in milliseconds
func (f *FormatUtils) FormatDuration(durationMs int64) string {
	return fmt.Sprintf("%dms", durationMs)
}

// FormatWarningsSection lists warnings, or returns "" when there are none
func (f *FormatUtils) FormatWarningsSection(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("Warnings"))
	for _, warning := range warnings {
		builder.WriteString(strings.Repeat(" ", SectionPadding) + "! " + warning + "\n")
	}
	builder.WriteString("\n")
	return builder.String()
}
