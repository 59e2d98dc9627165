package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/mockscn/domain"
)

func TestOutputFormatResolver_Determine(t *testing.T) {
	r := NewOutputFormatResolver()

	tests := []struct {
		name       string
		formatName string
		html       bool
		json       bool
		csv        bool
		yaml       bool
		wantFormat domain.OutputFormat
		wantExt    string
	}{
		{name: "default text", wantFormat: domain.OutputFormatText},
		{name: "format name", formatName: "YAML", wantFormat: domain.OutputFormatYAML, wantExt: "yaml"},
		{name: "html flag", html: true, wantFormat: domain.OutputFormatHTML, wantExt: "html"},
		{name: "flag wins over name", formatName: "text", json: true, wantFormat: domain.OutputFormatJSON, wantExt: "json"},
		{name: "csv flag", csv: true, wantFormat: domain.OutputFormatCSV, wantExt: "csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, ext, err := r.Determine(tt.formatName, tt.html, tt.json, tt.csv, tt.yaml)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, tt.wantExt, ext)
		})
	}

	t.Run("conflicting flags", func(t *testing.T) {
		_, _, err := r.Determine("", true, true, false, false)
		assert.True(t, domain.IsUsageError(err))
	})

	t.Run("unknown name", func(t *testing.T) {
		_, _, err := r.Determine("xml", false, false, false, false)
		assert.True(t, domain.IsUsageError(err))
	})
}
