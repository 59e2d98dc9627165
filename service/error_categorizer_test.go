package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/mockscn/domain"
)

func TestNewErrorCategorizer(t *testing.T) {
	categorizer := NewErrorCategorizer()
	assert.NotNil(t, categorizer)
	assert.IsType(t, &ErrorCategorizerImpl{}, categorizer)
}

func TestCategorize(t *testing.T) {
	categorizer := NewErrorCategorizer()

	tests := []struct {
		name         string
		err          error
		wantCategory domain.ErrorCategory
	}{
		{"file not found code", domain.NewFileNotFoundError("a.json", nil), domain.ErrorCategoryInput},
		{"parse error code", domain.NewParseError("a.json", errors.New("unexpected EOF")), domain.ErrorCategoryProcessing},
		{"config error code", domain.NewConfigError("bad", nil), domain.ErrorCategoryConfig},
		{"output error code", domain.NewOutputError("disk full", nil), domain.ErrorCategoryOutput},
		{"wrapped domain error", fmt.Errorf("run: %w", domain.NewAnalysisError("boom", nil)), domain.ErrorCategoryProcessing},
		{"deadline", fmt.Errorf("detection: %w", context.DeadlineExceeded), domain.ErrorCategoryTimeout},
		{"canceled inside a domain error", domain.NewAnalysisError("stopped", context.Canceled), domain.ErrorCategoryTimeout},
		{"toml message", errors.New("failed to parse .mockscn.toml"), domain.ErrorCategoryConfig},
		{"no fact files message", errors.New("no fact files found"), domain.ErrorCategoryInput},
		{"unknown", errors.New("something odd"), domain.ErrorCategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizer.Categorize(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.err, got.Original)
		})
	}
}

func TestCategorize_IsDeterministic(t *testing.T) {
	categorizer := NewErrorCategorizer()
	// matches both timeout and output fragments; the first rule wins every time
	err := errors.New("write timed out")

	for i := 0; i < 20; i++ {
		assert.Equal(t, domain.ErrorCategoryTimeout, categorizer.Categorize(err).Category)
	}
}

func TestCategorize_Nil(t *testing.T) {
	assert.Nil(t, NewErrorCategorizer().Categorize(nil))
}

func TestCategorize_UnknownKeepsMessage(t *testing.T) {
	got := NewErrorCategorizer().Categorize(errors.New("something odd"))
	assert.Equal(t, "something odd", got.Message)
}

func TestGetRecoverySuggestions(t *testing.T) {
	categorizer := NewErrorCategorizer()

	categories := []domain.ErrorCategory{
		domain.ErrorCategoryInput,
		domain.ErrorCategoryConfig,
		domain.ErrorCategoryTimeout,
		domain.ErrorCategoryOutput,
		domain.ErrorCategoryProcessing,
		domain.ErrorCategoryUnknown,
	}
	for _, category := range categories {
		assert.NotEmpty(t, categorizer.GetRecoverySuggestions(category), string(category))
	}
	assert.Contains(t, categorizer.GetRecoverySuggestions(domain.ErrorCategoryConfig), "Try: mockscn init to generate a valid config file")
}
