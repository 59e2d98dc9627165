package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/mockscn/domain"
)

// errorPattern maps message fragments to a category. Rules are checked in
// order so the same error always lands in the same category.
type errorPattern struct {
	category domain.ErrorCategory
	patterns []string
}

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []errorPattern
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

func initializeErrorPatterns() []errorPattern {
	return []errorPattern{
		{domain.ErrorCategoryTimeout, []string{"timeout", "deadline", "context canceled", "timed out", "cancelled"}},
		{domain.ErrorCategoryConfig, []string{"config", ".mockscn.toml", "toml"}},
		{domain.ErrorCategoryInput, []string{"invalid input", "no fact files", "file not found", "no such file", "cannot access", "permission denied", "path"}},
		{domain.ErrorCategoryProcessing, []string{"decode", "unmarshal", "detection", "analysis", "sequence"}},
		{domain.ErrorCategoryOutput, []string{"output", "write", "report", "format"}},
	}
}

// codeCategories maps domain error codes to categories
var codeCategories = map[string]domain.ErrorCategory{
	domain.ErrCodeInvalidInput:      domain.ErrorCategoryInput,
	domain.ErrCodeFileNotFound:      domain.ErrorCategoryInput,
	domain.ErrCodeParseError:        domain.ErrorCategoryProcessing,
	domain.ErrCodeAnalysisError:     domain.ErrorCategoryProcessing,
	domain.ErrCodeConfigError:       domain.ErrorCategoryConfig,
	domain.ErrCodeOutputError:       domain.ErrorCategoryOutput,
	domain.ErrCodeUnsupportedFormat: domain.ErrorCategoryOutput,
}

// Categorize determines the category of an error. Context errors come first,
// then domain error codes, then message patterns.
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := domain.ErrorCategoryUnknown
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		category = domain.ErrorCategoryTimeout
	default:
		if c, ok := codeCategories[domain.ErrorCode(err)]; ok {
			category = c
		} else {
			category = ec.matchPatterns(strings.ToLower(err.Error()))
		}
	}

	message := err.Error()
	if category != domain.ErrorCategoryUnknown {
		message = categoryMessage(category)
	}
	return &domain.CategorizedError{
		Category: category,
		Message:  message,
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) matchPatterns(errMsg string) domain.ErrorCategory {
	for _, rule := range ec.patterns {
		for _, pattern := range rule.patterns {
			if strings.Contains(errMsg, pattern) {
				return rule.category
			}
		}
	}
	return domain.ErrorCategoryUnknown
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	switch category {
	case domain.ErrorCategoryInput:
		return []string{
			"Check that the paths exist and contain *.mocks.json or *.mocks.yaml files",
			"Use --include to match fact files with other names",
			"Ensure you have read permissions for the target files",
		}
	case domain.ErrorCategoryConfig:
		return []string{
			"Check .mockscn.toml for syntax errors",
			"Try: mockscn init to generate a valid config file",
			"min_support must be at least 2",
		}
	case domain.ErrorCategoryTimeout:
		return []string{
			"Increase --timeout or detection.timeout_seconds",
			"Analyze a smaller set of fact files",
		}
	case domain.ErrorCategoryOutput:
		return []string{
			"Check write permissions for the output directory",
			"Use --format text to print to the terminal",
		}
	case domain.ErrorCategoryProcessing:
		return []string{
			"A fact file may be truncated or not produced by a mock extractor",
			"Use --skip-invalid to continue past undecodable fact files",
			"Run with --verbose for detailed error information",
		}
	default:
		return []string{
			"Run with --verbose for detailed error information",
			"Report the issue if it persists",
		}
	}
}

func categoryMessage(category domain.ErrorCategory) string {
	switch category {
	case domain.ErrorCategoryInput:
		return "Failed to read input fact files"
	case domain.ErrorCategoryConfig:
		return "Configuration file or settings error"
	case domain.ErrorCategoryTimeout:
		return "Mock clone detection timed out"
	case domain.ErrorCategoryOutput:
		return "Failed to generate or write output"
	case domain.ErrorCategoryProcessing:
		return "Error while detecting mock clones"
	default:
		return "An unexpected error occurred"
	}
}
