package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefaultConfigTOML(t *testing.T) {
	content, err := GenerateDefaultConfigTOML()
	require.NoError(t, err)

	for _, section := range []string{"[input]", "[detection]", "[output]", "[log]"} {
		assert.True(t, strings.Contains(content, section), "missing section %s", section)
	}
	assert.Contains(t, content, "min_support = 2")
	assert.Contains(t, content, `include_patterns = ["**/*.mocks.json", "**/*.mocks.yaml", "**/*.mocks.yml"]`)
}

func TestLoadDefaultConfigFromTOMLMatchesDefaults(t *testing.T) {
	loaded, err := LoadDefaultConfigFromTOML()
	require.NoError(t, err)

	assert.Equal(t, DefaultMockscnConfig(), loaded)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("MOCKSCN_DETECTION_MIN_SUPPORT", "4")
	t.Setenv("MOCKSCN_DETECTION_INCLUDE_NO_STUB", "false")
	t.Setenv("MOCKSCN_OUTPUT_FORMAT", "JSON")
	t.Setenv("MOCKSCN_LOG_LEVEL", "debug")

	cfg := DefaultMockscnConfig()
	ApplyEnvOverrides(cfg, NewEnvViper())

	assert.Equal(t, 4, cfg.MinSupport)
	assert.False(t, cfg.IncludeNoStub)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultOutputDirectory, cfg.OutputDirectory)
}
