package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/pelletier/go-toml/v2"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// GenerateDefaultConfigTOML renders the default config template with the
// values of DefaultMockscnConfig and checks that the result parses.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, DefaultMockscnConfig()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	var check MockscnTomlConfig
	if err := toml.Unmarshal(buf.Bytes(), &check); err != nil {
		return "", fmt.Errorf("rendered default config is not valid TOML: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered default config the same way a
// user file is parsed
func LoadDefaultConfigFromTOML() (*MockscnConfig, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}

	var tomlCfg MockscnTomlConfig
	if err := toml.Unmarshal([]byte(configTOML), &tomlCfg); err != nil {
		return nil, err
	}

	cfg := DefaultMockscnConfig()
	loader := NewTomlConfigLoader()
	loader.mergeInputSection(cfg, &tomlCfg.Input)
	loader.mergeDetectionSection(cfg, &tomlCfg.Detection)
	loader.mergeOutputSection(cfg, &tomlCfg.Output)
	loader.mergeLogSection(cfg, &tomlCfg.Log)
	return cfg, nil
}
