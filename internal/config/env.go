package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. MOCKSCN_DETECTION_MIN_SUPPORT
const EnvPrefix = "MOCKSCN"

// envKeys lists the keys that may be overridden from the environment
var envKeys = []string{
	"input.skip_invalid",
	"detection.min_support",
	"detection.min_loc_reduced",
	"detection.include_no_stub",
	"detection.max_goroutines",
	"detection.timeout_seconds",
	"output.format",
	"output.directory",
	"output.sort_by",
	"log.level",
	"log.file",
}

// NewEnvViper returns a viper instance bound to the MOCKSCN_ environment
func NewEnvViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	return v
}

// ApplyEnvOverrides copies every set environment variable over cfg
func ApplyEnvOverrides(cfg *MockscnConfig, v *viper.Viper) {
	if v == nil {
		v = NewEnvViper()
	}

	if v.IsSet("input.skip_invalid") {
		cfg.SkipInvalid = v.GetBool("input.skip_invalid")
	}
	if v.IsSet("detection.min_support") {
		cfg.MinSupport = v.GetInt("detection.min_support")
	}
	if v.IsSet("detection.min_loc_reduced") {
		cfg.MinLocReduced = v.GetInt("detection.min_loc_reduced")
	}
	if v.IsSet("detection.include_no_stub") {
		cfg.IncludeNoStub = v.GetBool("detection.include_no_stub")
	}
	if v.IsSet("detection.max_goroutines") {
		cfg.MaxGoroutines = v.GetInt("detection.max_goroutines")
	}
	if v.IsSet("detection.timeout_seconds") {
		cfg.TimeoutSeconds = v.GetInt("detection.timeout_seconds")
	}
	if v.IsSet("output.format") {
		cfg.OutputFormat = strings.ToLower(v.GetString("output.format"))
	}
	if v.IsSet("output.directory") {
		cfg.OutputDirectory = v.GetString("output.directory")
	}
	if v.IsSet("output.sort_by") {
		cfg.SortBy = strings.ToLower(v.GetString("output.sort_by"))
	}
	if v.IsSet("log.level") {
		cfg.LogLevel = v.GetString("log.level")
	}
	if v.IsSet("log.file") {
		cfg.LogFile = v.GetString("log.file")
	}
}
