package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/mockscn/internal/config"
)

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// resolveOutputDirectory returns output.directory from the configuration
// found for targetPath, relative to the working directory
func resolveOutputDirectory(configFile, targetPath string) (string, error) {
	target := configFile
	if target == "" {
		target = targetPath
	}

	cfg, err := config.NewTomlConfigLoader().LoadConfig(target)
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	config.ApplyEnvOverrides(cfg, nil)

	dir := cfg.OutputDirectory
	if dir == "" {
		dir = config.DefaultOutputDirectory
	}
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return dir, nil
	}
	return filepath.Join(cwd, dir), nil
}

// generateOutputFilePath returns a timestamped report path inside the output
// directory, creating the directory if needed
func generateOutputFilePath(command, extension, configFile, targetPath string) (string, error) {
	outputDir, err := resolveOutputDirectory(configFile, targetPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return filepath.Join(outputDir, generateTimestampedFileName(command, extension)), nil
}

// getTargetPathFromArgs extracts the first argument as target path, or returns empty string
func getTargetPathFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
