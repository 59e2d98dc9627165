package service

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ludo-technologies/mockscn/domain"
)

// FileOutputWriter writes reports to files or provided writers and optionally opens HTML in a browser.
type FileOutputWriter struct {
	status io.Writer // where to print status messages (typically stderr)
	open   func(url string) error
}

// NewFileOutputWriter creates a new FileOutputWriter.
func NewFileOutputWriter(status io.Writer) *FileOutputWriter {
	if status == nil {
		status = os.Stderr
	}
	return &FileOutputWriter{status: status, open: OpenBrowser}
}

// Write implements domain.ReportWriter. Parent directories of outputPath are
// created as needed.
func (w *FileOutputWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error {
	if outputPath == "" {
		if writer == nil {
			return domain.NewOutputError("no output destination", nil)
		}
		if err := writeFunc(writer); err != nil {
			return domain.NewOutputError("failed to write output", err)
		}
		return nil
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to create output directory: %s", dir), err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to create output file: %s", outputPath), err)
	}
	if err := writeFunc(file); err != nil {
		file.Close()
		return domain.NewOutputError("failed to write output", err)
	}
	if err := file.Close(); err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to close output file: %s", outputPath), err)
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		absPath = outputPath
	}

	if format != domain.OutputFormatHTML {
		fmt.Fprintf(w.status, "%s report generated: %s\n", strings.ToUpper(string(format)), absPath)
		return nil
	}
	if noOpen {
		fmt.Fprintf(w.status, "HTML report generated: %s\n", absPath)
		return nil
	}
	if err := w.open("file://" + absPath); err != nil {
		fmt.Fprintf(w.status, "Warning: Could not open browser: %v\n", err)
		fmt.Fprintf(w.status, "HTML report generated: %s\n", absPath)
		return nil
	}
	fmt.Fprintf(w.status, "HTML report generated and opened: %s\n", absPath)
	return nil
}

// OpenBrowser opens url with the platform's default handler without waiting for it
func OpenBrowser(url string) error {
	var name string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name = "cmd"
		args = []string{"/c", "start"}
	case "linux", "freebsd", "openbsd":
		for _, candidate := range []string{"xdg-open", "gnome-open", "kde-open"} {
			if _, err := exec.LookPath(candidate); err == nil {
				name = candidate
				break
			}
		}
		if name == "" {
			return fmt.Errorf("no suitable browser opener found")
		}
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	if err := exec.Command(name, append(args, url)...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
