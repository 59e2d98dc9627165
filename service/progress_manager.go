package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/ludo-technologies/mockscn/domain"
)

// DefaultProgressDescription labels the bar while groups are being processed
const DefaultProgressDescription = "Detecting mock clones"

// ProgressManagerImpl implements the ProgressManager interface.
// Nothing is rendered unless the writer is a terminal.
type ProgressManagerImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	progressBar *progressbar.ProgressBar
	interactive bool
	description string
	maxValue    int
	current     int
}

// NewProgressManager creates a progress manager writing to stderr
func NewProgressManager() domain.ProgressManager {
	return NewProgressManagerWithDescription(DefaultProgressDescription)
}

// NewProgressManagerWithDescription creates a progress manager with a custom label
func NewProgressManagerWithDescription(description string) *ProgressManagerImpl {
	return &ProgressManagerImpl{
		writer:      os.Stderr,
		interactive: IsInteractiveEnvironment(),
		description: description,
	}
}

// Initialize sets the total and resets the current value
func (pm *ProgressManagerImpl) Initialize(maxValue int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.maxValue = maxValue
	pm.current = 0
}

// Start creates the progress bar
func (pm *ProgressManagerImpl) Start() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.interactive && pm.progressBar == nil && pm.maxValue > 0 {
		pm.progressBar = pm.createProgressBar(pm.maxValue)
	}
}

// Complete finishes the progress bar
func (pm *ProgressManagerImpl) Complete(success bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar != nil && success {
		_ = pm.progressBar.Finish()
	}
}

// Update sets the absolute progress
func (pm *ProgressManagerImpl) Update(processed, total int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if total != pm.maxValue {
		pm.maxValue = total
		if pm.progressBar != nil {
			pm.progressBar.ChangeMax(total)
		}
	}
	pm.current = processed

	if pm.progressBar == nil && pm.interactive && total > 0 {
		pm.progressBar = pm.createProgressBar(total)
	}
	if pm.progressBar != nil {
		_ = pm.progressBar.Set(processed)
	}
}

// Increment advances the progress by n units
func (pm *ProgressManagerImpl) Increment(n int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.current += n
	if pm.progressBar != nil {
		_ = pm.progressBar.Add(n)
	}
}

// Current returns the number of units processed so far
func (pm *ProgressManagerImpl) Current() int {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	return pm.current
}

// SetWriter sets the output writer for progress bars
func (pm *ProgressManagerImpl) SetWriter(writer io.Writer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.writer = writer

	if file, ok := writer.(*os.File); ok {
		pm.interactive = term.IsTerminal(int(file.Fd()))
	} else {
		pm.interactive = false
	}
}

// IsInteractive returns true if progress bars should be shown
func (pm *ProgressManagerImpl) IsInteractive() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	return pm.interactive
}

// Close cleans up any resources
func (pm *ProgressManagerImpl) Close() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar != nil {
		_ = pm.progressBar.Close()
		pm.progressBar = nil
	}
}

func (pm *ProgressManagerImpl) createProgressBar(max int) *progressbar.ProgressBar {
	writer := pm.writer
	if writer == nil {
		writer = io.Discard
	}

	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(pm.description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(writer)
		}),
	)
}

// IsInteractiveEnvironment reports whether stderr is a terminal and CI is not set
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
