package service

import (
	"bytes"
	"testing"

	"github.com/ludo-technologies/mockscn/domain"
)

func TestProgressManagerImpl_Interface(t *testing.T) {
	var _ domain.ProgressManager = &ProgressManagerImpl{}
	var _ domain.ProgressManager = NewProgressManager()
}

func TestProgressManager_NonInteractiveWriter(t *testing.T) {
	pm := NewProgressManagerWithDescription("test")
	var buf bytes.Buffer
	pm.SetWriter(&buf)

	if pm.IsInteractive() {
		t.Error("expected a buffer writer to be non-interactive")
	}

	pm.Initialize(3)
	pm.Start()
	pm.Increment(1)
	pm.Increment(2)
	pm.Complete(true)
	pm.Close()

	if pm.Current() != 3 {
		t.Errorf("expected current 3, got %d", pm.Current())
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestProgressManager_UpdateResetsTotals(t *testing.T) {
	pm := NewProgressManagerWithDescription("test")
	pm.SetWriter(&bytes.Buffer{})

	pm.Initialize(2)
	pm.Update(5, 10)
	if pm.Current() != 5 {
		t.Errorf("expected current 5, got %d", pm.Current())
	}

	pm.Initialize(4)
	if pm.Current() != 0 {
		t.Errorf("expected Initialize to reset progress, got %d", pm.Current())
	}
}

func TestIsInteractiveEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")
	if IsInteractiveEnvironment() {
		t.Error("expected CI to disable interactive progress")
	}
}
