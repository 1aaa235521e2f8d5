// ABOUTME: Unit tests for the storage setup TUI wizard bubbletea model.
// ABOUTME: Uses synthetic tea.Msg values to test state machine transitions.
package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/diary/internal/diary"
)

func TestNewSetupModel_DefaultValues(t *testing.T) {
	m := NewSetupModel("", "", "")
	if m.step != SetupBackend {
		t.Errorf("expected initial step SetupBackend, got %d", m.step)
	}
	if m.inputs[0].Value() != "" {
		t.Error("expected empty backend input for new config")
	}
}

func TestNewSetupModel_ExistingConfig(t *testing.T) {
	m := NewSetupModel("sqlite", "~/diary.db", "work")
	backend, path, key := m.Result()
	if backend != "sqlite" || path != "~/diary.db" || key != "work" {
		t.Errorf("expected pre-filled values, got %q %q %q", backend, path, key)
	}
}

func TestSetupModel_StepTransitions(t *testing.T) {
	m := NewSetupModel("", "", "")

	m.inputs[0].SetValue("SQLite")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.step != SetupPath {
		t.Errorf("expected SetupPath after Enter on backend, got %d", m.step)
	}
	if m.inputs[0].Value() != "sqlite" {
		t.Errorf("expected backend normalized to lower case, got %q", m.inputs[0].Value())
	}

	m.inputs[1].SetValue("/tmp/diary.db")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.step != SetupKey {
		t.Errorf("expected SetupKey after Enter on path, got %d", m.step)
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.step != SetupValidating {
		t.Errorf("expected SetupValidating after Enter on key, got %d", m.step)
	}
	if m.inputs[2].Value() != diary.DefaultKey {
		t.Errorf("expected default key %q, got %q", diary.DefaultKey, m.inputs[2].Value())
	}
	if cmd == nil {
		t.Error("expected non-nil cmd (validation + spinner tick) when entering validation")
	}
}

func TestSetupModel_DefaultBackend(t *testing.T) {
	m := NewSetupModel("", "", "")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.inputs[0].Value() != "file" {
		t.Errorf("expected default backend file, got %q", m.inputs[0].Value())
	}
	if m.step != SetupPath {
		t.Errorf("expected SetupPath after default backend applied, got %d", m.step)
	}
}

func TestSetupModel_UnknownBackendBlocked(t *testing.T) {
	m := NewSetupModel("postgres", "", "")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.step != SetupBackend {
		t.Errorf("expected to stay on SetupBackend, got %d", m.step)
	}
	if m.inputErr == nil || !strings.Contains(m.View(), "unknown backend") {
		t.Error("expected unknown backend error in view")
	}
}

func TestSetupModel_EmptyPathAllowed(t *testing.T) {
	m := NewSetupModel("", "", "")
	m.step = SetupPath

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.step != SetupKey {
		t.Errorf("expected SetupKey with empty path, got %d", m.step)
	}
	if !strings.Contains(m.View(), "(default)") {
		t.Error("expected view to label the default path")
	}
}

func TestSetupModel_ValidationSuccess(t *testing.T) {
	m := NewSetupModel("", "", "")
	m.step = SetupValidating

	updated, cmd := m.Update(validationResultMsg{err: nil})
	m = updated.(SetupModel)
	if m.step != SetupDone {
		t.Errorf("expected SetupDone after successful validation, got %d", m.step)
	}
	if cmd == nil {
		t.Error("expected quit cmd after validation")
	}
}

func TestSetupModel_ValidationFailure(t *testing.T) {
	m := NewSetupModel("", "", "")
	m.step = SetupValidating

	updated, _ := m.Update(validationResultMsg{err: fmt.Errorf("permission denied")})
	m = updated.(SetupModel)
	if m.step != SetupFailed {
		t.Errorf("expected SetupFailed after validation error, got %d", m.step)
	}
	if m.validationErr == nil {
		t.Error("expected validationErr to be set")
	}
}

func TestSetupModel_FailedKeys(t *testing.T) {
	tests := []struct {
		name     string
		key      rune
		wantStep SetupStep
		wantSave bool
		wantQuit bool
	}{
		{"retry", 'r', SetupValidating, false, false},
		{"save anyway", 's', SetupDone, true, false},
		{"quit", 'q', SetupFailed, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSetupModel("", "", "")
			m.step = SetupFailed
			m.validationErr = fmt.Errorf("some error")

			updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tt.key}})
			m = updated.(SetupModel)
			if m.step != tt.wantStep {
				t.Errorf("expected step %d, got %d", tt.wantStep, m.step)
			}
			if cmd == nil {
				t.Error("expected non-nil cmd")
			}
			if m.ShouldSave() != tt.wantSave {
				t.Errorf("ShouldSave = %v, want %v", m.ShouldSave(), tt.wantSave)
			}
			if m.quitting != tt.wantQuit {
				t.Errorf("quitting = %v, want %v", m.quitting, tt.wantQuit)
			}
		})
	}
}

func TestSetupModel_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEscape}} {
		m := NewSetupModel("", "", "")
		updated, cmd := m.Update(msg)
		m = updated.(SetupModel)
		if cmd == nil {
			t.Errorf("expected quit cmd on %s", msg)
		}
		if !m.quitting || m.ShouldSave() {
			t.Errorf("expected cancelled wizard on %s", msg)
		}
	}
}

func TestSetupModel_ValidationPassesCorrectArgs(t *testing.T) {
	var gotBackend, gotPath, gotKey string
	m := NewSetupModel("", "", "")
	m.validateFn = func(backend, path, key string) error {
		gotBackend, gotPath, gotKey = backend, path, key
		return nil
	}
	m.inputs[0].SetValue("file")
	m.inputs[1].SetValue("/srv/diary")
	m.inputs[2].SetValue("work")
	m.step = SetupKey

	_, batchCmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// batchMsg[0] is the validation cmd, batchMsg[1] is the spinner tick
	batchMsg := batchCmd().(tea.BatchMsg)
	batchMsg[0]()

	if gotBackend != "file" || gotPath != "/srv/diary" || gotKey != "work" {
		t.Errorf("validation got %q %q %q", gotBackend, gotPath, gotKey)
	}
}

func TestSetupModel_ViewShowsCurrentStep(t *testing.T) {
	m := NewSetupModel("", "", "")

	checks := []struct {
		step SetupStep
		want string
	}{
		{SetupBackend, "Backend"},
		{SetupPath, "Path"},
		{SetupKey, "Slot key"},
		{SetupValidating, "Checking storage"},
		{SetupDone, "Storage ready"},
	}
	for _, c := range checks {
		m.step = c.step
		if !strings.Contains(m.View(), c.want) {
			t.Errorf("expected step %d view to contain %q", c.step, c.want)
		}
	}
}

func TestSetupModel_ViewFailed(t *testing.T) {
	m := NewSetupModel("", "", "")
	m.step = SetupFailed
	m.validationErr = fmt.Errorf("read-only file system")
	view := m.View()
	for _, want := range []string{"Storage check failed", "read-only file system", "[r]etry", "[s]ave anyway", "[q]uit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected failed view to contain %q", want)
		}
	}
}
