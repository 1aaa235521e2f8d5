// ABOUTME: Interactive TUI wizard for choosing where the diary is stored.
// ABOUTME: 3-step bubbletea model collecting backend, path, and slot key, then validating them.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/diary/internal/diary"
	"github.com/2389-research/diary/internal/storage"
)

// SetupStep represents the current wizard step.
type SetupStep int

const (
	SetupBackend SetupStep = iota
	SetupPath
	SetupKey
	SetupValidating
	SetupDone
	SetupFailed
)

// validationResultMsg carries the result of a storage validation attempt.
type validationResultMsg struct {
	err error
}

// ValidateFn checks that a storage choice is usable.
type ValidateFn func(backend, path, key string) error

// SetupModel is the bubbletea model for the setup wizard.
type SetupModel struct {
	step          SetupStep
	inputs        [3]textinput.Model
	spinner       spinner.Model
	validateFn    ValidateFn
	inputErr      error
	validationErr error
	quitting      bool
}

// NewSetupModel creates a new setup wizard model, pre-filling with existing config values.
func NewSetupModel(backend, path, key string) SetupModel {
	backendInput := textinput.New()
	backendInput.Placeholder = storage.BackendFile
	backendInput.Focus()
	backendInput.Width = 20
	if backend != "" {
		backendInput.SetValue(backend)
	}

	pathInput := textinput.New()
	pathInput.Placeholder = "default location"
	pathInput.Width = 50
	if path != "" {
		pathInput.SetValue(path)
	}

	keyInput := textinput.New()
	keyInput.Placeholder = diary.DefaultKey
	keyInput.Width = 30
	if key != "" {
		keyInput.SetValue(key)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return SetupModel{
		step:       SetupBackend,
		inputs:     [3]textinput.Model{backendInput, pathInput, keyInput},
		spinner:    s,
		validateFn: ValidateStorage,
	}
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			return m, tea.Quit
		}

		switch m.step {
		case SetupBackend, SetupPath, SetupKey:
			return m.updateInput(msg)
		case SetupFailed:
			return m.updateFailed(msg)
		}

	case validationResultMsg:
		if msg.err == nil {
			m.step = SetupDone
			return m, tea.Quit
		}
		m.validationErr = msg.err
		m.step = SetupFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == SetupValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		idx := int(m.step)

		switch m.step {
		case SetupBackend:
			val := strings.ToLower(strings.TrimSpace(m.inputs[0].Value()))
			if val == "" {
				val = storage.BackendFile
			}
			switch val {
			case storage.BackendFile, storage.BackendSQLite, storage.BackendMemory:
			default:
				m.inputErr = fmt.Errorf("unknown backend %q (want file, sqlite, or memory)", val)
				return m, nil
			}
			m.inputs[0].SetValue(val)
		case SetupPath:
			m.inputs[1].SetValue(strings.TrimSpace(m.inputs[1].Value()))
		case SetupKey:
			if strings.TrimSpace(m.inputs[2].Value()) == "" {
				m.inputs[2].SetValue(diary.DefaultKey)
			}
		}

		m.inputErr = nil
		m.inputs[idx].Blur()

		switch m.step {
		case SetupBackend:
			m.step = SetupPath
			m.inputs[1].Focus()
			return m, textinput.Blink
		case SetupPath:
			m.step = SetupKey
			m.inputs[2].Focus()
			return m, textinput.Blink
		case SetupKey:
			m.step = SetupValidating
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		}
	}

	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m SetupModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		switch msg.Runes[0] {
		case 'r':
			m.step = SetupValidating
			m.validationErr = nil
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		case 's':
			m.step = SetupDone
			return m, tea.Quit
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SetupModel) startValidation() tea.Cmd {
	backend, path, key := m.Result()
	fn := m.validateFn
	return func() tea.Msg {
		return validationResultMsg{err: fn(backend, path, key)}
	}
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   DIARY"))
	b.WriteString(titleStyle.Render(" - Setup"))
	b.WriteString("\n\n")
	b.WriteString("Choose where your diary is kept.\n\n")

	pathLabel := m.inputs[1].Value()
	if pathLabel == "" {
		pathLabel = "(default)"
	}

	switch m.step {
	case SetupBackend:
		b.WriteString(stepStyle.Render("Step 1 of 3: Backend (file, sqlite, memory)"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press Enter for file)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")

	case SetupPath:
		b.WriteString(fmt.Sprintf("  Backend: %s\n\n", m.inputs[0].Value()))
		b.WriteString(stepStyle.Render("Step 2 of 3: Path"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(directory for file, database file for sqlite; Enter for default)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")

	case SetupKey:
		b.WriteString(fmt.Sprintf("  Backend: %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Path:    %s\n\n", pathLabel))
		b.WriteString(stepStyle.Render("Step 3 of 3: Slot key"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press Enter for " + diary.DefaultKey + ")"))
		b.WriteString("\n")
		b.WriteString(m.inputs[2].View())
		b.WriteString("\n")

	case SetupValidating:
		b.WriteString(fmt.Sprintf("  Backend: %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Path:    %s\n", pathLabel))
		b.WriteString(fmt.Sprintf("  Key:     %s\n\n", m.inputs[2].Value()))
		b.WriteString(m.spinner.View())
		b.WriteString(" Checking storage (sqlite creates the database file)...")
		b.WriteString("\n")

	case SetupDone:
		b.WriteString(successStyle.Render("✓ Storage ready!"))
		b.WriteString("\n")

	case SetupFailed:
		errMsg := "unknown error"
		if m.validationErr != nil {
			errMsg = m.validationErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Storage check failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [s]ave anyway  [q]uit"))
		b.WriteString("\n")
	}

	if m.inputErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.inputErr.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the entered values.
func (m SetupModel) Result() (backend, path, key string) {
	return m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value()
}

// ShouldSave returns true if the wizard completed (via validation success or
// "save anyway") and the user did not cancel with Ctrl+C, Escape, or 'q'.
func (m SetupModel) ShouldSave() bool {
	return m.step == SetupDone && !m.quitting
}
