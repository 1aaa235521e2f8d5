// ABOUTME: Interactive TUI form for composing a diary entry.
// ABOUTME: 4-step bubbletea model collecting title, date, and contents, then registering the entry.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/diary/internal/models"
)

// Step represents the current form step.
type Step int

const (
	StepTitle Step = iota
	StepDate
	StepContents
	StepReview
	StepSaving
	StepDone
	StepFailed
)

// RegisterFn receives a composed entry. It is the only way the form hands
// an entry to the rest of the program.
type RegisterFn func(entry models.DiaryEntry) error

// registeredMsg carries the result of a registration attempt.
type registeredMsg struct {
	err error
}

// ComposeModel is the bubbletea model for the composition form.
type ComposeModel struct {
	step     Step
	title    textinput.Model
	date     textinput.Model
	contents textarea.Model
	spinner  spinner.Model
	starred  bool
	register RegisterFn
	inputErr error
	saveErr  error
	quitting bool
}

// NewComposeModel creates an empty form. An empty date input defaults to day.
func NewComposeModel(register RegisterFn, day time.Time) ComposeModel {
	titleInput := textinput.New()
	titleInput.Placeholder = "What happened today?"
	titleInput.Focus()
	titleInput.Width = 50

	dateInput := textinput.New()
	dateInput.Placeholder = day.Format(models.DateLayout)
	dateInput.CharLimit = len(models.DateLayout)
	dateInput.Width = 20

	contentsInput := textarea.New()
	contentsInput.Placeholder = "Write freely..."
	contentsInput.ShowLineNumbers = false
	contentsInput.SetWidth(60)
	contentsInput.SetHeight(8)

	s := spinner.New()
	s.Spinner = spinner.Dot

	return ComposeModel{
		step:     StepTitle,
		title:    titleInput,
		date:     dateInput,
		contents: contentsInput,
		spinner:  s,
		register: register,
	}
}

// Init implements tea.Model.
func (m ComposeModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m ComposeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			return m, tea.Quit
		}

		switch m.step {
		case StepTitle, StepDate:
			return m.updateInput(msg)
		case StepContents:
			return m.updateContents(msg)
		case StepReview:
			return m.updateReview(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case registeredMsg:
		if msg.err == nil {
			m.step = StepDone
			return m, tea.Quit
		}
		m.saveErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepSaving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m ComposeModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		switch m.step {
		case StepTitle:
			if strings.TrimSpace(m.title.Value()) == "" {
				m.inputErr = models.ErrEmptyTitle
				return m, nil
			}
			m.inputErr = nil
			m.title.Blur()
			m.step = StepDate
			m.date.Focus()
			return m, textinput.Blink

		case StepDate:
			if m.date.Value() == "" {
				m.date.SetValue(m.date.Placeholder)
			}
			if _, err := models.ParseDate(m.date.Value()); err != nil {
				m.inputErr = err
				return m, nil
			}
			m.inputErr = nil
			m.date.Blur()
			m.step = StepContents
			return m, m.contents.Focus()
		}
	}

	var cmd tea.Cmd
	if m.step == StepTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.date, cmd = m.date.Update(msg)
	}
	return m, cmd
}

func (m ComposeModel) updateContents(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlD {
		if strings.TrimSpace(m.contents.Value()) == "" {
			m.inputErr = models.ErrEmptyContents
			return m, nil
		}
		m.inputErr = nil
		m.contents.Blur()
		m.step = StepReview
		return m, nil
	}

	var cmd tea.Cmd
	m.contents, cmd = m.contents.Update(msg)
	return m, cmd
}

func (m ComposeModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		entry, err := m.Entry()
		if err != nil {
			m.inputErr = err
			return m, nil
		}
		m.step = StepSaving
		return m, tea.Batch(m.startRegister(entry), m.spinner.Tick)

	case tea.KeyRunes:
		switch msg.Runes[0] {
		case 's':
			m.starred = !m.starred
		case 'e':
			m.step = StepTitle
			m.title.Focus()
			return m, textinput.Blink
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ComposeModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		switch msg.Runes[0] {
		case 'r':
			entry, err := m.Entry()
			if err != nil {
				m.inputErr = err
				return m, nil
			}
			m.step = StepSaving
			m.saveErr = nil
			return m, tea.Batch(m.startRegister(entry), m.spinner.Tick)
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ComposeModel) startRegister(entry models.DiaryEntry) tea.Cmd {
	fn := m.register
	return func() tea.Msg {
		if fn == nil {
			return registeredMsg{}
		}
		return registeredMsg{err: fn(entry)}
	}
}

// View implements tea.Model.
func (m ComposeModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   DIARY"))
	b.WriteString(titleStyle.Render(" - New entry"))
	b.WriteString("\n\n")

	switch m.step {
	case StepTitle:
		b.WriteString(stepStyle.Render("Step 1 of 3: Title"))
		b.WriteString("\n")
		b.WriteString(m.title.View())
		b.WriteString("\n")

	case StepDate:
		b.WriteString(fmt.Sprintf("  Title: %s\n\n", m.title.Value()))
		b.WriteString(stepStyle.Render("Step 2 of 3: Date (YYYY-MM-DD)"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press Enter for " + m.date.Placeholder + ")"))
		b.WriteString("\n")
		b.WriteString(m.date.View())
		b.WriteString("\n")

	case StepContents:
		b.WriteString(fmt.Sprintf("  Title: %s\n", m.title.Value()))
		b.WriteString(fmt.Sprintf("  Date:  %s\n\n", m.date.Value()))
		b.WriteString(stepStyle.Render("Step 3 of 3: Contents"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(ctrl+d when finished)"))
		b.WriteString("\n")
		b.WriteString(m.contents.View())
		b.WriteString("\n")

	case StepReview:
		b.WriteString(m.renderSummary())
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("[enter] save  [s]tar  [e]dit  [q]uit"))
		b.WriteString("\n")

	case StepSaving:
		b.WriteString(m.renderSummary())
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" Saving entry...")
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render("✓ Saved!"))
		b.WriteString("\n")

	case StepFailed:
		errMsg := "unknown error"
		if m.saveErr != nil {
			errMsg = m.saveErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Save failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [q]uit"))
		b.WriteString("\n")
	}

	if m.inputErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.inputErr.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m ComposeModel) renderSummary() string {
	var b strings.Builder
	star := "☆"
	if m.starred {
		star = starStyle.Render("★")
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", star, m.title.Value()))
	b.WriteString(fmt.Sprintf("  Date: %s\n\n", m.date.Value()))
	for _, line := range strings.Split(m.contents.Value(), "\n") {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

// Entry builds a validated entry from the form's current values.
func (m ComposeModel) Entry() (models.DiaryEntry, error) {
	date, err := models.ParseDate(m.date.Value())
	if err != nil {
		return models.DiaryEntry{}, err
	}
	entry := models.DiaryEntry{
		Title:    strings.TrimSpace(m.title.Value()),
		Contents: m.contents.Value(),
		Date:     date,
		IsStar:   m.starred,
	}
	if err := models.Validate(entry); err != nil {
		return models.DiaryEntry{}, err
	}
	return entry, nil
}

// Saved returns true if the entry was registered and the user did not cancel.
func (m ComposeModel) Saved() bool {
	return m.step == StepDone && !m.quitting
}
