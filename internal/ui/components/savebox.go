package components

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"stringsdb/internal/domain"
	"stringsdb/internal/ui/views"
)

const (
	// EmptyValueMessage is shown when saving a blank draft
	EmptyValueMessage = "Please inform a string to save"
	// SavedMessage is shown after a successful save
	SavedMessage = "String saved successfully!"
)

// Saver creates entries on the server
type Saver interface {
	SaveString(ctx context.Context, value string) (domain.StringEntry, error)
}

// SaveStatus is the state of the save form
type SaveStatus int

const (
	SaveIdle SaveStatus = iota
	SaveSubmitting
	SaveSucceeded
	SaveFailed
)

func (s SaveStatus) String() string {
	switch s {
	case SaveSubmitting:
		return "submitting"
	case SaveSucceeded:
		return "succeeded"
	case SaveFailed:
		return "failed"
	default:
		return "idle"
	}
}

// SaveResultMsg carries the outcome of a save request
type SaveResultMsg struct {
	Entry domain.StringEntry
	Err   error
}

// SaveBox is the "add a string" form
type SaveBox struct {
	saver  Saver
	logger *zap.Logger

	input   textinput.Model
	spinner spinner.Model
	status  SaveStatus
	err     string
}

// NewSaveBox creates the form
func NewSaveBox(saver Saver, logger *zap.Logger) SaveBox {
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Placeholder = "Type your new string"
	ti.CharLimit = 255
	ti.Width = 40

	return SaveBox{
		saver:   saver,
		logger:  logger.Named("savebox"),
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Status returns the form state
func (b *SaveBox) Status() SaveStatus { return b.status }

// Err returns the error shown by the form, if any
func (b *SaveBox) Err() string { return b.err }

// Value returns the current draft
func (b *SaveBox) Value() string { return b.input.Value() }

// SetValue replaces the draft
func (b *SaveBox) SetValue(v string) { b.input.SetValue(v) }

// Loading reports whether a save is in flight
func (b *SaveBox) Loading() bool { return b.status == SaveSubmitting }

// Focus gives the input focus. Focusing hides the success notice.
func (b *SaveBox) Focus() tea.Cmd {
	if b.status == SaveSucceeded {
		b.status = SaveIdle
	}
	return b.input.Focus()
}

// Blur removes keyboard focus
func (b *SaveBox) Blur() { b.input.Blur() }

// Focused reports whether the input has focus
func (b *SaveBox) Focused() bool { return b.input.Focused() }

// Submit validates the draft and starts the save request
func (b *SaveBox) Submit() tea.Cmd {
	if b.status == SaveSubmitting {
		return nil
	}
	value := b.input.Value()
	if strings.TrimSpace(value) == "" {
		b.status = SaveFailed
		b.err = EmptyValueMessage
		return nil
	}

	b.status = SaveSubmitting
	b.err = ""
	saver := b.saver
	return tea.Batch(b.spinner.Tick, func() tea.Msg {
		entry, err := saver.SaveString(context.Background(), value)
		return SaveResultMsg{Entry: entry, Err: err}
	})
}

// Update handles keys while focused, save results and spinner ticks
func (b *SaveBox) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SaveResultMsg:
		if msg.Err != nil {
			b.logger.Warn("save failed", zap.Error(msg.Err))
			b.status = SaveFailed
			b.err = msg.Err.Error()
			return nil
		}
		b.logger.Info("saved", zap.Int64("id", msg.Entry.ID))
		b.status = SaveSucceeded
		b.input.SetValue("")
		return nil

	case spinner.TickMsg:
		if b.status != SaveSubmitting {
			return nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if b.status == SaveSubmitting || !b.input.Focused() {
			return nil
		}
		if msg.Type == tea.KeyEnter {
			return b.Submit()
		}
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return cmd
}

// View renders the alerts, the input and the submit control
func (b *SaveBox) View(styles *views.Styles) string {
	var lines []string
	if b.err != "" {
		lines = append(lines, Alert{Kind: AlertError, Message: b.err, MarginBottom: true}.View(styles))
	}
	if b.status == SaveSucceeded {
		lines = append(lines, Alert{Kind: AlertSuccess, Message: SavedMessage, MarginBottom: true}.View(styles))
	}

	var button string
	if b.status == SaveSubmitting {
		button = styles.ButtonDisabled.Render(b.spinner.View() + " Saving...")
	} else {
		button = styles.Button.Render("Save")
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center, b.input.View(), " ", button))
	return strings.Join(lines, "\n")
}
