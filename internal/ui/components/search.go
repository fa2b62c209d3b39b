package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stringsdb/internal/ui/views"
)

// Search is the search field. Enter reports the draft through OnSubmit; the
// field keeps its text afterwards.
type Search struct {
	OnSubmit func(term string) tea.Cmd

	input   textinput.Model
	spinner spinner.Model
	loading bool
}

// NewSearch creates an unfocused search field
func NewSearch(onSubmit func(term string) tea.Cmd) Search {
	ti := textinput.New()
	ti.Placeholder = "What are you searching for?"
	ti.Prompt = "🔍 "
	ti.Width = 40

	return Search{
		OnSubmit: onSubmit,
		input:    ti,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// SetLoading mirrors the parent's loading flag. The returned command starts
// the spinner when loading begins.
func (s *Search) SetLoading(loading bool) tea.Cmd {
	started := loading && !s.loading
	s.loading = loading
	if started {
		return s.spinner.Tick
	}
	return nil
}

// Loading reports whether a search is in flight
func (s *Search) Loading() bool { return s.loading }

// Focus gives the field keyboard focus
func (s *Search) Focus() tea.Cmd { return s.input.Focus() }

// Blur removes keyboard focus
func (s *Search) Blur() { s.input.Blur() }

// Focused reports whether the field has focus
func (s *Search) Focused() bool { return s.input.Focused() }

// Value returns the current draft
func (s *Search) Value() string { return s.input.Value() }

// SetValue replaces the draft
func (s *Search) SetValue(v string) { s.input.SetValue(v) }

// Update handles keys while focused and spinner ticks while loading
func (s *Search) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.loading {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if s.loading || !s.input.Focused() {
			return nil
		}
		if msg.Type == tea.KeyEnter {
			if s.OnSubmit == nil {
				return nil
			}
			return s.OnSubmit(s.input.Value())
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// View renders the field and its submit control
func (s *Search) View(styles *views.Styles) string {
	var button string
	if s.loading {
		button = styles.ButtonDisabled.Render(s.spinner.View() + " Searching...")
	} else {
		button = styles.Button.Render("Search")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, s.input.View(), " ", button)
}
