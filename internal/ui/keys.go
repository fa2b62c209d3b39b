package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"stringsdb/internal/ui/components"
)

// KeyMap holds the application-level key bindings
type KeyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	Results   key.Binding
	Submit    key.Binding
	Help      key.Binding
	Open      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	Pages components.PaginationKeyMap
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevFocus: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Results:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "results")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in pager")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Pages:     components.DefaultPaginationKeys(),
	}
}

// inputKeys is the help shown while a text field has focus
type inputKeys struct{ KeyMap }

// ShortHelp implements help.KeyMap
func (k inputKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextFocus, k.Results, k.ForceQuit}
}

// FullHelp implements help.KeyMap
func (k inputKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// resultKeys is the help shown while the results area has focus
type resultKeys struct{ KeyMap }

// ShortHelp implements help.KeyMap
func (k resultKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Pages.Prev, k.Pages.Next, k.Pages.Direct, k.NextFocus, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k resultKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pages.Prev, k.Pages.Next, k.Pages.First, k.Pages.Last, k.Pages.Direct},
		{k.NextFocus, k.PrevFocus, k.Results},
		{k.Open, k.Help, k.Quit, k.ForceQuit},
	}
}
