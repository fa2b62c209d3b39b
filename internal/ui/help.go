package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer turns the key reference into terminal output
type HelpRenderer struct {
	keys KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// Markdown returns the key reference as a Markdown document
func (r *HelpRenderer) Markdown() string {
	var b strings.Builder
	b.WriteString("# stringsdb\n\n")
	b.WriteString("Add strings to the database and search the collection.\n\n")

	section := func(title string, bindings ...key.Binding) {
		fmt.Fprintf(&b, "## %s\n\n", title)
		b.WriteString("| Key | Action |\n|---|---|\n")
		for _, kb := range bindings {
			h := kb.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}

	k := r.keys
	section("Moving around", k.NextFocus, k.PrevFocus, k.Results)
	section("Forms", k.Submit)
	section("Results", k.Pages.Prev, k.Pages.Next, k.Pages.First, k.Pages.Last, k.Pages.Direct, k.Open)
	section("Other", k.Help, k.Quit, k.ForceQuit)

	b.WriteString("Searches match entries containing the search term and are sorted by value. ")
	b.WriteString("An empty search lists every entry.\n")
	return b.String()
}

// Render renders the Markdown reference with glamour, wrapped to width
func (r *HelpRenderer) Render(width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(r.Markdown())
}
