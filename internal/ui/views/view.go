package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// Title is the first header line
	Title = "Welcome to our strings database"
	// Subtitle is the second header line
	Subtitle = "A collection of random strings by random visitors"
	// SaveHeading introduces the save form
	SaveHeading = "Add your own string to the database"
	// SearchHeading introduces the search area
	SearchHeading = "Search strings in our database"
)

// Section identifies one of the boxes on screen
type Section int

const (
	SectionSave Section = iota
	SectionSearch
	SectionResults
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	SaveBox       string
	ResultBox     string
	Focus         Section
	StatusMessage string
	HelpBar       string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{styles: styles}
}

// Styles returns the styles shared with the components
func (r *Renderer) Styles() *Styles { return r.styles }

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.styles.Title.Render(Title))
	content.WriteString("\n")
	content.WriteString(r.styles.Subtitle.Render(Subtitle))
	content.WriteString("\n")

	boxWidth := state.Width - 8 // Account for main container padding and borders
	if boxWidth < 40 {
		boxWidth = 40
	}

	content.WriteString(r.renderBox(SaveHeading, state.SaveBox, state.Focus == SectionSave, boxWidth))
	content.WriteString("\n")
	focused := state.Focus == SectionSearch || state.Focus == SectionResults
	content.WriteString(r.renderBox(SearchHeading, state.ResultBox, focused, boxWidth))

	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Dim.Render(state.StatusMessage))
	}

	if state.HelpBar != "" {
		// Push the help bar to the bottom when there is room
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpBar))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderBox(heading, body string, focused bool, width int) string {
	box := r.styles.Box
	if focused {
		box = r.styles.FocusedBox
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		r.styles.Heading.Render(heading),
		box.Width(width).Render(body),
	)
}
