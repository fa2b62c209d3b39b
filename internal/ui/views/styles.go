package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Heading        lipgloss.Style
	Box            lipgloss.Style
	FocusedBox     lipgloss.Style
	Dim            lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Spinner        lipgloss.Style
	Label          lipgloss.Style
	Result         lipgloss.Style
	Ellipsis       lipgloss.Style
	PageItem       lipgloss.Style
	PageActive     lipgloss.Style
	PageDisabled   lipgloss.Style
	AlertPrefix    lipgloss.Style
	AlertSuccess   lipgloss.Style
	AlertDanger    lipgloss.Style
	AlertWarning   lipgloss.Style
	AlertInfo      lipgloss.Style
	AlertDefault   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(1, 2).
		MarginBottom(1)

	alert := lipgloss.NewStyle().Padding(0, 1)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Subtitle: lipgloss.NewStyle().
			Faint(true).
			MarginBottom(1),
		Heading: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("252")),
		Box:            box,
		FocusedBox:     box.BorderForeground(lipgloss.Color("99")),
		Dim:            lipgloss.NewStyle().Faint(true),
		Help:           lipgloss.NewStyle().Faint(true),
		Main:           lipgloss.NewStyle().Padding(1, 2),
		Button:         lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("33")).Foreground(lipgloss.Color("231")),
		ButtonDisabled: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("238")).Foreground(lipgloss.Color("246")),
		Spinner:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Label:          lipgloss.NewStyle().Bold(true).MarginTop(1),
		Result:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Ellipsis:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		PageItem:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("33")),
		PageActive:     lipgloss.NewStyle().Padding(0, 1).Bold(true).Background(lipgloss.Color("33")).Foreground(lipgloss.Color("231")),
		PageDisabled:   lipgloss.NewStyle().Padding(0, 1).Faint(true),
		AlertPrefix:    lipgloss.NewStyle().Bold(true),
		AlertSuccess:   alert.Foreground(lipgloss.Color("78")),  // green
		AlertDanger:    alert.Foreground(lipgloss.Color("203")), // red
		AlertWarning:   alert.Foreground(lipgloss.Color("214")), // yellow
		AlertInfo:      alert.Foreground(lipgloss.Color("51")),  // cyan
		AlertDefault:   alert,
	}
}

// AlertStyle returns the style for an alert class such as "danger"
func (s *Styles) AlertStyle(class string) lipgloss.Style {
	switch class {
	case "success":
		return s.AlertSuccess
	case "danger":
		return s.AlertDanger
	case "warning":
		return s.AlertWarning
	case "info":
		return s.AlertInfo
	default:
		return s.AlertDefault
	}
}
