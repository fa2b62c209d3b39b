// Package components holds the building blocks of the terminal front-end.
// Each stateful component owns its state and reports upward through
// callbacks that return tea.Cmds; the stateless ones are plain render
// functions.
package components

import (
	"strings"

	"stringsdb/internal/ui/views"
)

// AlertKind is the severity of an Alert
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
	AlertWarning AlertKind = "warning"
	AlertInfo    AlertKind = "info"
)

// Alert is a styled one-line notice
type Alert struct {
	Kind         AlertKind
	Message      string
	MarginTop    bool
	MarginBottom bool
}

// Class returns the style class and message prefix for the alert kind.
// Unknown kinds are used as the class and get no prefix.
func (a Alert) Class() (class, prefix string) {
	switch a.Kind {
	case AlertSuccess:
		return "success", "Success"
	case AlertError:
		return "danger", "Error"
	case AlertWarning:
		return "warning", "Warning"
	case AlertInfo:
		return "info", ""
	default:
		return string(a.Kind), ""
	}
}

// Text is the alert message with its prefix, without styling
func (a Alert) Text() string {
	_, prefix := a.Class()
	if prefix == "" {
		return a.Message
	}
	return prefix + "! " + a.Message
}

// View renders the alert
func (a Alert) View(styles *views.Styles) string {
	class, prefix := a.Class()
	style := styles.AlertStyle(class)

	var b strings.Builder
	if a.MarginTop {
		b.WriteString("\n")
	}
	if prefix != "" {
		b.WriteString(style.Render(styles.AlertPrefix.Render(prefix+"!") + " " + a.Message))
	} else {
		b.WriteString(style.Render(a.Message))
	}
	if a.MarginBottom {
		b.WriteString("\n")
	}
	return b.String()
}
