package components

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"stringsdb/internal/api"
	"stringsdb/internal/domain"
	"stringsdb/internal/ui/views"
)

var testStyles = views.NewStyles()

// runCmd executes cmd and any batched commands, returning every message.
// Callers must not pass commands that sleep, such as cursor blinks.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

type fakeSaver struct {
	calls []string
	entry domain.StringEntry
	err   error
}

func (f *fakeSaver) SaveString(_ context.Context, value string) (domain.StringEntry, error) {
	f.calls = append(f.calls, value)
	if f.err != nil {
		return domain.StringEntry{}, f.err
	}
	e := f.entry
	e.Value = value
	return e, nil
}

type fakeSearcher struct {
	calls []api.SearchParams
	page  domain.Page
	err   error
}

func (f *fakeSearcher) SearchStrings(_ context.Context, p api.SearchParams) (domain.Page, error) {
	f.calls = append(f.calls, p)
	if f.err != nil {
		return domain.Page{}, f.err
	}
	return f.page, nil
}

var errConnRefused = errors.New(`Post "http://localhost:8080/strings": dial tcp 127.0.0.1:8080: connect: connection refused`)
