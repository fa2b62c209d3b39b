package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"stringsdb/internal/domain"
)

// errNoProgram is returned when the pager is used before SetProgram
var errNoProgram = errors.New("program not set")

// Pager shows long content in the ov pager, handing the terminal over while
// it runs
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
	run     func(r io.Reader) error
}

// NewPager creates a pager backed by oviewer
func NewPager() *Pager {
	return &Pager{run: runOviewer}
}

// SetProgram sets the program reference for terminal management
func (p *Pager) SetProgram(prog *tea.Program) {
	p.program = prog
}

// Show pages content until the user quits the pager
func (p *Pager) Show(content string) error {
	if p.program == nil {
		return errNoProgram
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	return p.run(strings.NewReader(content))
}

func runOviewer(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// resultsDocument formats one page of results for the pager
func resultsDocument(term string, page, totalPages int, total int64, entries []domain.StringEntry) string {
	var b strings.Builder
	if term == "" {
		b.WriteString("All strings")
	} else {
		fmt.Fprintf(&b, "Strings containing %q", term)
	}
	fmt.Fprintf(&b, " (page %d of %d, %d total)\n\n", page, totalPages, total)
	for _, e := range entries {
		fmt.Fprintf(&b, "%6d  %s\n", e.ID, e.Value)
	}
	return b.String()
}
