package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"stringsdb/internal/config"
	"stringsdb/internal/eventbus"
	"stringsdb/internal/ui/components"
	"stringsdb/internal/ui/views"
)

// Backend is the REST API as seen by the UI
type Backend interface {
	components.Saver
	components.Searcher
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	logger *zap.Logger

	width         int
	height        int
	help          help.Model
	keys          KeyMap
	focus         views.Section
	statusMessage string
	inPagerMode   bool // tracks if we're currently in pager mode

	saveBox   components.SaveBox
	resultBox *components.ResultBox
	renderer  *views.Renderer
	helpDoc   *HelpRenderer
	pager     *Pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. bus may be nil.
func NewModel(backend Backend, bus eventbus.EventBus, cfg *config.Config, logger *zap.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ui")

	m := &Model{
		bus:       bus,
		config:    cfg,
		logger:    logger,
		help:      help.New(),
		saveBox:   components.NewSaveBox(backend, logger),
		resultBox: components.NewResultBox(backend, cfg.PageSize, logger),
		renderer:  views.NewRenderer(views.NewStyles()),
		pager:     NewPager(),
		focus:     views.SectionSave,
	}
	m.keys = DefaultKeyMap()
	m.keys.Pages = m.resultBox.Keys()
	m.helpDoc = NewHelpRenderer(m.keys)
	m.saveBox.Focus()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case components.SaveResultMsg:
		cmd := m.saveBox.Update(msg)
		m.publishSave(msg)
		return m, cmd

	case components.SearchResultMsg:
		cmd := m.resultBox.Update(msg)
		m.publishSearch(msg)
		return m, cmd

	case spinner.TickMsg:
		return m, tea.Batch(m.saveBox.Update(msg), m.resultBox.Update(msg))

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			m.logger.Warn("help pager failed", zap.Error(msg.err))
		}
		return m, nil

	case resultsPagerMsg:
		if msg.err != nil {
			m.logger.Warn("results pager failed", zap.Error(msg.err))
			m.statusMessage = "Could not open the pager: " + msg.err.Error()
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case EventMsg:
		m.logger.Debug("event", zap.String("type", string(msg.Event.Type())))
		return m, nil
	}

	// Cursor blinks and the like go to the focused field
	return m, m.updateFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.statusMessage = ""

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return tea.Quit
	case key.Matches(msg, m.keys.NextFocus):
		return m.setFocus((m.focus + 1) % 3)
	case key.Matches(msg, m.keys.PrevFocus):
		return m.setFocus((m.focus + 2) % 3)
	case key.Matches(msg, m.keys.Results):
		return m.setFocus(views.SectionResults)
	}

	if m.focus != views.SectionResults {
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m.showHelp()
	case key.Matches(msg, m.keys.Open):
		return m.showResults()
	}
	return m.resultBox.HandlePaginationKey(msg)
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	switch m.focus {
	case views.SectionSave:
		return m.saveBox.Update(msg)
	case views.SectionSearch:
		return m.resultBox.Update(msg)
	}
	return nil
}

// setFocus moves keyboard focus to section
func (m *Model) setFocus(section views.Section) tea.Cmd {
	m.focus = section
	m.saveBox.Blur()
	m.resultBox.Search().Blur()

	switch section {
	case views.SectionSave:
		return m.saveBox.Focus()
	case views.SectionSearch:
		return m.resultBox.Search().Focus()
	}
	return nil
}

// Focus returns the section that has keyboard focus
func (m *Model) Focus() views.Section { return m.focus }

// SaveBox exposes the save form
func (m *Model) SaveBox() *components.SaveBox { return &m.saveBox }

// ResultBox exposes the search area
func (m *Model) ResultBox() *components.ResultBox { return m.resultBox }

func (m *Model) publishSave(msg components.SaveResultMsg) {
	if m.bus == nil {
		return
	}
	if msg.Err != nil {
		m.bus.Publish(eventbus.ErrorEvent{Message: "save failed", Err: msg.Err})
		return
	}
	m.bus.Publish(eventbus.EntrySavedEvent{Entry: msg.Entry})
}

func (m *Model) publishSearch(msg components.SearchResultMsg) {
	if m.bus == nil {
		return
	}
	if msg.Err != nil {
		m.bus.Publish(eventbus.ErrorEvent{Message: "search failed", Err: msg.Err})
		return
	}
	m.bus.Publish(eventbus.SearchPerformedEvent{
		Filter:  msg.Params.Filter,
		Page:    msg.Params.Page,
		Size:    msg.Params.Size,
		Matches: msg.Page.TotalElements,
	})
}

// showHelp returns a command that shows the key reference using ov pager
func (m *Model) showHelp() tea.Cmd {
	content, err := m.helpDoc.Render(m.width)
	if err != nil {
		m.logger.Warn("rendering help failed", zap.Error(err))
		content = m.helpDoc.Markdown()
	}
	return m.pagerCmd(content, func(err error) tea.Msg { return helpPagerMsg{err: err} })
}

// showResults returns a command that shows the current result page using ov pager
func (m *Model) showResults() tea.Cmd {
	entries, loaded := m.resultBox.Results()
	if !loaded || len(entries) == 0 {
		m.statusMessage = "Nothing to open, run a search first"
		return nil
	}
	info, _ := m.resultBox.PaginationInfo()
	content := resultsDocument(m.resultBox.LastSearch(), m.resultBox.CurrentPage(),
		info.TotalPages(), int64(info.TotalItems), entries)
	return m.pagerCmd(content, func(err error) tea.Msg { return resultsPagerMsg{err: err} })
}

func (m *Model) pagerCmd(content string, done func(error) tea.Msg) tea.Cmd {
	if m.program == nil {
		return func() tea.Msg { return done(errNoProgram) }
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})
		return done(err)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		SaveBox:       m.saveBox.View(m.renderer.Styles()),
		ResultBox:     m.resultBox.View(m.renderer.Styles()),
		Focus:         m.focus,
		StatusMessage: m.statusMessage,
	}
	if m.config.UI.ShowHelpBar {
		if m.focus == views.SectionResults {
			state.HelpBar = m.help.View(resultKeys{m.keys})
		} else {
			state.HelpBar = m.help.View(inputKeys{m.keys})
		}
	}
	return m.renderer.Render(state)
}
