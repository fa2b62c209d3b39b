package components

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"stringsdb/internal/api"
	"stringsdb/internal/domain"
	"stringsdb/internal/ui/views"
)

// ResultSort is the sort order of every search issued by the result box
const ResultSort = "value"

// Searcher runs searches against the server
type Searcher interface {
	SearchStrings(ctx context.Context, params api.SearchParams) (domain.Page, error)
}

// SearchResultMsg carries the outcome of a search request
type SearchResultMsg struct {
	Params api.SearchParams
	Page   domain.Page
	Err    error
}

// ResultBox coordinates the search field, the results and the pagination
type ResultBox struct {
	searcher Searcher
	logger   *zap.Logger
	pageSize int
	keys     PaginationKeyMap

	search      Search
	currentPage int
	lastSearch  string
	results     []domain.StringEntry
	loaded      bool
	info        *domain.PaginationInfo
	loading     bool
	err         string
}

// NewResultBox creates a result box that requests pageSize entries per page
func NewResultBox(searcher Searcher, pageSize int, logger *zap.Logger) *ResultBox {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = domain.DefaultPerPage
	}
	rb := &ResultBox{
		searcher:    searcher,
		logger:      logger.Named("resultbox"),
		pageSize:    pageSize,
		keys:        DefaultPaginationKeys(),
		currentPage: 1,
	}
	rb.search = NewSearch(rb.OnSearchSubmit)
	return rb
}

// OnSearchSubmit starts a fresh search for term from the first page
func (rb *ResultBox) OnSearchSubmit(term string) tea.Cmd {
	if rb.loading {
		return nil
	}
	return rb.searchPage(term, 0)
}

// OnPaginationChange moves to the reported page and repeats the last search
func (rb *ResultBox) OnPaginationChange(c PageChange) tea.Cmd {
	if rb.loading {
		return nil
	}
	return rb.searchPage(rb.lastSearch, c.Current)
}

// searchPage issues the request for the 1-based page; 0 means the first page.
// The term and page become current only once the results arrive.
func (rb *ResultBox) searchPage(term string, page int) tea.Cmd {
	rb.loading = true
	rb.err = ""

	apiPage := 0
	if page > 0 {
		apiPage = page - 1
	}
	params := api.SearchParams{
		Filter: term,
		Sort:   ResultSort,
		Page:   apiPage,
		Size:   rb.pageSize,
	}
	searcher := rb.searcher
	return tea.Batch(rb.search.SetLoading(true), func() tea.Msg {
		result, err := searcher.SearchStrings(context.Background(), params)
		return SearchResultMsg{Params: params, Page: result, Err: err}
	})
}

// Update handles search results, spinner ticks and keys for the search field
func (rb *ResultBox) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SearchResultMsg:
		rb.loading = false
		rb.search.SetLoading(false)
		if msg.Err != nil {
			rb.logger.Warn("search failed",
				zap.String("filter", msg.Params.Filter),
				zap.Int("page", msg.Params.Page),
				zap.Error(msg.Err))
			rb.err = msg.Err.Error()
			return nil
		}
		rb.logger.Debug("search completed",
			zap.String("filter", msg.Params.Filter),
			zap.Int("page", msg.Params.Page),
			zap.Int64("total", msg.Page.TotalElements))
		rb.lastSearch = msg.Params.Filter
		rb.currentPage = msg.Params.Page + 1
		rb.results = msg.Page.Content
		if rb.results == nil {
			rb.results = []domain.StringEntry{}
		}
		rb.loaded = true
		info := msg.Page.PaginationInfo()
		rb.info = &info
		return nil
	}
	return rb.search.Update(msg)
}

// HandlePaginationKey applies a pagination key. Keys are ignored while a
// search is in flight or before pagination is shown.
func (rb *ResultBox) HandlePaginationKey(msg tea.KeyMsg) tea.Cmd {
	if rb.loading {
		return nil
	}
	p, ok := rb.Pagination()
	if !ok {
		return nil
	}
	return p.HandleKey(msg)
}

// Pagination returns the pagination control for the current results. ok is
// false when no control is rendered.
func (rb *ResultBox) Pagination() (p Pagination, ok bool) {
	if rb.info == nil {
		return Pagination{}, false
	}
	p = Pagination{
		Current:    rb.currentPage,
		PerPage:    rb.info.PerPage,
		TotalItems: rb.info.TotalItems,
		OnChange:   rb.OnPaginationChange,
		Keys:       rb.keys,
	}
	return p, p.TotalPages() > 0
}

// PaginationInfo returns the totals of the last successful search
func (rb *ResultBox) PaginationInfo() (domain.PaginationInfo, bool) {
	if rb.info == nil {
		return domain.PaginationInfo{}, false
	}
	return *rb.info, true
}

// Search exposes the search field for focus handling
func (rb *ResultBox) Search() *Search { return &rb.search }

// Keys returns the pagination key bindings
func (rb *ResultBox) Keys() PaginationKeyMap { return rb.keys }

// Loading reports whether a search is in flight
func (rb *ResultBox) Loading() bool { return rb.loading }

// Err returns the error of the last search, if any
func (rb *ResultBox) Err() string { return rb.err }

// CurrentPage returns the 1-based page being shown
func (rb *ResultBox) CurrentPage() int { return rb.currentPage }

// LastSearch returns the term of the last successful search
func (rb *ResultBox) LastSearch() string { return rb.lastSearch }

// Results returns the entries of the last successful search and whether a
// search has completed yet
func (rb *ResultBox) Results() ([]domain.StringEntry, bool) { return rb.results, rb.loaded }

// View renders the error alert, the search field, the results and the
// pagination control
func (rb *ResultBox) View(styles *views.Styles) string {
	var lines []string
	if rb.err != "" {
		lines = append(lines, Alert{Kind: AlertError, Message: rb.err, MarginBottom: true}.View(styles))
	}
	lines = append(lines, rb.search.View(styles))

	if len(rb.results) > 0 {
		lines = append(lines, "", styles.Ellipsis.Render("⋯"))
	}
	if results := (SearchResults{Values: rb.results, Loaded: rb.loaded}).View(styles); results != "" {
		lines = append(lines, results)
	}
	if p, ok := rb.Pagination(); ok {
		lines = append(lines, "", p.View(styles))
	}
	return strings.Join(lines, "\n")
}
