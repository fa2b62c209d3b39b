package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stringsdb/internal/api"
	"stringsdb/internal/domain"
)

// deliver runs cmd and feeds the search result back into the box
func deliver(t *testing.T, rb *ResultBox, cmd tea.Cmd) {
	t.Helper()
	res, ok := findMsg[SearchResultMsg](runCmd(cmd))
	require.True(t, ok, "command produced no search result")
	rb.Update(res)
}

func entriesNamed(prefix string, n int) []domain.StringEntry {
	out := make([]domain.StringEntry, n)
	for i := range out {
		out[i] = domain.StringEntry{ID: int64(i + 1), Value: fmt.Sprintf("%s %d", prefix, i+1)}
	}
	return out
}

func TestResultBoxInitialView(t *testing.T) {
	rb := NewResultBox(&fakeSearcher{}, 10, nil)
	view := rb.View(testStyles)

	assert.NotContains(t, view, "Search results:")
	assert.NotContains(t, view, "No results found")
	assert.NotContains(t, view, "Previous")
	_, loaded := rb.Results()
	assert.False(t, loaded)
}

func TestResultBoxSearchRequest(t *testing.T) {
	searcher := &fakeSearcher{page: domain.Page{Content: []domain.StringEntry{}, Size: 10}}
	rb := NewResultBox(searcher, 10, nil)

	deliver(t, rb, rb.OnSearchSubmit("cat"))

	require.Len(t, searcher.calls, 1)
	assert.Equal(t, api.SearchParams{Filter: "cat", Sort: "value", Page: 0, Size: 10}, searcher.calls[0])
	assert.Equal(t, "cat", rb.LastSearch())
}

func TestResultBoxEmptyResponse(t *testing.T) {
	searcher := &fakeSearcher{page: domain.Page{Content: []domain.StringEntry{}, TotalElements: 0, Size: 10}}
	rb := NewResultBox(searcher, 10, nil)

	deliver(t, rb, rb.OnSearchSubmit("nothing"))

	view := rb.View(testStyles)
	assert.Contains(t, view, "No results found")
	assert.NotContains(t, view, "Previous")
	assert.NotContains(t, view, "⋯")
	_, ok := rb.Pagination()
	assert.False(t, ok)
}

func TestResultBoxPaginationReissuesLastTerm(t *testing.T) {
	searcher := &fakeSearcher{page: domain.Page{
		Content:       []domain.StringEntry{{ID: 1, Value: "a"}},
		TotalElements: 21,
		Size:          10,
	}}
	rb := NewResultBox(searcher, 10, nil)
	deliver(t, rb, rb.OnSearchSubmit("a"))

	p, ok := rb.Pagination()
	require.True(t, ok)
	deliver(t, rb, p.Direct(2))

	require.Len(t, searcher.calls, 2)
	assert.Equal(t, 1, searcher.calls[1].Page)
	assert.Equal(t, "a", searcher.calls[1].Filter)
	assert.Equal(t, 2, rb.CurrentPage())
}

func TestResultBoxCatScenario(t *testing.T) {
	searcher := &fakeSearcher{page: domain.Page{Content: entriesNamed("cat", 10), TotalElements: 25, Size: 10}}
	rb := NewResultBox(searcher, 10, nil)
	deliver(t, rb, rb.OnSearchSubmit("cat"))

	p, ok := rb.Pagination()
	require.True(t, ok)
	assert.Len(t, p.Buttons(), 3)
	assert.True(t, p.HasNext())
	assert.False(t, p.HasPrev())

	view := rb.View(testStyles)
	assert.Contains(t, view, "Search results:")
	assert.Contains(t, view, "cat 10")
	assert.Contains(t, view, "⋯")

	searcher.page = domain.Page{Content: entriesNamed("cat", 5), TotalElements: 25, Size: 10}
	deliver(t, rb, rb.HandlePaginationKey(tea.KeyMsg{Type: tea.KeyEnd}))

	assert.Equal(t, 2, searcher.calls[1].Page)
	assert.Equal(t, 3, rb.CurrentPage())
	p, ok = rb.Pagination()
	require.True(t, ok)
	assert.False(t, p.HasNext())
	assert.True(t, p.HasPrev())
}

func TestResultBoxFreshSearchResetsPage(t *testing.T) {
	searcher := &fakeSearcher{page: domain.Page{Content: entriesNamed("x", 10), TotalElements: 30, Size: 10}}
	rb := NewResultBox(searcher, 10, nil)
	deliver(t, rb, rb.OnSearchSubmit("x"))
	deliver(t, rb, rb.HandlePaginationKey(typeText("3")))
	require.Equal(t, 3, rb.CurrentPage())

	deliver(t, rb, rb.OnSearchSubmit("y"))
	assert.Equal(t, 1, rb.CurrentPage())
	assert.Equal(t, 0, searcher.calls[2].Page)
}

func TestResultBoxFailedSearchKeepsShownPage(t *testing.T) {
	searcher := &fakeSearcher{page: domain.Page{Content: entriesNamed("x", 10), TotalElements: 30, Size: 10}}
	rb := NewResultBox(searcher, 10, nil)
	deliver(t, rb, rb.OnSearchSubmit("x"))
	deliver(t, rb, rb.HandlePaginationKey(typeText("2")))
	require.Equal(t, 2, rb.CurrentPage())

	searcher.err = &api.StatusError{Code: 500}
	deliver(t, rb, rb.OnSearchSubmit("y"))
	require.NotEmpty(t, rb.Err())
	assert.Equal(t, 2, rb.CurrentPage())
	assert.Equal(t, "x", rb.LastSearch())

	p, ok := rb.Pagination()
	require.True(t, ok)
	assert.Equal(t, 2, p.Current)

	searcher.err = nil
	deliver(t, rb, rb.HandlePaginationKey(tea.KeyMsg{Type: tea.KeyRight}))
	last := searcher.calls[len(searcher.calls)-1]
	assert.Equal(t, "x", last.Filter)
	assert.Equal(t, 2, last.Page)
	assert.Equal(t, 3, rb.CurrentPage())
}

func TestResultBoxErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"status", &api.StatusError{Code: 503}, "Unexpected HTTP response code: 503"},
		{"transport", errConnRefused, errConnRefused.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := NewResultBox(&fakeSearcher{err: tt.err}, 10, nil)
			deliver(t, rb, rb.OnSearchSubmit("cat"))

			assert.False(t, rb.Loading())
			assert.Equal(t, tt.want, rb.Err())
			assert.Contains(t, rb.View(testStyles), "Error! "+tt.want)
		})
	}
}

func TestResultBoxNewSearchClearsError(t *testing.T) {
	searcher := &fakeSearcher{err: &api.StatusError{Code: 500}}
	rb := NewResultBox(searcher, 10, nil)
	deliver(t, rb, rb.OnSearchSubmit("cat"))
	require.NotEmpty(t, rb.Err())

	searcher.err = nil
	searcher.page = domain.Page{Content: entriesNamed("cat", 1), TotalElements: 1, Size: 10}
	cmd := rb.OnSearchSubmit("cat")
	assert.Empty(t, rb.Err())
	deliver(t, rb, cmd)
	assert.Empty(t, rb.Err())
}

func TestResultBoxIgnoresInputWhileLoading(t *testing.T) {
	searcher := &fakeSearcher{page: domain.Page{Content: entriesNamed("cat", 10), TotalElements: 25, Size: 10}}
	rb := NewResultBox(searcher, 10, nil)
	deliver(t, rb, rb.OnSearchSubmit("cat"))

	cmd := rb.HandlePaginationKey(tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	assert.True(t, rb.Loading())
	assert.Contains(t, rb.View(testStyles), "Searching...")

	assert.Nil(t, rb.OnSearchSubmit("dog"))
	assert.Nil(t, rb.HandlePaginationKey(tea.KeyMsg{Type: tea.KeyRight}))

	deliver(t, rb, cmd)
	assert.Len(t, searcher.calls, 2)
	assert.False(t, rb.Loading())
}

func TestResultBoxSearchFieldSubmitsDraft(t *testing.T) {
	searcher := &fakeSearcher{page: domain.Page{Content: []domain.StringEntry{}, Size: 10}}
	rb := NewResultBox(searcher, 10, nil)
	rb.Search().Focus()

	rb.Update(typeText("cat"))
	deliver(t, rb, rb.Update(enter))

	require.Len(t, searcher.calls, 1)
	assert.Equal(t, "cat", searcher.calls[0].Filter)
	assert.Equal(t, "cat", rb.Search().Value(), "field keeps its text")
}

func TestResultBoxUsesConfiguredPageSize(t *testing.T) {
	searcher := &fakeSearcher{page: domain.Page{Content: []domain.StringEntry{}, Size: 25}}
	rb := NewResultBox(searcher, 25, nil)
	deliver(t, rb, rb.OnSearchSubmit(""))
	assert.Equal(t, 25, searcher.calls[0].Size)

	rb = NewResultBox(searcher, 0, nil)
	deliver(t, rb, rb.OnSearchSubmit(""))
	assert.Equal(t, domain.DefaultPerPage, searcher.calls[1].Size)
}
