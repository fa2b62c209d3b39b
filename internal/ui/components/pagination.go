package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"stringsdb/internal/domain"
	"stringsdb/internal/ui/views"
)

// PageChange is reported when the user moves to another page. Start and End
// are item offsets for the new page; they are advisory and never checked
// against the actual number of items.
type PageChange struct {
	Start   int
	End     int
	Current int
}

// PageButton is one numbered page control
type PageButton struct {
	Number int
	Active bool
}

// PaginationKeyMap holds the pagination key bindings
type PaginationKeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	First  key.Binding
	Last   key.Binding
	Direct key.Binding
}

// DefaultPaginationKeys returns the default pagination bindings
func DefaultPaginationKeys() PaginationKeyMap {
	return PaginationKeyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		First:  key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first page")),
		Last:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last page")),
		Direct: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "go to page")),
	}
}

// Pagination renders page controls for a result set. It holds no state of
// its own: the parent passes the current page and totals on every render and
// receives page changes through OnChange.
type Pagination struct {
	Current    int
	PerPage    int
	TotalItems int
	OnChange   func(PageChange) tea.Cmd
	Keys       PaginationKeyMap
}

// TotalPages is ceil(TotalItems / PerPage)
func (p Pagination) TotalPages() int {
	return domain.PaginationInfo{TotalItems: p.TotalItems, PerPage: p.PerPage}.TotalPages()
}

// HasPrev reports whether Previous is enabled
func (p Pagination) HasPrev() bool {
	return p.Current > 1 && p.Current <= p.TotalPages()
}

// HasNext reports whether Next is enabled
func (p Pagination) HasNext() bool {
	return p.Current < p.TotalPages()
}

// Next moves one page forward
func (p Pagination) Next() tea.Cmd {
	if !p.HasNext() {
		return nil
	}
	return p.change(PageChange{
		Start:   p.Current * p.PerPage,
		End:     (p.Current + 1) * p.PerPage,
		Current: p.Current + 1,
	})
}

// Prev moves one page back
func (p Pagination) Prev() tea.Cmd {
	if !p.HasPrev() {
		return nil
	}
	return p.change(PageChange{
		Start:   (p.Current - 2) * p.PerPage,
		End:     (p.Current - 1) * p.PerPage,
		Current: p.Current - 1,
	})
}

// Direct jumps to page i. Choosing the current page does nothing.
func (p Pagination) Direct(i int) tea.Cmd {
	if i == p.Current || i < 1 || i > p.TotalPages() {
		return nil
	}
	return p.change(PageChange{
		Start:   (i - 1) * p.PerPage,
		End:     i * p.PerPage,
		Current: i,
	})
}

func (p Pagination) change(c PageChange) tea.Cmd {
	if p.OnChange == nil {
		return nil
	}
	return p.OnChange(c)
}

// Buttons lists the numbered page controls
func (p Pagination) Buttons() []PageButton {
	total := p.TotalPages()
	buttons := make([]PageButton, 0, total)
	for i := 1; i <= total; i++ {
		buttons = append(buttons, PageButton{Number: i, Active: i == p.Current})
	}
	return buttons
}

// HandleKey maps a key press onto a page change
func (p Pagination) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.Keys.Prev):
		return p.Prev()
	case key.Matches(msg, p.Keys.Next):
		return p.Next()
	case key.Matches(msg, p.Keys.First):
		return p.Direct(1)
	case key.Matches(msg, p.Keys.Last):
		return p.Direct(p.TotalPages())
	case key.Matches(msg, p.Keys.Direct):
		i, err := strconv.Atoi(msg.String())
		if err != nil {
			return nil
		}
		return p.Direct(i)
	}
	return nil
}

// View renders Previous, the page numbers and Next on one line
func (p Pagination) View(styles *views.Styles) string {
	parts := make([]string, 0, p.TotalPages()+2)

	if p.HasPrev() {
		parts = append(parts, styles.PageItem.Render("Previous"))
	} else {
		parts = append(parts, styles.PageDisabled.Render("Previous"))
	}
	for _, b := range p.Buttons() {
		label := strconv.Itoa(b.Number)
		if b.Active {
			parts = append(parts, styles.PageActive.Render(label))
		} else {
			parts = append(parts, styles.PageItem.Render(label))
		}
	}
	if p.HasNext() {
		parts = append(parts, styles.PageItem.Render("Next"))
	} else {
		parts = append(parts, styles.PageDisabled.Render("Next"))
	}
	return strings.Join(parts, " ")
}
