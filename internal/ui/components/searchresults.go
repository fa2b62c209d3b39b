package components

import (
	"strings"

	"stringsdb/internal/domain"
	"stringsdb/internal/ui/views"
)

// SearchResults renders the entries of the last search. Loaded is false
// until the first search completes, in which case nothing is rendered.
type SearchResults struct {
	Values []domain.StringEntry
	Loaded bool
}

// View renders the result list or the empty notice
func (r SearchResults) View(styles *views.Styles) string {
	if !r.Loaded {
		return ""
	}
	if len(r.Values) == 0 {
		return Alert{Kind: AlertInfo, Message: "No results found", MarginTop: true}.View(styles)
	}

	var b strings.Builder
	b.WriteString(styles.Label.Render("Search results:"))
	for _, v := range r.Values {
		b.WriteString("\n")
		b.WriteString(styles.Result.Render("• " + v.Value))
	}
	return b.String()
}
