package domain

import "time"

// StringEntry represents a single string stored in the database
type StringEntry struct {
	ID        int64     `json:"id" yaml:"id"`
	Value     string    `json:"value" yaml:"value"`
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Page is one page of search results as exchanged over the REST API
type Page struct {
	Content          []StringEntry `json:"content" yaml:"content"`
	TotalElements    int64         `json:"totalElements" yaml:"totalElements"`
	TotalPages       int           `json:"totalPages" yaml:"totalPages"`
	Size             int           `json:"size" yaml:"size"`
	Number           int           `json:"number" yaml:"number"`
	NumberOfElements int           `json:"numberOfElements" yaml:"numberOfElements"`
	First            bool          `json:"first" yaml:"first"`
	Last             bool          `json:"last" yaml:"last"`
	Empty            bool          `json:"empty" yaml:"empty"`
}

// NewPage builds a page from its content and the total number of matches.
// number is zero-based.
func NewPage(content []StringEntry, number, size int, total int64) Page {
	if content == nil {
		content = []StringEntry{}
	}
	info := PaginationInfo{TotalItems: int(total), PerPage: size}
	totalPages := info.TotalPages()
	return Page{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Size:             size,
		Number:           number,
		NumberOfElements: len(content),
		First:            number == 0,
		Last:             number+1 >= totalPages,
		Empty:            len(content) == 0,
	}
}

// DefaultPerPage is the page size the front-end requests unless configured
const DefaultPerPage = 10

// PaginationInfo holds the totals needed to compute page bounds
type PaginationInfo struct {
	TotalItems int
	PerPage    int
}

// TotalPages returns ceil(TotalItems / PerPage), or 0 when PerPage is not positive
func (p PaginationInfo) TotalPages() int {
	if p.PerPage <= 0 || p.TotalItems <= 0 {
		return 0
	}
	return (p.TotalItems + p.PerPage - 1) / p.PerPage
}

// PaginationInfo derives the pagination totals from a search response
func (p Page) PaginationInfo() PaginationInfo {
	return PaginationInfo{
		TotalItems: int(p.TotalElements),
		PerPage:    p.Size,
	}
}
