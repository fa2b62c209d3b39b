// Package store persists string entries.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stringsdb/internal/domain"
)

// ErrNotFound is returned when no entry has the requested ID
var ErrNotFound = errors.New("entry not found")

// SortField is a sortable entry property
type SortField string

const (
	SortByID        SortField = "id"
	SortByValue     SortField = "value"
	SortByCreatedAt SortField = "createdAt"
)

// Sort describes the result ordering
type Sort struct {
	Field      SortField
	Descending bool
}

// ParseSort parses a sort expression of the form "property[,asc|desc]".
// An empty expression sorts by ID ascending.
func ParseSort(expr string) (Sort, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Sort{Field: SortByID}, nil
	}

	property, direction, _ := strings.Cut(expr, ",")
	s := Sort{}
	switch SortField(strings.TrimSpace(property)) {
	case SortByID:
		s.Field = SortByID
	case SortByValue:
		s.Field = SortByValue
	case SortByCreatedAt:
		s.Field = SortByCreatedAt
	default:
		return Sort{}, fmt.Errorf("unknown sort property %q", property)
	}

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", "asc":
	case "desc":
		s.Descending = true
	default:
		return Sort{}, fmt.Errorf("unknown sort direction %q", direction)
	}
	return s, nil
}

// Query selects a window of entries whose value contains Filter
type Query struct {
	Filter string
	Sort   Sort
	Offset int
	Limit  int
}

// StringStore is the persistence contract for string entries
type StringStore interface {
	Save(ctx context.Context, value string) (domain.StringEntry, error)
	FindByID(ctx context.Context, id int64) (domain.StringEntry, error)
	// Find returns the entries in the requested window and the total number
	// of entries matching the filter.
	Find(ctx context.Context, q Query) ([]domain.StringEntry, int64, error)
	Close() error
}
