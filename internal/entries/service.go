// Package entries implements the string entry use cases behind the REST API:
// validating and saving new strings and paging through search results.
package entries

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"stringsdb/internal/domain"
	"stringsdb/internal/eventbus"
	"stringsdb/internal/store"
)

const (
	// MaxValueLength is the longest accepted string, in characters
	MaxValueLength = 255
	// DefaultPageSize applies when a search does not ask for a size
	DefaultPageSize = 20
	// MaxPageSize caps the requested page size
	MaxPageSize = 2000
)

// valuePattern accepts 1-255 printable or whitespace characters
var valuePattern = regexp.MustCompile(`^[\p{Z}\s\p{L}\p{M}\p{N}\p{P}\p{S}]{1,255}$`)

// ValidationError reports a rejected request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field '%s': %s", e.Field, e.Message)
}

// SearchRequest is a page request for entries containing Filter
type SearchRequest struct {
	Filter string
	Sort   string
	Page   int
	Size   int
}

// Options configures a Service
type Options struct {
	SanitizeHTML bool
}

// Service coordinates validation, storage and event publication
type Service struct {
	store  store.StringStore
	bus    eventbus.EventBus
	logger *zap.Logger
	opts   Options
}

// NewService creates a Service. bus may be nil.
func NewService(s store.StringStore, bus eventbus.EventBus, logger *zap.Logger, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  s,
		bus:    bus,
		logger: logger.Named("entries"),
		opts:   opts,
	}
}

// Save validates value and persists it
func (s *Service) Save(ctx context.Context, value string) (domain.StringEntry, error) {
	if s.opts.SanitizeHTML {
		value = sanitize(value)
	}
	if err := ValidateValue(value); err != nil {
		return domain.StringEntry{}, err
	}

	entry, err := s.store.Save(ctx, value)
	if err != nil {
		s.publish(eventbus.ErrorEvent{Message: "save failed", Err: err})
		return domain.StringEntry{}, fmt.Errorf("saving entry: %w", err)
	}

	s.logger.Debug("entry saved", zap.Int64("id", entry.ID))
	s.publish(eventbus.EntrySavedEvent{Entry: entry})
	return entry, nil
}

// Get returns a single entry, or store.ErrNotFound
func (s *Service) Get(ctx context.Context, id int64) (domain.StringEntry, error) {
	return s.store.FindByID(ctx, id)
}

// Search returns one page of entries containing req.Filter
func (s *Service) Search(ctx context.Context, req SearchRequest) (domain.Page, error) {
	if req.Page < 0 {
		return domain.Page{}, &ValidationError{Field: "page", Message: "must not be negative"}
	}
	size := req.Size
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	if req.Page > math.MaxInt/size {
		return domain.Page{}, &ValidationError{Field: "page", Message: "is too large"}
	}

	order, err := store.ParseSort(req.Sort)
	if err != nil {
		return domain.Page{}, &ValidationError{Field: "sort", Message: err.Error()}
	}

	content, total, err := s.store.Find(ctx, store.Query{
		Filter: req.Filter,
		Sort:   order,
		Offset: req.Page * size,
		Limit:  size,
	})
	if err != nil {
		return domain.Page{}, fmt.Errorf("searching entries: %w", err)
	}

	s.publish(eventbus.SearchPerformedEvent{
		Filter:  req.Filter,
		Page:    req.Page,
		Size:    size,
		Matches: total,
	})
	return domain.NewPage(content, req.Page, size, total), nil
}

// ValidateValue applies the acceptance rules for a new string
func ValidateValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: "value", Message: "The string value is mandatory"}
	}
	if utf8.RuneCountInString(value) > MaxValueLength || !valuePattern.MatchString(value) {
		return &ValidationError{
			Field:   "value",
			Message: fmt.Sprintf("The value must be a string between 1 and %d characters long", MaxValueLength),
		}
	}
	return nil
}

// IsValidationError reports whether err is a *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func (s *Service) publish(event domain.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// sanitize strips markup from value. Plain text passes through untouched;
// bluemonday escapes entities, so the result is unescaped again.
func sanitize(value string) string {
	if !strings.ContainsAny(value, "<>") {
		return value
	}
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(policy.Sanitize(value))
}
