package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventEntrySaved      EventType = "EntrySaved"
	EventSearchPerformed EventType = "SearchPerformed"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// EntrySavedEvent is emitted after a new string has been persisted
type EntrySavedEvent struct {
	Entry StringEntry
}

func (e EntrySavedEvent) Type() EventType { return EventEntrySaved }

// SearchPerformedEvent is emitted after a search query has been answered
type SearchPerformedEvent struct {
	Filter  string
	Page    int
	Size    int
	Matches int64
}

func (e SearchPerformedEvent) Type() EventType { return EventSearchPerformed }

// ErrorEvent is emitted when an operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
