package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"stringsdb/internal/domain"
)

// MemoryStringStore is an in-memory implementation of StringStore
type MemoryStringStore struct {
	mu      sync.RWMutex
	entries map[int64]domain.StringEntry
	nextID  int64
	now     func() time.Time
}

// NewMemoryStringStore creates a new memory-based string store
func NewMemoryStringStore() *MemoryStringStore {
	return &MemoryStringStore{
		entries: make(map[int64]domain.StringEntry),
		now:     time.Now,
	}
}

func (s *MemoryStringStore) Save(ctx context.Context, value string) (domain.StringEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.StringEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	entry := domain.StringEntry{
		ID:        s.nextID,
		Value:     value,
		CreatedAt: s.now().UTC(),
	}
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *MemoryStringStore) FindByID(ctx context.Context, id int64) (domain.StringEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.StringEntry{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return domain.StringEntry{}, ErrNotFound
	}
	return entry, nil
}

func (s *MemoryStringStore) Find(ctx context.Context, q Query) ([]domain.StringEntry, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if q.Offset < 0 {
		return nil, 0, fmt.Errorf("negative offset %d", q.Offset)
	}

	s.mu.RLock()
	matches := make([]domain.StringEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if strings.Contains(e.Value, q.Filter) {
			matches = append(matches, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if q.Sort.Descending {
			a, b = b, a
		}
		switch q.Sort.Field {
		case SortByValue:
			if a.Value != b.Value {
				return a.Value < b.Value
			}
		case SortByCreatedAt:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	})

	total := int64(len(matches))
	if q.Offset >= len(matches) {
		return []domain.StringEntry{}, total, nil
	}
	end := len(matches)
	if q.Limit > 0 && q.Limit < end-q.Offset {
		end = q.Offset + q.Limit
	}
	return matches[q.Offset:end], total, nil
}

func (s *MemoryStringStore) Close() error {
	return nil
}
