package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stringsdb/internal/domain"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		expr    string
		want    Sort
		wantErr bool
	}{
		{"", Sort{Field: SortByID}, false},
		{"value", Sort{Field: SortByValue}, false},
		{"value,asc", Sort{Field: SortByValue}, false},
		{"value,DESC", Sort{Field: SortByValue, Descending: true}, false},
		{"createdAt,desc", Sort{Field: SortByCreatedAt, Descending: true}, false},
		{" id ", Sort{Field: SortByID}, false},
		{"password", Sort{}, true},
		{"value,sideways", Sort{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseSort(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// stores returns every StringStore implementation so both are held to the
// same contract.
func stores(t *testing.T) map[string]StringStore {
	t.Helper()

	sqliteStore, err := OpenSQLite(filepath.Join(t.TempDir(), "strings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]StringStore{
		"memory": NewMemoryStringStore(),
		"sqlite": sqliteStore,
	}
}

func seed(t *testing.T, s StringStore, values ...string) []domain.StringEntry {
	t.Helper()
	saved := make([]domain.StringEntry, 0, len(values))
	for _, v := range values {
		e, err := s.Save(context.Background(), v)
		require.NoError(t, err)
		saved = append(saved, e)
	}
	return saved
}

func values(entries []domain.StringEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out
}

func TestSaveAndFindByID(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			saved, err := s.Save(ctx, "hello world")
			require.NoError(t, err)
			assert.Positive(t, saved.ID)
			assert.WithinDuration(t, time.Now(), saved.CreatedAt, time.Minute)

			found, err := s.FindByID(ctx, saved.ID)
			require.NoError(t, err)
			assert.Equal(t, saved.ID, found.ID)
			assert.Equal(t, "hello world", found.Value)
			assert.True(t, saved.CreatedAt.Equal(found.CreatedAt))

			_, err = s.FindByID(ctx, saved.ID+100)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestFindFiltersAndPages(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, s, "cat", "concat", "dog", "Cat", "catalog", "bobcat")

			entries, total, err := s.Find(ctx, Query{Filter: "cat", Sort: Sort{Field: SortByValue}, Limit: 2})
			require.NoError(t, err)
			assert.Equal(t, int64(4), total, "filter is case sensitive")
			assert.Equal(t, []string{"bobcat", "cat"}, values(entries))

			entries, total, err = s.Find(ctx, Query{Filter: "cat", Sort: Sort{Field: SortByValue}, Offset: 2, Limit: 2})
			require.NoError(t, err)
			assert.Equal(t, int64(4), total)
			assert.Equal(t, []string{"catalog", "concat"}, values(entries))

			entries, total, err = s.Find(ctx, Query{Filter: "cat", Offset: 10, Limit: 2})
			require.NoError(t, err)
			assert.Equal(t, int64(4), total)
			assert.Empty(t, entries)
			assert.NotNil(t, entries)
		})
	}
}

func TestFindRejectsNegativeOffset(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s, "cat")

			_, _, err := s.Find(context.Background(), Query{Offset: -20, Limit: 20})
			assert.Error(t, err)
		})
	}
}

func TestFindLimitNearMaxInt(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s, "a", "b")

			entries, _, err := s.Find(context.Background(), Query{Offset: 1, Limit: math.MaxInt})
			require.NoError(t, err)
			assert.Equal(t, []string{"b"}, values(entries))
		})
	}
}

func TestFindWithoutFilterReturnsEverything(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s, "b", "a", "c")

			entries, total, err := s.Find(context.Background(), Query{})
			require.NoError(t, err)
			assert.Equal(t, int64(3), total)
			assert.Equal(t, []string{"b", "a", "c"}, values(entries), "default order is insertion order")

			entries, _, err = s.Find(context.Background(), Query{Sort: Sort{Field: SortByValue, Descending: true}})
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "b", "a"}, values(entries))
		})
	}
}

func TestFindSortTiesBreakByID(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			saved := seed(t, s, "same", "same", "other")

			entries, _, err := s.Find(context.Background(), Query{Sort: Sort{Field: SortByValue}})
			require.NoError(t, err)
			require.Len(t, entries, 3)
			assert.Equal(t, "other", entries[0].Value)
			assert.Equal(t, saved[0].ID, entries[1].ID)
			assert.Equal(t, saved[1].ID, entries[2].ID)
		})
	}
}

func TestOpenSQLiteInMemory(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	seed(t, s, "x")
	_, total, err := s.Find(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	s := NewMemoryStringStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Save(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
