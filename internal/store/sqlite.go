package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"stringsdb/internal/domain"
)

// timeLayout keeps created_at lexically sortable
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStringStore stores entries in a SQLite database
type SQLiteStringStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens or creates the database at path and ensures the schema
// exists. Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLiteStringStore, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	s := &SQLiteStringStore{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStringStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS strings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			value TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_strings_value ON strings(value)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteStringStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStringStore) Save(ctx context.Context, value string) (domain.StringEntry, error) {
	createdAt := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO strings (value, created_at) VALUES (?, ?)`,
		value, createdAt.Format(timeLayout))
	if err != nil {
		return domain.StringEntry{}, fmt.Errorf("inserting entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.StringEntry{}, fmt.Errorf("reading entry id: %w", err)
	}
	return domain.StringEntry{ID: id, Value: value, CreatedAt: createdAt}, nil
}

func (s *SQLiteStringStore) FindByID(ctx context.Context, id int64) (domain.StringEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, value, created_at FROM strings WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StringEntry{}, ErrNotFound
	}
	if err != nil {
		return domain.StringEntry{}, fmt.Errorf("querying entry %d: %w", id, err)
	}
	return entry, nil
}

func (s *SQLiteStringStore) Find(ctx context.Context, q Query) ([]domain.StringEntry, int64, error) {
	if q.Offset < 0 {
		return nil, 0, fmt.Errorf("negative offset %d", q.Offset)
	}
	var total int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM strings WHERE instr(value, ?) > 0`, q.Filter,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting entries: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, value, created_at FROM strings WHERE instr(value, ?) > 0 ` +
		orderBy(q.Sort) + ` LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, q.Filter, limit, q.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.StringEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, total, nil
}

// orderBy maps a Sort onto a whitelisted ORDER BY clause
func orderBy(s Sort) string {
	column := "id"
	switch s.Field {
	case SortByValue:
		column = "value"
	case SortByCreatedAt:
		column = "created_at"
	}
	direction := "ASC"
	if s.Descending {
		direction = "DESC"
	}
	if column == "id" {
		return "ORDER BY id " + direction
	}
	return "ORDER BY " + column + " " + direction + ", id " + direction
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (domain.StringEntry, error) {
	var (
		entry     domain.StringEntry
		createdAt string
	)
	if err := r.Scan(&entry.ID, &entry.Value, &createdAt); err != nil {
		return domain.StringEntry{}, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return domain.StringEntry{}, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	entry.CreatedAt = t
	return entry, nil
}
