package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/sanakirja"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sanakirja.LookupService = (*LookupService)(nil)

// LookupService implements sanakirja.LookupService using SQLite.
type LookupService struct {
	db *DB
}

// NewLookupService creates a new LookupService.
func NewLookupService(db *DB) *LookupService {
	return &LookupService{db: db}
}

// CreateLookup records a lookup with a generated ID. CreatedAt is kept when
// set by the caller.
func (s *LookupService) CreateLookup(ctx context.Context, lookup *sanakirja.Lookup) error {
	if err := lookup.Validate(); err != nil {
		return err
	}

	lookup.ID = uuid.New().String()
	if lookup.CreatedAt.IsZero() {
		lookup.CreatedAt = time.Now()
	}
	lookup.CreatedAt = lookup.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lookups (id, chat_id, query, found, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, lookup.ID, lookup.ChatID, lookup.Query, lookup.Found, formatTime(lookup.CreatedAt))

	return err
}

// FindLookups retrieves lookups matching the filter, newest first.
func (s *LookupService) FindLookups(ctx context.Context, filter sanakirja.LookupFilter) ([]*sanakirja.Lookup, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, chat_id, query, found, created_at FROM lookups WHERE 1=1")

	if filter.ChatID != nil {
		query.WriteString(" AND chat_id = ?")
		args = append(args, *filter.ChatID)
	}
	if filter.Query != nil {
		query.WriteString(" AND query = ?")
		args = append(args, *filter.Query)
	}
	if filter.Found != nil {
		query.WriteString(" AND found = ?")
		args = append(args, *filter.Found)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []*sanakirja.Lookup
	for rows.Next() {
		var l sanakirja.Lookup
		var createdAt string

		if err := rows.Scan(&l.ID, &l.ChatID, &l.Query, &l.Found, &createdAt); err != nil {
			return nil, err
		}

		if l.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		lookups = append(lookups, &l)
	}

	return lookups, rows.Err()
}
