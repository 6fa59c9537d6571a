package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SQLiteRepository implements Repository on a database/sql handle opened
// with the modernc.org/sqlite driver.
type SQLiteRepository struct {
	db   *sql.DB
	kind *Kind
	q    queries
	now  func() time.Time
}

// NewSQLiteRepository creates a Repository for kind backed by db.
func NewSQLiteRepository(db *sql.DB, kind *Kind) *SQLiteRepository {
	return &SQLiteRepository{
		db:   db,
		kind: kind,
		q:    buildQueries(kind, func(int) string { return "?" }),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Search lists records, newest first or filtered by name.
func (r *SQLiteRepository) Search(ctx context.Context, term string) ([]Record, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if strings.TrimSpace(term) == "" {
		rows, err = r.db.QueryContext(ctx, r.q.newest)
	} else {
		rows, err = r.db.QueryContext(ctx, r.q.search, likePattern(term))
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.kind.Plural, err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(r.kind, rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", r.kind.Name, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", r.kind.Name, err)
	}

	return records, nil
}

// GetByID retrieves a single record by its UUID.
func (r *SQLiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return r.getOne(ctx, r.q.byID, id.String())
}

// GetByName retrieves a single record by its exact unique name.
func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*Record, error) {
	return r.getOne(ctx, r.q.byName, name)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*Record, error) {
	rec, err := scanRecord(r.kind, r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying %s: %w", r.kind.Name, err)
	}
	return &rec, nil
}

// Create inserts rec, assigning its id and timestamps.
func (r *SQLiteRepository) Create(ctx context.Context, rec *Record) error {
	args := prepareInsert(rec, r.now())
	args[0] = rec.ID.String()

	if _, err := r.db.ExecContext(ctx, r.q.insert, args...); err != nil {
		if isSQLiteUnique(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("inserting %s: %w", r.kind.Name, err)
	}

	return nil
}

// Update replaces every attribute of the record with rec.ID.
func (r *SQLiteRepository) Update(ctx context.Context, rec *Record) error {
	args := prepareUpdate(rec, r.now())
	args[len(args)-1] = rec.ID.String()

	result, err := r.db.ExecContext(ctx, r.q.update, args...)
	if err != nil {
		if isSQLiteUnique(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("updating %s: %w", r.kind.Name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a record by its UUID.
func (r *SQLiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, r.q.delete, id.String())
	if err != nil {
		return fmt.Errorf("deleting %s: %w", r.kind.Name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func isSQLiteUnique(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
