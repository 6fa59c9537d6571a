package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
	kind *Kind
	q    queries
	now  func() time.Time
}

// NewPostgresRepository creates a Repository for kind backed by the given
// connection pool.
func NewPostgresRepository(pool *pgxpool.Pool, kind *Kind) *PostgresRepository {
	return &PostgresRepository{
		pool: pool,
		kind: kind,
		q:    buildQueries(kind, func(n int) string { return "$" + strconv.Itoa(n) }),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Search lists records, newest first or filtered by name.
func (r *PostgresRepository) Search(ctx context.Context, term string) ([]Record, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if strings.TrimSpace(term) == "" {
		rows, err = r.pool.Query(ctx, r.q.newest)
	} else {
		rows, err = r.pool.Query(ctx, r.q.search, likePattern(term))
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
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return r.getOne(ctx, r.q.byID, id)
}

// GetByName retrieves a single record by its exact unique name.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Record, error) {
	return r.getOne(ctx, r.q.byName, name)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*Record, error) {
	rec, err := scanRecord(r.kind, r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying %s: %w", r.kind.Name, err)
	}
	return &rec, nil
}

// Create inserts rec, assigning its id and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, rec *Record) error {
	args := prepareInsert(rec, r.now())

	if _, err := r.pool.Exec(ctx, r.q.insert, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("inserting %s: %w", r.kind.Name, err)
	}

	return nil
}

// Update replaces every attribute of the record with rec.ID.
func (r *PostgresRepository) Update(ctx context.Context, rec *Record) error {
	args := prepareUpdate(rec, r.now())

	result, err := r.pool.Exec(ctx, r.q.update, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("updating %s: %w", r.kind.Name, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a record by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, r.q.delete, id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", r.kind.Name, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
