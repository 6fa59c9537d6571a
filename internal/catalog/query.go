package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// queries holds the SQL statements for one kind and dialect.
type queries struct {
	search string
	newest string
	byID   string
	byName string
	insert string
	update string
	delete string
}

// buildQueries renders the statements for k. placeholder returns the
// bind marker for the n-th (1-based) argument.
func buildQueries(k *Kind, placeholder func(n int) string) queries {
	cols := columns(k)
	selectList := "id, " + strings.Join(cols, ", ") + ", created_at, updated_at"
	name := k.Unique().Column

	var q queries
	q.newest = fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY created_at DESC
		LIMIT %d`, selectList, k.Table, k.PageSize)

	q.search = fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE LOWER(%s) LIKE %s ESCAPE '\'
		ORDER BY %s ASC
		LIMIT %d`, selectList, k.Table, name, placeholder(1), name, k.PageSize)

	q.byID = fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = %s`, selectList, k.Table, placeholder(1))

	q.byName = fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = %s`, selectList, k.Table, name, placeholder(1))

	insertCols := append([]string{"id"}, cols...)
	insertCols = append(insertCols, "created_at", "updated_at")
	marks := make([]string, len(insertCols))
	for i := range marks {
		marks[i] = placeholder(i + 1)
	}
	q.insert = fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)`, k.Table, strings.Join(insertCols, ", "), strings.Join(marks, ", "))

	sets := make([]string, 0, len(cols)+1)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = %s", c, placeholder(i+1)))
	}
	sets = append(sets, fmt.Sprintf("updated_at = %s", placeholder(len(cols)+1)))
	q.update = fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = %s`, k.Table, strings.Join(sets, ", "), placeholder(len(cols)+2))

	q.delete = fmt.Sprintf(`DELETE FROM %s WHERE id = %s`, k.Table, placeholder(1))

	return q
}

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(k *Kind, row rowScanner) (Record, error) {
	rec := Record{Kind: k, Attrs: make(map[string]string, len(k.Fields))}
	vals := make([]string, len(k.Fields))

	dest := make([]any, 0, len(k.Fields)+4)
	dest = append(dest, &rec.ID)
	for i := range vals {
		dest = append(dest, &vals[i])
	}
	dest = append(dest, &rec.ImagePath, &rec.CreatedAt, &rec.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return Record{}, err
	}

	for i, f := range k.Fields {
		rec.Attrs[f.Name] = vals[i]
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}

// prepareInsert assigns the id and timestamps of a new record.
func prepareInsert(rec *Record, now time.Time) []any {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now

	args := []any{rec.ID}
	args = append(args, values(rec)...)
	return append(args, rec.CreatedAt, rec.UpdatedAt)
}

// prepareUpdate refreshes UpdatedAt, never moving it before CreatedAt.
func prepareUpdate(rec *Record, now time.Time) []any {
	if !rec.CreatedAt.IsZero() && now.Before(rec.CreatedAt) {
		now = rec.CreatedAt
	}
	rec.UpdatedAt = now

	args := values(rec)
	return append(args, rec.UpdatedAt, rec.ID)
}
