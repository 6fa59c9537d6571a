package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record matches the lookup or no row was
// affected by an update or delete.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateName is returned when the unique name is already taken.
var ErrDuplicateName = errors.New("record name already exists")

// Repository provides data access for the records of a single kind.
type Repository interface {
	// Search returns up to PageSize records. A blank term yields the newest
	// records; otherwise records whose name contains term, case-insensitively,
	// ordered by name.
	Search(ctx context.Context, term string) ([]Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	GetByName(ctx context.Context, name string) (*Record, error)
	Create(ctx context.Context, rec *Record) error
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// likePattern escapes LIKE wildcards in term and wraps it for a contains match.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

// columns lists the attribute columns followed by the image column.
func columns(k *Kind) []string {
	cols := make([]string, 0, len(k.Fields)+1)
	for _, f := range k.Fields {
		cols = append(cols, f.Column)
	}
	return append(cols, imageColumn)
}

// values returns the arguments matching columns(k).
func values(rec *Record) []any {
	args := make([]any, 0, len(rec.Kind.Fields)+1)
	for _, f := range rec.Kind.Fields {
		args = append(args, rec.Attrs[f.Name])
	}
	return append(args, rec.ImagePath)
}
