package catalog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is a stored catalog entry.
type Record struct {
	Kind      *Kind
	ID        uuid.UUID
	Attrs     map[string]string
	ImagePath string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Get returns the value of the named attribute.
func (r *Record) Get(name string) string {
	if name == ImageField {
		return r.ImagePath
	}
	return r.Attrs[name]
}

// Name returns the value of the kind's unique field.
func (r *Record) Name() string {
	return r.Attrs[r.Kind.UniqueField]
}

// MarshalJSON renders the record with its kind's field names, for example
// {"id":..., "nama":..., "pathGambar":..., "createdAt":..., "updatedAt":...}.
func (r *Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Attrs)+4)
	m["id"] = r.ID.String()
	for _, f := range r.Kind.Fields {
		m[f.Name] = r.Attrs[f.Name]
	}
	m[ImageField] = r.ImagePath
	m["createdAt"] = r.CreatedAt.UTC().Format(time.RFC3339Nano)
	m["updatedAt"] = r.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return json.Marshal(m)
}

// Draft accumulates request values before they become a Record.
type Draft struct {
	kind      *Kind
	attrs     map[string]string
	imagePath string
}

// NewDraft creates an empty draft for kind.
func NewDraft(kind *Kind) *Draft {
	return &Draft{kind: kind, attrs: make(map[string]string, len(kind.Fields))}
}

// Set stores value for a known field and reports whether the field exists.
// Values of trimmed fields lose surrounding whitespace.
func (d *Draft) Set(name, value string) bool {
	f, ok := d.kind.Field(name)
	if !ok {
		return false
	}
	if f.Trim {
		value = strings.TrimSpace(value)
	}
	d.attrs[name] = value
	return true
}

// Get returns the current value of a field.
func (d *Draft) Get(name string) string {
	if name == ImageField {
		return d.imagePath
	}
	return d.attrs[name]
}

// SetImage sets the blob key of the uploaded image.
func (d *Draft) SetImage(key string) {
	d.imagePath = key
}

// ImagePath returns the blob key, empty when no image was uploaded.
func (d *Draft) ImagePath() string {
	return d.imagePath
}

// Values returns every field plus the image path, keyed by form name.
// Missing fields are present with an empty value.
func (d *Draft) Values() map[string]string {
	out := make(map[string]string, len(d.kind.Fields)+1)
	for _, f := range d.kind.Fields {
		out[f.Name] = d.attrs[f.Name]
	}
	out[ImageField] = d.imagePath
	return out
}

// Build returns a Record snapshot of the draft. Later changes to the draft
// do not affect it.
func (d *Draft) Build() Record {
	attrs := make(map[string]string, len(d.kind.Fields))
	for _, f := range d.kind.Fields {
		attrs[f.Name] = d.attrs[f.Name]
	}
	return Record{Kind: d.kind, Attrs: attrs, ImagePath: d.imagePath}
}
