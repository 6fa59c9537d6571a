package catalog

import "fmt"

// ImageField is the form and JSON name of every kind's image path.
const ImageField = "pathGambar"

const imageColumn = "path_gambar"

const imageMaxLength = 255

// Field describes one text attribute of a kind.
type Field struct {
	Name      string // form and JSON name
	Column    string
	Message   string // shown when the field is missing
	MaxLength int    // 0 means unbounded (TEXT column)
	Trim      bool   // trim surrounding whitespace when parsed from a form
}

// Messages holds the user-facing texts that differ between kinds.
type Messages struct {
	Listed   string
	NotFound string
	Conflict string
}

// Kind is the schema of one catalog resource. The generic repository,
// uploader, service and HTTP handler are all driven by it.
type Kind struct {
	Name        string // singular, used for response keys ("plant", "plantId")
	Plural      string // route segment, blob prefix and list response key
	Table       string
	Noun        string // Indonesian noun used in messages
	Fields      []Field
	UniqueField string
	PageSize    int
	Messages    Messages
}

// Field returns the field definition with the given name.
func (k Kind) Field(name string) (Field, bool) {
	for _, f := range k.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Unique returns the field whose value must be unique across records.
func (k Kind) Unique() Field {
	f, ok := k.Field(k.UniqueField)
	if !ok {
		panic(fmt.Sprintf("catalog: kind %q has no unique field %q", k.Name, k.UniqueField))
	}
	return f
}

// IDKey is the response key carrying a newly created id, e.g. "plantId".
func (k Kind) IDKey() string {
	return k.Name + "Id"
}

// WithPageSize returns a copy of k listing at most n records. Non-positive
// values keep the current page size.
func (k Kind) WithPageSize(n int) Kind {
	if n > 0 {
		k.PageSize = n
	}
	return k
}

func (k Kind) msgImageUpload() string {
	return fmt.Sprintf("Gambar %s gagal diupload!", k.Noun)
}

func (k Kind) msgUpdateFailed() string {
	return fmt.Sprintf("Gagal memperbarui data %s!", k.Noun)
}

func (k Kind) msgDeleteFailed() string {
	return fmt.Sprintf("Gagal menghapus data %s!", k.Noun)
}

// Success messages for the HTTP layer.

func (k Kind) MsgFetched() string { return fmt.Sprintf("Berhasil mengambil data %s", k.Noun) }
func (k Kind) MsgCreated() string { return fmt.Sprintf("Berhasil menambahkan data %s", k.Noun) }
func (k Kind) MsgUpdated() string { return fmt.Sprintf("Berhasil mengubah data %s", k.Noun) }
func (k Kind) MsgDeleted() string { return fmt.Sprintf("Berhasil menghapus data %s", k.Noun) }
