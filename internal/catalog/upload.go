package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/delcom/catalog/internal/apperr"
	"github.com/delcom/catalog/internal/logging"
	"github.com/delcom/catalog/internal/storage"
)

// DefaultMaxUploadBytes caps a multipart request body.
const DefaultMaxUploadBytes = 5 << 20

// maxFieldBytes caps a single text form part.
const maxFieldBytes = 1 << 20

// ParseFunc produces a draft for a request. Any image it wrote is recorded
// in the draft's ImagePath.
type ParseFunc func(ctx context.Context) (*Draft, error)

// Uploader turns multipart requests into drafts, streaming the image part
// into the blob store.
type Uploader struct {
	store    storage.Store
	maxBytes int64
}

// NewUploader creates an Uploader. A non-positive maxBytes selects
// DefaultMaxUploadBytes.
func NewUploader(store storage.Store, maxBytes int64) *Uploader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &Uploader{store: store, maxBytes: maxBytes}
}

// Parser returns a ParseFunc reading the multipart body of r for kind.
func (u *Uploader) Parser(w http.ResponseWriter, r *http.Request, kind *Kind) ParseFunc {
	return func(ctx context.Context) (*Draft, error) {
		r.Body = http.MaxBytesReader(w, r.Body, u.maxBytes)
		return u.Parse(ctx, r, kind)
	}
}

// Parse reads every part of the multipart body. Text parts naming a field of
// kind are stored in the draft; unknown names are ignored. A file part is
// written to "<plural>/<uuid><ext>"; when several file parts are sent the
// last one wins and earlier ones are deleted. On failure nothing written by
// this call is left behind.
func (u *Uploader) Parse(ctx context.Context, r *http.Request, kind *Kind) (*Draft, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, apperr.Validation("Request harus berupa multipart/form-data")
	}

	draft := NewDraft(kind)
	var written string

	fail := func(err error) (*Draft, error) {
		if written != "" {
			u.discard(ctx, written)
		}
		return nil, err
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(readError(err))
		}

		if part.FileName() != "" {
			key := imageKey(kind, part.FileName())
			body := &partReader{r: part}
			err := u.store.Save(ctx, key, body)
			part.Close()
			if err != nil {
				u.discard(ctx, key)
				if body.err != nil {
					return fail(readError(body.err))
				}
				return fail(fmt.Errorf("saving %s image: %w", kind.Name, err))
			}
			if written != "" {
				u.discard(ctx, written)
			}
			written = key
			continue
		}

		name := part.FormName()
		if _, ok := kind.Field(name); !ok {
			part.Close()
			continue
		}

		value, err := readField(part)
		part.Close()
		if err != nil {
			return fail(readError(err))
		}
		draft.Set(name, value)
	}

	draft.SetImage(written)
	return draft, nil
}

// Discard deletes a blob written by Parse, logging instead of failing.
func (u *Uploader) Discard(ctx context.Context, key string) {
	u.discard(ctx, key)
}

func (u *Uploader) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := u.store.Delete(context.WithoutCancel(ctx), key); err != nil {
		logging.FromContext(ctx).Warn("failed to delete uploaded image", slog.String("key", key), slog.Any("error", err))
	}
}

func imageKey(kind *Kind, filename string) string {
	return path.Join(kind.Plural, uuid.NewString()+filepath.Ext(filename))
}

func readField(p *multipart.Part) (string, error) {
	data, err := io.ReadAll(io.LimitReader(p, maxFieldBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxFieldBytes {
		return "", errFieldTooLarge
	}
	return string(data), nil
}

var errFieldTooLarge = errors.New("form field too large")

// partReader remembers the error of the request stream so it can be told
// apart from a store failure.
type partReader struct {
	r   io.Reader
	err error
}

func (p *partReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if err != nil && !errors.Is(err, io.EOF) {
		p.err = err
	}
	return n, err
}

func readError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperr.Validation(fmt.Sprintf("Ukuran request melebihi batas %d byte", maxErr.Limit))
	}
	if errors.Is(err, errFieldTooLarge) {
		return apperr.Validation("Ukuran field form melebihi batas")
	}
	return apperr.Validation("Request multipart tidak dapat dibaca")
}
