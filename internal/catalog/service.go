package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/delcom/catalog/internal/apperr"
	"github.com/delcom/catalog/internal/logging"
	"github.com/delcom/catalog/internal/storage"
	"github.com/delcom/catalog/internal/validation"
)

// Service implements the create, update, delete and read workflows of one
// kind. Validation, uniqueness and image lifecycle are handled here; the
// repository only persists.
type Service struct {
	kind     *Kind
	repo     Repository
	store    storage.Store
	uploader *Uploader
}

// NewService creates a Service for kind.
func NewService(kind *Kind, repo Repository, store storage.Store, uploader *Uploader) *Service {
	return &Service{kind: kind, repo: repo, store: store, uploader: uploader}
}

// Kind returns the schema the service operates on.
func (s *Service) Kind() *Kind {
	return s.kind
}

// List returns records matching search, see Repository.Search.
func (s *Service) List(ctx context.Context, search string) ([]Record, error) {
	records, err := s.repo.Search(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", s.kind.Plural, err)
	}
	return records, nil
}

// Get returns the record with the given id. A malformed id is reported the
// same way as a missing record.
func (s *Service) Get(ctx context.Context, rawID string) (*Record, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperr.NewNotFound(s.kind.Messages.NotFound)
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NewNotFound(s.kind.Messages.NotFound)
		}
		return nil, fmt.Errorf("getting %s: %w", s.kind.Name, err)
	}
	return rec, nil
}

// Create parses, validates and stores a new record, returning its id.
// The uploaded image is deleted whenever the record is not stored.
func (s *Service) Create(ctx context.Context, parse ParseFunc) (uuid.UUID, error) {
	draft, err := parse(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	upload := draft.ImagePath()

	if err := s.validate(ctx, draft, true); err != nil {
		s.uploader.Discard(ctx, upload)
		return uuid.Nil, err
	}

	name := draft.Get(s.kind.UniqueField)
	if err := s.ensureNameFree(ctx, name); err != nil {
		s.uploader.Discard(ctx, upload)
		return uuid.Nil, err
	}

	rec := draft.Build()
	if err := s.repo.Create(ctx, &rec); err != nil {
		s.uploader.Discard(ctx, upload)
		if errors.Is(err, ErrDuplicateName) {
			return uuid.Nil, apperr.NewConflict(s.kind.Messages.Conflict)
		}
		return uuid.Nil, fmt.Errorf("creating %s: %w", s.kind.Name, err)
	}

	logging.FromContext(ctx).Info("record created",
		slog.String("kind", s.kind.Name), slog.String("id", rec.ID.String()))
	return rec.ID, nil
}

// Update replaces the record with the given id. Without a new image the
// existing one is kept; with one, the old blob is deleted only after the
// row has been updated.
func (s *Service) Update(ctx context.Context, rawID string, parse ParseFunc) error {
	existing, err := s.Get(ctx, rawID)
	if err != nil {
		return err
	}

	draft, err := parse(ctx)
	if err != nil {
		return err
	}

	upload := draft.ImagePath()
	if upload == existing.ImagePath {
		upload = ""
	}
	if draft.ImagePath() == "" {
		draft.SetImage(existing.ImagePath)
	}

	if err := s.validate(ctx, draft, false); err != nil {
		s.uploader.Discard(ctx, upload)
		return err
	}

	name := draft.Get(s.kind.UniqueField)
	if name != existing.Name() {
		if err := s.ensureNameFree(ctx, name); err != nil {
			s.uploader.Discard(ctx, upload)
			return err
		}
	}

	rec := draft.Build()
	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, &rec); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			s.uploader.Discard(ctx, upload)
			return apperr.NewOperationFailed(s.kind.msgUpdateFailed())
		case errors.Is(err, ErrDuplicateName):
			s.uploader.Discard(ctx, upload)
			return apperr.NewConflict(s.kind.Messages.Conflict)
		default:
			return fmt.Errorf("updating %s: %w", s.kind.Name, err)
		}
	}

	if rec.ImagePath != existing.ImagePath {
		s.uploader.Discard(ctx, existing.ImagePath)
	}

	logging.FromContext(ctx).Info("record updated",
		slog.String("kind", s.kind.Name), slog.String("id", rec.ID.String()))
	return nil
}

// Delete removes the record with the given id and then its image.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	existing, err := s.Get(ctx, rawID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NewOperationFailed(s.kind.msgDeleteFailed())
		}
		return fmt.Errorf("deleting %s: %w", s.kind.Name, err)
	}

	s.uploader.Discard(ctx, existing.ImagePath)

	logging.FromContext(ctx).Info("record deleted",
		slog.String("kind", s.kind.Name), slog.String("id", existing.ID.String()))
	return nil
}

// OpenImage opens the image of the record with the given id. It returns
// storage.ErrNotFound when the record or its blob is missing.
func (s *Service) OpenImage(ctx context.Context, rawID string) (io.ReadCloser, string, error) {
	rec, err := s.Get(ctx, rawID)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return nil, "", storage.ErrNotFound
		}
		return nil, "", err
	}
	if rec.ImagePath == "" {
		return nil, "", storage.ErrNotFound
	}

	rc, err := s.store.Open(ctx, rec.ImagePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", storage.ErrNotFound
		}
		return nil, "", fmt.Errorf("opening %s image: %w", s.kind.Name, err)
	}
	return rc, rec.ImagePath, nil
}

// validate checks the draft against the kind's field rules and confirms a
// non-empty image path exists in the store.
func (s *Service) validate(ctx context.Context, d *Draft, imageRequired bool) error {
	v := validation.New(d.Values())
	for _, f := range s.kind.Fields {
		v.Required(f.Name, f.Message)
		if f.MaxLength > 0 {
			v.MaxLength(f.Name, f.MaxLength, fmt.Sprintf("Maksimal %d karakter", f.MaxLength))
		}
	}
	if imageRequired {
		v.Required(ImageField, "Gambar tidak boleh kosong")
	}
	v.MaxLength(ImageField, imageMaxLength, fmt.Sprintf("Maksimal %d karakter", imageMaxLength))
	if err := v.Validate(); err != nil {
		return err
	}

	if d.ImagePath() == "" {
		return nil
	}
	ok, err := s.store.Exists(ctx, d.ImagePath())
	if err != nil {
		return fmt.Errorf("checking %s image: %w", s.kind.Name, err)
	}
	if !ok {
		return apperr.Validation(s.kind.msgImageUpload())
	}
	return nil
}

func (s *Service) ensureNameFree(ctx context.Context, name string) error {
	_, err := s.repo.GetByName(ctx, name)
	switch {
	case err == nil:
		return apperr.NewConflict(s.kind.Messages.Conflict)
	case errors.Is(err, ErrNotFound):
		return nil
	default:
		return fmt.Errorf("checking %s name: %w", s.kind.Name, err)
	}
}
