package handler

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/delcom/catalog/internal/api/response"
	"github.com/delcom/catalog/internal/catalog"
	"github.com/delcom/catalog/internal/logging"
	"github.com/delcom/catalog/internal/storage"
)

// CatalogHandler serves the routes of one catalog kind.
type CatalogHandler struct {
	svc      *catalog.Service
	uploader *catalog.Uploader
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *catalog.Service, uploader *catalog.Uploader) *CatalogHandler {
	return &CatalogHandler{svc: svc, uploader: uploader}
}

// Routes mounts the read routes on r and the write routes on a group using
// writeMW.
func (h *CatalogHandler) Routes(r chi.Router, writeMW ...func(http.Handler) http.Handler) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/image", h.Image)

	r.Group(func(r chi.Router) {
		r.Use(writeMW...)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /<plural>?search=.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := h.svc.Kind()

	records, err := h.svc.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, kind.Messages.Listed, map[string]any{kind.Plural: records})
}

// Get handles GET /<plural>/{id}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind := h.svc.Kind()

	rec, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, kind.MsgFetched(), map[string]any{kind.Name: rec})
}

// Create handles POST /<plural>.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind := h.svc.Kind()

	id, err := h.svc.Create(r.Context(), h.uploader.Parser(w, r, kind))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, kind.MsgCreated(), map[string]string{kind.IDKey(): id.String()})
}

// Update handles PUT /<plural>/{id}.
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	kind := h.svc.Kind()

	err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), h.uploader.Parser(w, r, kind))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, kind.MsgUpdated(), nil)
}

// Delete handles DELETE /<plural>/{id}.
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind := h.svc.Kind()

	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, kind.MsgDeleted(), nil)
}

// Image handles GET /<plural>/{id}/image. Missing images are a bare 404.
func (h *CatalogHandler) Image(w http.ResponseWriter, r *http.Request) {
	rc, key, err := h.svc.OpenImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logging.FromContext(r.Context()).Error("failed to open image", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	body := io.Reader(rc)
	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(rc, head)
		head = head[:n]
		contentType = http.DetectContentType(head)
		body = io.MultiReader(bytes.NewReader(head), rc)
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		logging.FromContext(r.Context()).Warn("failed to stream image", "key", key, "error", err)
	}
}
