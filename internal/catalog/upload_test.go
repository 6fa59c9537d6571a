package catalog_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delcom/catalog/internal/apperr"
	"github.com/delcom/catalog/internal/catalog"
	"github.com/delcom/catalog/internal/resources"
	"github.com/delcom/catalog/internal/storage"
)

type filePart struct {
	name     string
	filename string
	content  string
}

// multipartRequest builds a request carrying fields and files.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...filePart) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.name, f.filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploader_ParsesFieldsAndImage(t *testing.T) {
	store := storage.NewMemoryStore()
	u := catalog.NewUploader(store, 0)
	kind := resources.Plant()

	req := multipartRequest(t, http.MethodPost, "/plants", map[string]string{
		"nama":      "  Kunyit ",
		"deskripsi": " rimpang ",
		"ignored":   "x",
	}, filePart{name: "file", filename: "kunyit.PNG", content: "png"})

	draft, err := u.Parse(context.Background(), req, &kind)
	require.NoError(t, err)

	assert.Equal(t, "Kunyit", draft.Get("nama"))
	assert.Equal(t, " rimpang ", draft.Get("deskripsi"))
	assert.Regexp(t, `^plants/[0-9a-f-]{36}\.PNG$`, draft.ImagePath())
	assert.Equal(t, []string{draft.ImagePath()}, store.Keys())
}

func TestUploader_NoFileLeavesImageEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	u := catalog.NewUploader(store, 0)
	kind := resources.Plant()

	req := multipartRequest(t, http.MethodPost, "/plants", map[string]string{"nama": "Jahe"})

	draft, err := u.Parse(context.Background(), req, &kind)
	require.NoError(t, err)
	assert.Empty(t, draft.ImagePath())
	assert.Empty(t, store.Keys())
}

func TestUploader_FileWithoutExtension(t *testing.T) {
	store := storage.NewMemoryStore()
	u := catalog.NewUploader(store, 0)
	kind := resources.Zodiac()

	req := multipartRequest(t, http.MethodPost, "/zodiacs", nil,
		filePart{name: "file", filename: "gambar", content: "raw"})

	draft, err := u.Parse(context.Background(), req, &kind)
	require.NoError(t, err)
	assert.Regexp(t, `^zodiacs/[0-9a-f-]{36}$`, draft.ImagePath())
}

func TestUploader_LastFileWins(t *testing.T) {
	store := storage.NewMemoryStore()
	u := catalog.NewUploader(store, 0)
	kind := resources.Flower()

	req := multipartRequest(t, http.MethodPost, "/flowers", nil,
		filePart{name: "file", filename: "a.jpg", content: "first"},
		filePart{name: "file", filename: "b.png", content: "second"},
	)

	draft, err := u.Parse(context.Background(), req, &kind)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(draft.ImagePath(), ".png"))
	assert.Equal(t, []string{draft.ImagePath()}, store.Keys())
}

func TestUploader_NotMultipart(t *testing.T) {
	u := catalog.NewUploader(storage.NewMemoryStore(), 0)
	kind := resources.Plant()

	req := httptest.NewRequest(http.MethodPost, "/plants", strings.NewReader(`{"nama":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	_, err := u.Parse(context.Background(), req, &kind)
	assert.True(t, apperr.IsKind(err, apperr.ValidationFailed))
}

func TestUploader_BodyTooLargeRemovesWrittenFile(t *testing.T) {
	store := storage.NewMemoryStore()
	u := catalog.NewUploader(store, 64)
	kind := resources.Plant()

	req := multipartRequest(t, http.MethodPost, "/plants", nil,
		filePart{name: "file", filename: "big.png", content: strings.Repeat("x", 4096)})
	rec := httptest.NewRecorder()

	_, err := u.Parser(rec, req, &kind)(context.Background())

	assert.True(t, apperr.IsKind(err, apperr.ValidationFailed))
	assert.Empty(t, store.Keys())
}

func TestUploader_BrokenStreamRemovesEarlierFile(t *testing.T) {
	store := storage.NewMemoryStore()
	u := catalog.NewUploader(store, 0)
	kind := resources.Plant()

	full := multipartRequest(t, http.MethodPost, "/plants", map[string]string{"nama": "x"},
		filePart{name: "file", filename: "a.png", content: "png"})
	body := new(bytes.Buffer)
	_, err := body.ReadFrom(full.Body)
	require.NoError(t, err)

	// Drop the closing boundary so the reader fails after the file part.
	truncated := body.Bytes()[:body.Len()-10]
	req := httptest.NewRequest(http.MethodPost, "/plants", bytes.NewReader(truncated))
	req.Header.Set("Content-Type", full.Header.Get("Content-Type"))

	_, err = u.Parse(context.Background(), req, &kind)

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.ValidationFailed))
	assert.Empty(t, store.Keys())
}
