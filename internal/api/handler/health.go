package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/delcom/catalog/internal/api/response"
	"github.com/delcom/catalog/internal/logging"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

// Ping calls f.
func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

const healthCheckTimeout = 3 * time.Second

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      Pinger
	storage Pinger
	version string
}

// NewHealthHandler creates a new HealthHandler. Nil pingers are reported as
// disconnected.
func NewHealthHandler(db, storage Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		storage: storage,
		version: version,
	}
}

type dependencyStatus struct {
	Connected bool `json:"connected"`
}

type healthData struct {
	Status   string           `json:"status"`
	Version  string           `json:"version"`
	Database dependencyStatus `json:"database"`
	Storage  dependencyStatus `json:"storage"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	data := healthData{
		Status:   "healthy",
		Version:  h.version,
		Database: dependencyStatus{Connected: check(ctx, "database", h.db)},
		Storage:  dependencyStatus{Connected: check(ctx, "storage", h.storage)},
	}
	if !data.Database.Connected || !data.Storage.Connected {
		data.Status = "degraded"
	}

	response.Success(w, "Layanan berjalan", data)
}

func check(ctx context.Context, name string, p Pinger) bool {
	if p == nil {
		return false
	}
	if err := p.Ping(ctx); err != nil {
		logging.FromContext(ctx).Warn("health check failed", "dependency", name, "error", err)
		return false
	}
	return true
}
