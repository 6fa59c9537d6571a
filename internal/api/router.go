package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/delcom/catalog/internal/api/handler"
	"github.com/delcom/catalog/internal/api/middleware"
	"github.com/delcom/catalog/internal/catalog"
)

// Banner is the plain-text body of GET /.
const Banner = "API Katalog berjalan. Tersedia: /plants, /flowers, /zodiacs."

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Services       []*catalog.Service
	Uploader       *catalog.Uploader
	DBPinger       handler.Pinger
	StoragePinger  handler.Pinger
	Version        string
	OpenAPISpec    []byte
	AdminKeyHash   string
	DisableLogging bool
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	if !deps.DisableLogging {
		r.Use(chimiddleware.Logger)
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(Banner))
	})

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.StoragePinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if len(deps.OpenAPISpec) > 0 {
		openapiHandler := handler.NewOpenAPIHandler(deps.OpenAPISpec)
		r.Get("/openapi.json", openapiHandler.ServeHTTP)
	}

	requireKey := middleware.RequireAPIKey(deps.AdminKeyHash)
	for _, svc := range deps.Services {
		h := handler.NewCatalogHandler(svc, deps.Uploader)
		r.Route("/"+svc.Kind().Plural, func(r chi.Router) {
			h.Routes(r, requireKey)
		})
	}

	return r
}
