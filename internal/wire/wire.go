// internal/wire/wire.go
package wire

import (
	"net/http"

	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/internal/usecase"
	"movie-review/pkg/firebase"
	"movie-review/pkg/middleware"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies are the process-wide handles created once at startup and shared
// by every request.
type Dependencies struct {
	Repo     *repository.Repository
	Catalog  usecase.Catalog
	Verifier firebase.TokenVerifier
}

// App menyimpan semua dependencies
type App struct {
	Router   *chi.Mux
	Registry *prometheus.Registry
}

// Wiring builds services, handlers and the router.
func Wiring(deps Dependencies, config *utils.Config, logger *zap.Logger) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := middleware.NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	if deps.Verifier == nil {
		deps.Verifier = firebase.Unavailable()
	}
	if deps.Repo == nil {
		deps.Repo = repository.Unavailable(config.Store.Driver)
	}

	service := usecase.NewService(deps.Repo, deps.Catalog, logger)
	handler := adaptor.NewHandler(service, deps.Repo.Driver, logger)

	router := setupRouter(handler, deps.Verifier, metrics, registry, config, logger)

	return &App{
		Router:   router,
		Registry: registry,
	}, nil
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	verifier firebase.TokenVerifier,
	metrics *middleware.Metrics,
	registry *prometheus.Registry,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(metrics.Handler)
	r.Use(middleware.CORS(config.CORS.AllowedOrigins, logger))

	auth := middleware.Authenticate(verifier, logger)

	// Apply routes
	wireCatalog(r, handler.Catalog)
	wireReview(r, handler.Review, auth)
	wirePost(r, handler.Post, auth)

	r.Get("/", handler.Health.Root)
	r.Get("/health", handler.Health.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}
