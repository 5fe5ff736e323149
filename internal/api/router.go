package api

import (
	"net/http"

	"storage-search-service/internal/api/handlers"
	"storage-search-service/internal/platform/metrics"
	"storage-search-service/internal/ports"
	"storage-search-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Options carries the tunables the router passes down to handlers and
// middleware.
type Options struct {
	Fit services.FitOptions
	// Requests per second allowed on the search routes. Zero disables limiting.
	RateLimit   float64
	RateBurst   int
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.ListingRepository, store ports.ResultStore, opts Options) http.Handler {
	metrics.Register()

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware)
	r.Use(middleware.Recoverer)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	searchHandler := &handlers.SearchHandler{Repo: repo, Results: store, Options: opts.Fit}
	listingHandler := &handlers.ListingHandler{Repo: repo}
	resultHandler := &handlers.ResultHandler{Store: store}

	r.Get("/", handlers.Hello(opts.Fit))
	r.Get("/health", handlers.Health)
	r.Get("/listings", listingHandler.List)
	r.Get("/results/latest", resultHandler.Latest)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		if opts.RateLimit > 0 {
			burst := opts.RateBurst
			if burst < 1 {
				burst = 1
			}
			r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(opts.RateLimit), burst)))
		}
		r.Post("/", searchHandler.Search)
		r.Post("/search", searchHandler.Search)
	})

	return r
}
