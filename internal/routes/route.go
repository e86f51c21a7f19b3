package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"ambutrack/internal/cache"
	"ambutrack/internal/config"
	"ambutrack/internal/handlers"
	"ambutrack/internal/logger"
	"ambutrack/internal/metrics"
	"ambutrack/internal/services"
	"ambutrack/internal/spatial"
)

// NewRouter wires the service graph explicitly: store and cache are built
// once by the caller and passed in, no global registry.
func NewRouter(store spatial.Store, c cache.Cache, cfg *config.Config, logr *logger.Logger) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// CORS middleware with config
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	proximitySvc := services.NewProximityService(store, c, cfg, logr.Logger)
	ambulanceSvc := services.NewAmbulanceService(store, proximitySvc, logr.Logger)
	hospitalSvc := services.NewHospitalService(store)

	ambulanceHandler := handlers.NewAmbulanceHandler(ambulanceSvc, logr.Logger)
	hospitalHandler := handlers.NewHospitalHandler(hospitalSvc, logr.Logger)
	proximityHandler := handlers.NewProximityHandler(proximitySvc, logr.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("ok"))
		if err != nil {
			return
		}
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/ambulances", func(r chi.Router) {
			r.Post("/", ambulanceHandler.Create)
			r.Get("/", ambulanceHandler.List)
			r.Get("/{id}", ambulanceHandler.Get)
			r.Patch("/{id}/location", ambulanceHandler.UpdateLocation)
			r.Patch("/{id}/status", ambulanceHandler.UpdateStatus)
			r.Patch("/{id}/position", ambulanceHandler.UpdatePosition)
		})

		r.Route("/hospitals", func(r chi.Router) {
			r.Post("/", hospitalHandler.Create)
			r.Get("/", hospitalHandler.List)
			r.Get("/{id}", hospitalHandler.Get)
			r.Get("/{id}/nearest-ambulance", proximityHandler.NearestAmbulance)
		})

		// Same resolver, mounted under /proximity as well.
		r.Get("/proximity/hospitals/{id}/nearest-ambulance", proximityHandler.NearestAmbulance)
	})

	return r
}
