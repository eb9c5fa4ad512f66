package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	app    *app.App
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(a *app.App, log *slog.Logger) *Server {
	s := &Server{
		app:    a,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestMetrics(s.app.Metrics))
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/exercises", s.handleListExercises)
		r.Route("/exercises/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetExercise)
			r.Get("/sets", s.handleListSets)
			r.Post("/sets", s.handleAddSet)
			r.Get("/records", s.handlePersonalRecords)
			r.Get("/last-session", s.handleLastSession)
			r.Get("/history", s.handleHistory)
		})
		r.Delete("/sets/{id}", s.handleRemoveSet)

		r.Get("/favorites", s.handleListFavorites)
		r.Put("/favorites/{id}", s.handleAddFavorite)
		r.Delete("/favorites/{id}", s.handleRemoveFavorite)

		r.Delete("/data", s.handleReset)
	})

	s.router.Handle("/metrics", promhttp.HandlerFor(s.app.Registry, promhttp.HandlerOpts{}))
}
