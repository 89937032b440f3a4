package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/ironcycle/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *service.Service
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(svc *service.Service, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		log:    log,
		apiKey: apiKey,
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
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Mutations (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/exercises", s.handleCreateExercise)
		r.Post("/api/v1/plans", s.handleCreatePlan)
		r.Post("/api/v1/mesocycles", s.handleCreateMesocycle)
		r.Post("/api/v1/mesocycles/{id}/complete", s.handleCompleteMesocycle)
		r.Post("/api/v1/mesocycles/{id}/cancel", s.handleCancelMesocycle)
		r.Post("/api/v1/mesocycles/{id}/weeks/{week}/materialize", s.handleMaterializeWeek)
		r.Post("/api/v1/workouts/{id}/skip", s.handleSkipWorkout)
		r.Post("/api/v1/sets/{id}/log", s.handleLogSet)
		r.Post("/api/v1/sets/{id}/unlog", s.handleUnlogSet)
		r.Post("/api/v1/sets/{id}/skip", s.handleSkipSet)
	})

	// Reads (no auth — tsnet handles access in production)
	s.router.Get("/api/v1/mesocycles/active", s.handleActiveMesocycle)
	s.router.Get("/api/v1/mesocycles/{id}/weeks/{week}/targets", s.handleWeekTargets)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/exercises/{id}/history", s.handleExerciseHistory)
}
