package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"fairhuur/utils"
)

// Server is the HTTP display shell.
type Server struct {
	httpServer *http.Server
	logger     *utils.Logger
}

// NewRouter builds the route table.
func NewRouter(h *Handler, corsOrigins []string, logger *utils.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID, LoggerMiddleware(logger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/submissions", h.CreateSubmission)
		r.Post("/reload", h.Reload)

		r.Group(func(r chi.Router) {
			r.Use(h.requireLoaded)
			r.Get("/listings", h.ListListings)
			r.Get("/listings/{id}", h.GetListing)
			r.Get("/stats", h.GetStats)
			r.Get("/filters", h.GetFilters)
		})
	})

	return r
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, handler http.Handler, logger *utils.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("[http] Listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("[http] Shutting down")
	return s.httpServer.Shutdown(ctx)
}
