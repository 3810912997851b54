package api

import (
	"log/slog"
	"net/http"

	"github.com/TTAWDTT/ToGraph/internal/config"
	"github.com/TTAWDTT/ToGraph/internal/convert"
	"github.com/TTAWDTT/ToGraph/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the web shell: upload a document, get back
// an interactive knowledge graph.
type Server struct {
	router  chi.Router
	store   *store.Store
	timings *convert.Timings
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(artifacts *store.Store, timings *convert.Timings, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:   artifacts,
		timings: timings,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)

	r.Post("/convert", s.handleConvert)
	r.Get("/view/{fileID}", s.handleView)
	r.Get("/download/{fileID}", s.handleDownload)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
