package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	artifact, ok := s.store.Get(chi.URLParam(r, "fileID"))
	if !ok {
		jsonError(w, "file not found or expired", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, r, artifact.Path)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	artifact, ok := s.store.Get(chi.URLParam(r, "fileID"))
	if !ok {
		jsonError(w, "file not found or expired", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="knowledge_graph.html"`)
	http.ServeFile(w, r, artifact.Path)
}
