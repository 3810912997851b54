package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/TTAWDTT/ToGraph/internal/convert"
	"github.com/TTAWDTT/ToGraph/internal/graph"
	"github.com/TTAWDTT/ToGraph/internal/parser"
	"github.com/TTAWDTT/ToGraph/internal/viz"
)

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	theme, err := s.requestTheme(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	title := r.FormValue("title")
	if title == "" {
		title = "Knowledge Graph"
	}
	keepRedundant := s.cfg.KeepRedundant
	if v := r.FormValue("keep_redundant"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			keepRedundant = b
		}
	}

	// Read file data.
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	started := time.Now()
	res, err := convert.Run(bytes.NewReader(data), filename, convert.Options{
		Graph: graph.Options{
			RelationshipBudget: s.cfg.RelationshipBudget,
			MinSharedTerms:     s.cfg.MinSharedTerms,
			KeepRedundant:      keepRedundant,
		},
		PDFFallback: s.cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		s.log.Error("conversion failed", "filename", filename, "error", err)
		jsonError(w, "conversion failed, please check the document and try again", http.StatusInternalServerError)
		return
	}
	if s.timings != nil {
		s.timings.Record(time.Since(started).Milliseconds())
	}

	page, err := viz.RenderHTML(res.Graph, res.Content, viz.HTMLOptions{Title: title, Theme: theme})
	if err != nil {
		s.log.Error("render failed", "filename", filename, "error", err)
		jsonError(w, "failed to render graph", http.StatusInternalServerError)
		return
	}

	dir, err := os.MkdirTemp("", "tograph-*")
	if err != nil {
		jsonError(w, "failed to store result", http.StatusInternalServerError)
		return
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	outPath := filepath.Join(dir, fmt.Sprintf("graph_%s.html", base))
	if err := os.WriteFile(outPath, page, 0o600); err != nil {
		os.RemoveAll(dir)
		jsonError(w, "failed to store result", http.StatusInternalServerError)
		return
	}

	// Sweep expired artifacts before registering the new one.
	s.store.Cleanup()
	fileID := s.store.Put(outPath, dir, filename)

	stats := res.Stats()
	s.log.Info("document converted",
		"filename", filename,
		"file_id", fileID,
		"nodes", stats.Nodes,
		"edges", stats.Edges,
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"file_id": fileID,
		"stats":   stats,
	})
}

// requestTheme resolves the theme form field, falling back to the
// configured default when absent.
func (s *Server) requestTheme(r *http.Request) (viz.Theme, error) {
	name := r.FormValue("theme")
	if name == "" {
		name = s.cfg.DefaultTheme
	}
	theme, ok := viz.ThemeByName(name)
	if !ok {
		return viz.Theme{}, fmt.Errorf("invalid theme: %s", name)
	}
	return theme, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
