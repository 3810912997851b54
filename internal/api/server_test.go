package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/TTAWDTT/ToGraph/internal/config"
	"github.com/TTAWDTT/ToGraph/internal/convert"
	"github.com/TTAWDTT/ToGraph/internal/store"
)

const sampleMarkdown = `# Architecture

The system splits into a parsing layer and a rendering layer.

## Parsing

Documents flow through format detection before structure inference.

# Deployment

The rendering layer ships as a single binary.
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	artifacts := store.New(time.Hour, log)
	t.Cleanup(artifacts.Close)

	cfg := config.Config{
		MaxUploadBytes:     1 << 20,
		RelationshipBudget: 3,
		MinSharedTerms:     3,
		DefaultTheme:       "light",
	}
	return NewServer(artifacts, convert.NewTimings(time.Hour), log, cfg)
}

// postConvert uploads content as filename plus any extra form fields.
func postConvert(t *testing.T, srv *Server, filename, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatal(err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/convert", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

type convertResponse struct {
	Success bool          `json:"success"`
	FileID  string        `json:"file_id"`
	Stats   convert.Stats `json:"stats"`
	Error   string        `json:"error"`
}

func decodeConvert(t *testing.T, rec *httptest.ResponseRecorder) convertResponse {
	t.Helper()
	var resp convertResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestConvertViewDownloadRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	rec := postConvert(t, srv, "design.md", sampleMarkdown, map[string]string{
		"theme": "dark",
		"title": "Design Graph",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("convert status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeConvert(t, rec)
	if !resp.Success || resp.FileID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Stats.Nodes != 3 || resp.Stats.Sections != 2 {
		t.Errorf("stats = %+v, want 3 nodes, 2 sections", resp.Stats)
	}

	// View serves the rendered page inline.
	viewRec := httptest.NewRecorder()
	srv.ServeHTTP(viewRec, httptest.NewRequest(http.MethodGet, "/view/"+resp.FileID, nil))
	if viewRec.Code != http.StatusOK {
		t.Fatalf("view status = %d", viewRec.Code)
	}
	page := viewRec.Body.String()
	if !strings.Contains(page, "vis-network") {
		t.Error("view response is not the rendered graph page")
	}
	if !strings.Contains(page, "<title>Design Graph</title>") {
		t.Error("custom title missing from rendered page")
	}

	// Download serves the same page as an attachment.
	dlRec := httptest.NewRecorder()
	srv.ServeHTTP(dlRec, httptest.NewRequest(http.MethodGet, "/download/"+resp.FileID, nil))
	if dlRec.Code != http.StatusOK {
		t.Fatalf("download status = %d", dlRec.Code)
	}
	if cd := dlRec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("download Content-Disposition = %q", cd)
	}
	if dlRec.Body.String() != page {
		t.Error("download body differs from view body")
	}
}

func TestConvert_MissingFile(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("theme", "light"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/convert", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp := decodeConvert(t, rec); resp.Error == "" {
		t.Error("expected error message in response")
	}
}

func TestConvert_UnsupportedExtension(t *testing.T) {
	srv := newTestServer(t)
	rec := postConvert(t, srv, "tables.csv", "a,b,c", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp := decodeConvert(t, rec); !strings.Contains(resp.Error, "unsupported") {
		t.Errorf("unexpected error: %q", resp.Error)
	}
}

func TestConvert_InvalidTheme(t *testing.T) {
	srv := newTestServer(t)
	rec := postConvert(t, srv, "doc.md", "# A\n", map[string]string{"theme": "sepia"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestConvert_FileTooLarge(t *testing.T) {
	srv := newTestServer(t)
	srv.cfg.MaxUploadBytes = 64

	rec := postConvert(t, srv, "big.md", strings.Repeat("filler text ", 50), nil)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestConvert_KeepRedundantField(t *testing.T) {
	srv := newTestServer(t)
	md := "# Introduction\n\nBody.\n\n# References\n\n[1] Smith.\n"

	rec := postConvert(t, srv, "paper.md", md, nil)
	if got := decodeConvert(t, rec).Stats.Nodes; got != 1 {
		t.Errorf("filtered nodes = %d, want 1", got)
	}

	rec = postConvert(t, srv, "paper.md", md, map[string]string{"keep_redundant": "true"})
	if got := decodeConvert(t, rec).Stats.Nodes; got != 2 {
		t.Errorf("unfiltered nodes = %d, want 2", got)
	}
}

func TestView_UnknownID(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/view/no-such-id", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestStats_TracksConversions(t *testing.T) {
	srv := newTestServer(t)

	statsAt := func() (artifacts int, count int) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("stats status = %d", rec.Code)
		}
		var resp struct {
			Artifacts   int                    `json:"artifacts"`
			Conversions convert.TimingSnapshot `json:"conversions"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode stats: %v", err)
		}
		return resp.Artifacts, resp.Conversions.Count
	}

	if artifacts, count := statsAt(); artifacts != 0 || count != 0 {
		t.Errorf("fresh server stats = %d artifacts, %d conversions", artifacts, count)
	}

	if rec := postConvert(t, srv, "doc.md", sampleMarkdown, nil); rec.Code != http.StatusOK {
		t.Fatalf("convert status = %d", rec.Code)
	}

	if artifacts, count := statsAt(); artifacts != 1 || count != 1 {
		t.Errorf("post-convert stats = %d artifacts, %d conversions", artifacts, count)
	}
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"ToGraph", `name="file"`, `name="theme"`, "/convert"} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{"dir/inner.md", "inner.md"},
		{"", "unnamed"},
		{".", "unnamed"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
