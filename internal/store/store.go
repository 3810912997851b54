// Package store keeps rendered graph artifacts on disk for a limited time.
//
// Each conversion gets its own scratch directory holding the upload and the
// rendered HTML. The store hands out opaque ids for the view/download
// routes and removes the directory when the entry expires or the server
// shuts down.
package store

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an artifact stays retrievable.
const DefaultTTL = time.Hour

// Artifact is one stored conversion output.
type Artifact struct {
	ID       string
	Path     string // rendered HTML file
	Dir      string // per-conversion scratch dir, removed with the entry
	Filename string // original upload name
	Created  time.Time
}

// Store is a thread-safe artifact registry with TTL eviction.
type Store struct {
	mu        sync.Mutex
	artifacts map[string]Artifact
	ttl       time.Duration
	log       *slog.Logger
}

// New creates a store whose entries expire after ttl. Zero or negative ttl
// means DefaultTTL.
func New(ttl time.Duration, log *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		artifacts: make(map[string]Artifact),
		ttl:       ttl,
		log:       log,
	}
}

// Put registers an artifact and returns its id.
func (s *Store) Put(path, dir, filename string) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[id] = Artifact{
		ID:       id,
		Path:     path,
		Dir:      dir,
		Filename: filename,
		Created:  time.Now(),
	}
	return id
}

// Get returns the artifact for id. Entries past their TTL are reaped in
// place and reported as missing, even if no sweep has run yet.
func (s *Store) Get(id string) (Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.artifacts[id]
	if !ok {
		return Artifact{}, false
	}
	if time.Since(a.Created) > s.ttl {
		delete(s.artifacts, id)
		s.removeDir(a)
		return Artifact{}, false
	}
	return a, true
}

// Cleanup removes expired artifacts and their scratch dirs, returning how
// many were removed.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	removed := 0
	for id, a := range s.artifacts {
		if now.Sub(a.Created) > s.ttl {
			delete(s.artifacts, id)
			s.removeDir(a)
			removed++
		}
	}
	return removed
}

// Close removes every artifact regardless of age. Used at shutdown.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.artifacts {
		delete(s.artifacts, id)
		s.removeDir(a)
	}
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.artifacts)
}

// Sweep runs Cleanup on a ticker until ctx is done.
func (s *Store) Sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 {
				s.log.Info("expired artifacts removed", "count", n)
			}
		}
	}
}

func (s *Store) removeDir(a Artifact) {
	if a.Dir == "" {
		return
	}
	if err := os.RemoveAll(a.Dir); err != nil {
		s.log.Warn("artifact cleanup failed", "dir", a.Dir, "error", err)
	}
}
