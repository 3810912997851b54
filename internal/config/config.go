package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Upload limits
	MaxUploadBytes int64

	// Artifact store
	ArtifactTTL   time.Duration
	SweepInterval time.Duration

	// Graph construction
	RelationshipBudget int
	MinSharedTerms     int
	KeepRedundant      bool

	// Rendering
	DefaultTheme string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 16777216), // 16MB

		ArtifactTTL:   envDuration("ARTIFACT_TTL", 1*time.Hour),
		SweepInterval: envDuration("SWEEP_INTERVAL", 5*time.Minute),

		RelationshipBudget: envInt("RELATIONSHIP_BUDGET", 3),
		MinSharedTerms:     envInt("MIN_SHARED_TERMS", 3),
		KeepRedundant:      envBool("KEEP_REDUNDANT", false),

		DefaultTheme: envOr("DEFAULT_THEME", "light"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 16777216
	}
	if cfg.ArtifactTTL <= 0 {
		cfg.ArtifactTTL = 1 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 5 * time.Minute
	}
	if cfg.RelationshipBudget <= 0 {
		cfg.RelationshipBudget = 3
	}
	if cfg.MinSharedTerms <= 0 {
		cfg.MinSharedTerms = 3
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.DefaultTheme {
	case "light", "dark":
	default:
		return fmt.Errorf("DEFAULT_THEME must be light or dark, got %q", c.DefaultTheme)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
