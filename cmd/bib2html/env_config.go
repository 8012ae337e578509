package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-bibhtml/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // BIB2HTML_CONFIG: config file name or path
	Style      string        // BIB2HTML_STYLE: citation style selector
	Theme      string        // BIB2HTML_THEME: CSS theme name or path
	OutputDir  string        // BIB2HTML_OUTPUT_DIR: default output directory
	AssetPath  string        // BIB2HTML_ASSET_PATH: custom asset directory
	PageSize   string        // BIB2HTML_PAGE_SIZE: letter, a4, legal
	Timeout    time.Duration // BIB2HTML_TIMEOUT: PDF generation timeout
	Workers    int           // BIB2HTML_WORKERS: parallel workers
}

// knownEnvVars lists valid BIB2HTML_* environment variables.
var knownEnvVars = map[string]bool{
	"BIB2HTML_CONFIG":     true,
	"BIB2HTML_STYLE":      true,
	"BIB2HTML_THEME":      true,
	"BIB2HTML_OUTPUT_DIR": true,
	"BIB2HTML_ASSET_PATH": true,
	"BIB2HTML_PAGE_SIZE":  true,
	"BIB2HTML_TIMEOUT":    true,
	"BIB2HTML_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid durations and worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("BIB2HTML_CONFIG"),
		Style:      os.Getenv("BIB2HTML_STYLE"),
		Theme:      os.Getenv("BIB2HTML_THEME"),
		OutputDir:  os.Getenv("BIB2HTML_OUTPUT_DIR"),
		AssetPath:  os.Getenv("BIB2HTML_ASSET_PATH"),
		PageSize:   os.Getenv("BIB2HTML_PAGE_SIZE"),
	}

	if timeout := os.Getenv("BIB2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("BIB2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized BIB2HTML_* variables.
func warnUnknownEnvVars(env *Environment) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "BIB2HTML_") {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			env.warnf("unknown environment variable %s (typo?)", name)
		}
	}
}

// applyEnvConfig fills config values the file left empty.
// Precedence: CLI flags > env vars > config file > defaults
// (flags are applied afterwards by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Style == "" {
		cfg.Style = env.Style
	}
	if env.Theme != "" && cfg.Document.Theme == "" {
		cfg.Document.Theme = env.Theme
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.PageSize != "" && cfg.PDF.PageSize == "" {
		cfg.PDF.PageSize = env.PageSize
	}
	if env.Timeout > 0 && cfg.PDF.Timeout == "" {
		cfg.PDF.Timeout = env.Timeout.String()
	}
}
