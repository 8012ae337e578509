package main

// Notes:
// - mergeFlags: we test that set flags override config and unset flags
//   leave it alone.
// - buildParams: we test option conversion and CSS file errors.
// - runRender end to end is covered in main_test.go through runMain.

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alnah/go-bibhtml"
	"github.com/alnah/go-bibhtml/internal/config"
)

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI overrides config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style = "apa"
		cfg.Attributes = map[string]any{"id": "pubs"}
		flags := &renderFlags{
			timeout:   "45s",
			selection: selectionFlags{fields: []string{"topic"}, filter: []string{"topic=ml"}, sortBy: "topic", order: "asc"},
			format:    formatFlags{style: "ieee", list: "ul", attrs: []string{"reversed"}, noLinkify: true, assetPath: "/assets"},
			document:  documentFlags{standalone: true, title: "Papers", theme: "none", lang: "fr", css: "extra.css"},
			pdf:       pdfFlags{enabled: true, pageSize: "a4", landscape: true},
		}

		if err := mergeFlags(flags, cfg); err != nil {
			t.Fatalf("mergeFlags() error: %v", err)
		}

		if cfg.Style != "ieee" {
			t.Errorf("Style = %q, want ieee", cfg.Style)
		}
		if cfg.PDF.Timeout != "45s" {
			t.Errorf("PDF.Timeout = %q, want 45s", cfg.PDF.Timeout)
		}
		if cfg.Filter["topic"] != "ml" {
			t.Errorf("Filter = %v, want topic=ml", cfg.Filter)
		}
		if cfg.Sort.By != "topic" || cfg.Sort.Order != "asc" {
			t.Errorf("Sort = %+v, want topic asc", cfg.Sort)
		}
		if cfg.List != "ul" {
			t.Errorf("List = %q, want ul", cfg.List)
		}
		if cfg.Attributes["id"] != "pubs" || cfg.Attributes["reversed"] != true {
			t.Errorf("Attributes = %v, want id=pubs and reversed", cfg.Attributes)
		}
		if cfg.LinkifyEnabled() {
			t.Error("LinkifyEnabled() = true, want false")
		}
		if cfg.Assets.BasePath != "/assets" {
			t.Errorf("Assets.BasePath = %q, want /assets", cfg.Assets.BasePath)
		}
		if !cfg.Document.Standalone || cfg.Document.Theme != "none" || cfg.Document.Lang != "fr" || cfg.Document.CSS != "extra.css" {
			t.Errorf("Document = %+v, want standalone with theme none, lang fr and extra.css", cfg.Document)
		}
		if !cfg.PDF.Enabled || cfg.PDF.PageSize != "a4" || !cfg.PDF.Landscape {
			t.Errorf("PDF = %+v, want enabled a4 landscape", cfg.PDF)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style = "harvard"
		cfg.TitleLinks = []string{"url"}

		if err := mergeFlags(&renderFlags{}, cfg); err != nil {
			t.Fatalf("mergeFlags() error: %v", err)
		}
		if cfg.Style != "harvard" {
			t.Errorf("Style = %q, want harvard", cfg.Style)
		}
		if !slices.Equal(cfg.TitleLinks, []string{"url"}) {
			t.Errorf("TitleLinks = %v, want [url]", cfg.TitleLinks)
		}
	})

	t.Run("no title links", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		flags := &renderFlags{format: formatFlags{noTitleLinks: true, titleLinks: []string{"doi"}}}

		if err := mergeFlags(flags, cfg); err != nil {
			t.Fatalf("mergeFlags() error: %v", err)
		}
		if cfg.TitleLinks == nil || len(cfg.TitleLinks) != 0 {
			t.Errorf("TitleLinks = %#v, want empty non-nil slice", cfg.TitleLinks)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()

		for _, flags := range []*renderFlags{
			{timeout: "soon"},
			{timeout: "-1s"},
			{selection: selectionFlags{filter: []string{"topic"}}},
			{format: formatFlags{attrs: []string{"=x"}}},
		} {
			if err := mergeFlags(flags, config.DefaultConfig()); !errors.Is(err, ErrInvalidFlag) {
				t.Errorf("mergeFlags(%+v) error = %v, want ErrInvalidFlag", flags, err)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildParams - Config to library options
// ---------------------------------------------------------------------------

func TestBuildParams(t *testing.T) {
	t.Parallel()

	t.Run("converts options", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"extra.css": "body{color:red}"})
		cfg := config.DefaultConfig()
		cfg.List = "ul"
		cfg.Badges = []config.Badge{{Field: "code", Label: "Code", URL: "{value}", Match: "^https://"}}
		cfg.Document.Title = "Papers"
		cfg.Document.CSS = filepath.Join(dir, "extra.css")
		cfg.PDF.Enabled = true
		cfg.PDF.PageSize = "legal"

		params, err := buildParams(cfg)
		if err != nil {
			t.Fatalf("buildParams() error: %v", err)
		}

		if params.format.List != bibhtml.ListUnordered {
			t.Errorf("format.List = %q, want ul", params.format.List)
		}
		if len(params.format.Badges) != 1 || params.format.Badges[0].Match == nil {
			t.Errorf("format.Badges = %+v, want one badge with a compiled match", params.format.Badges)
		}
		if params.document.Title != "Papers" || params.document.CSS != "body{color:red}" {
			t.Errorf("document = %+v, want title and extra CSS", params.document)
		}
		if params.pdf.PageSize != "legal" {
			t.Errorf("pdf.PageSize = %q, want legal", params.pdf.PageSize)
		}
		if !params.exportPDF || !params.page {
			t.Errorf("exportPDF = %v, page = %v, want both true", params.exportPDF, params.page)
		}
		if params.engine == nil {
			t.Error("engine = nil, want shared engine")
		}
	})

	t.Run("fragment by default", func(t *testing.T) {
		t.Parallel()

		params, err := buildParams(config.DefaultConfig())
		if err != nil {
			t.Fatalf("buildParams() error: %v", err)
		}
		if params.page || params.exportPDF {
			t.Errorf("page = %v, exportPDF = %v, want fragment output", params.page, params.exportPDF)
		}
		if params.format.DisableLinkify {
			t.Error("DisableLinkify = true, want false")
		}
	})

	t.Run("missing CSS file", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Document.CSS = filepath.Join(t.TempDir(), "missing.css")

		if _, err := buildParams(cfg); !errors.Is(err, ErrReadCSS) {
			t.Errorf("buildParams() error = %v, want ErrReadCSS", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestDeclaredFields - Filter and sort keys are preserved
// ---------------------------------------------------------------------------

func TestDeclaredFields(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Fields = []string{"code"}
	cfg.Filter = map[string]string{"venue": "x", "topic": "ml"}
	cfg.Sort.By = "rank"

	got := declaredFields(cfg)
	want := []string{"code", "topic", "venue", "rank"}
	if !slices.Equal(got, want) {
		t.Errorf("declaredFields() = %v, want %v", got, want)
	}

	cfg.Sort.By = bibhtml.SortByYear
	if got := declaredFields(cfg); slices.Contains(got, "year") {
		t.Errorf("declaredFields() = %v, want year left out", got)
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Worker bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{bibhtml.MaxPoolSize, false},
		{-1, true},
		{bibhtml.MaxPoolSize + 1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if tt.wantErr && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("validateWorkers(%d) unexpected error: %v", tt.n, err)
		}
	}
}

func TestOutputExtension(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if got := outputExtension(cfg); got != ".html" {
		t.Errorf("outputExtension() = %q, want .html", got)
	}
	cfg.PDF.Enabled = true
	if got := outputExtension(cfg); got != ".pdf" {
		t.Errorf("outputExtension() = %q, want .pdf", got)
	}
}
