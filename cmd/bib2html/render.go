package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-bibhtml"
	"github.com/alnah/go-bibhtml/internal/config"
	"github.com/alnah/go-bibhtml/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidExtension   = errors.New("file must have a .bib extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidFlag        = errors.New("invalid flag value")
	ErrRenderFailed       = errors.New("some inputs failed to render")
)

// stdoutPath selects standard output as the destination.
const stdoutPath = "-"

// renderParams groups values shared by every file of a batch.
type renderParams struct {
	cfg       *config.Config
	engine    bibhtml.Engine
	fields    []string
	format    bibhtml.FormatOptions
	document  bibhtml.DocumentOptions
	pdf       bibhtml.PDFOptions
	exportPDF bool
	page      bool // standalone page or PDF
}

// runRender orchestrates rendering of every input.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	setMaxProcs(flags.common.verbose, env)
	warnUnknownEnvVars(env)

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(cmp.Or(flags.common.config, envCfg.ConfigPath))
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(positional) == 0 {
		return ErrNoInput
	}
	outputDir := cmp.Or(flags.output, cfg.Output.DefaultDir)
	files, err := discoverAll(positional, outputDir, outputExtension(cfg))
	if err != nil {
		return err
	}
	if outputDir == stdoutPath && (len(files) > 1 || cfg.PDF.Enabled) {
		return fmt.Errorf("%w: --output - needs a single input and HTML output", ErrInvalidFlag)
	}

	params, err := buildParams(cfg)
	if err != nil {
		return err
	}

	workers := cmp.Or(flags.workers, envCfg.Workers)
	var pool Pool
	if params.exportPDF {
		size := min(bibhtml.ResolvePoolSize(workers), len(files))
		timeout := cmp.Or(cfg.PDFTimeout(), bibhtml.DefaultPDFTimeout)
		if flags.common.verbose {
			fmt.Fprintf(env.Stderr, "Pool size: %d\n", size)
		}
		pool = env.NewPool(size, timeout)
		defer func() { _ = pool.Close() }()
	}

	start := time.Now()
	results := renderBatch(ctx, files, params, pool, bibhtml.ResolvePoolSize(workers), env)
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Done in %v\n", time.Since(start).Round(time.Millisecond))
	}

	if failed > 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		return fmt.Errorf("%w: %d of %d", ErrRenderFailed, failed, len(results))
	}
	return nil
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota, logging only
// when verbose.
func setMaxProcs(verbose bool, env *Environment) {
	logger := func(string, ...any) {}
	if verbose {
		logger = func(format string, args ...any) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}
	}
	// Only fails for an invalid GOMAXPROCS env var; runtime defaults apply then.
	_, _ = maxprocs.Set(maxprocs.Logger(logger))
}

// loadConfig loads a config by name or path; empty means defaults.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set flags on top of the config (CLI wins).
func mergeFlags(flags *renderFlags, cfg *config.Config) error {
	sel, format, doc, pdf := flags.selection, flags.format, flags.document, flags.pdf

	if flags.timeout != "" {
		if d, err := time.ParseDuration(flags.timeout); err != nil || d <= 0 {
			return fmt.Errorf("%w: --timeout %q", ErrInvalidFlag, flags.timeout)
		}
		cfg.PDF.Timeout = flags.timeout
	}

	if len(sel.fields) > 0 {
		cfg.Fields = sel.fields
	}
	if len(sel.filter) > 0 {
		pairs, err := parsePairs("filter", sel.filter, false)
		if err != nil {
			return err
		}
		cfg.Filter = make(map[string]string, len(pairs))
		for k, v := range pairs {
			cfg.Filter[k] = v.(string)
		}
	}
	if sel.sortBy != "" {
		cfg.Sort.By = sel.sortBy
	}
	if sel.order != "" {
		cfg.Sort.Order = sel.order
	}

	if format.style != "" {
		cfg.Style = format.style
	}
	switch {
	case format.noTitleLinks:
		cfg.TitleLinks = []string{}
	case len(format.titleLinks) > 0:
		cfg.TitleLinks = format.titleLinks
	}
	if format.list != "" {
		cfg.List = format.list
	}
	if len(format.attrs) > 0 {
		attrs, err := parsePairs("attr", format.attrs, true)
		if err != nil {
			return err
		}
		if cfg.Attributes == nil {
			cfg.Attributes = make(map[string]any, len(attrs))
		}
		maps.Copy(cfg.Attributes, attrs)
	}
	if format.noLinkify {
		off := false
		cfg.Linkify = &off
	}
	if format.assetPath != "" {
		cfg.Assets.BasePath = format.assetPath
	}

	if doc.standalone {
		cfg.Document.Standalone = true
	}
	if doc.title != "" {
		cfg.Document.Title = doc.title
	}
	if doc.intro != "" {
		cfg.Document.Intro = doc.intro
	}
	if doc.theme != "" {
		cfg.Document.Theme = doc.theme
	}
	if doc.lang != "" {
		cfg.Document.Lang = doc.lang
	}
	if doc.css != "" {
		cfg.Document.CSS = doc.css
	}

	if pdf.enabled {
		cfg.PDF.Enabled = true
	}
	if pdf.pageSize != "" {
		cfg.PDF.PageSize = pdf.pageSize
	}
	if pdf.landscape {
		cfg.PDF.Landscape = true
	}
	return nil
}

// buildParams converts the merged config to library options.
func buildParams(cfg *config.Config) (*renderParams, error) {
	var css string
	if cfg.Document.CSS != "" {
		var err error
		if css, err = fileutil.ReadSource(cfg.Document.CSS); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
	}

	badges := make([]bibhtml.Badge, 0, len(cfg.Badges))
	for _, b := range cfg.Badges {
		match, err := b.CompileMatch()
		if err != nil {
			return nil, err
		}
		badges = append(badges, bibhtml.Badge{Field: b.Field, Label: b.Label, URL: b.URL, Match: match, Class: b.Class})
	}

	format := bibhtml.FormatOptions{
		TitleLinks:     cfg.TitleLinks,
		Badges:         badges,
		List:           bibhtml.ListKind(cfg.List),
		Attributes:     cfg.Attributes,
		DisableLinkify: !cfg.LinkifyEnabled(),
	}

	return &renderParams{
		cfg:    cfg,
		engine: bibhtml.NewEngine(),
		fields: declaredFields(cfg),
		format: format,
		document: bibhtml.DocumentOptions{
			Format: format,
			Title:  cfg.Document.Title,
			Intro:  cfg.Document.Intro,
			Theme:  cfg.Document.Theme,
			CSS:    css,
			Lang:   cfg.Document.Lang,
		},
		pdf:       bibhtml.PDFOptions{PageSize: cfg.PDF.PageSize, Landscape: cfg.PDF.Landscape},
		exportPDF: cfg.PDF.Enabled,
		page:      cfg.Document.Standalone || cfg.PDF.Enabled,
	}, nil
}

// declaredFields adds filter and sort keys to the configured fields, since
// both operate on preserved fields only.
func declaredFields(cfg *config.Config) []string {
	fields := slices.Clone(cfg.Fields)
	for _, k := range slices.Sorted(maps.Keys(cfg.Filter)) {
		fields = append(fields, k)
	}
	if cfg.Sort.By != "" && cfg.Sort.By != bibhtml.SortByYear {
		fields = append(fields, cfg.Sort.By)
	}
	return fields
}

// outputExtension returns the file extension for rendered output.
func outputExtension(cfg *config.Config) string {
	if cfg.PDF.Enabled {
		return ".pdf"
	}
	return ".html"
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > bibhtml.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, bibhtml.MaxPoolSize)
	}
	return nil
}
