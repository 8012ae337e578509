package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-bibhtml"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// RenderResult holds the outcome of a single file.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Entries    int
	Err        error
	Duration   time.Duration
}

// renderBatch renders files concurrently. PDF export acquires one printer
// per worker from pool; HTML output needs no pool.
func renderBatch(ctx context.Context, files []FileToRender, params *renderParams, pool Pool, workers int, env *Environment) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))
	if pool != nil {
		concurrency = min(pool.Size(), len(files))
	}

	results := make([]RenderResult, len(files))
	jobs := make(chan int, len(files))
	var stdout sync.Mutex

	var wg sync.WaitGroup
	for range concurrency {
		wg.Go(func() {
			var printer PDFPrinter
			if pool != nil {
				printer = pool.Acquire()
				defer pool.Release(printer)
			}

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = renderFile(ctx, files[idx], params, printer, env, &stdout)
			}
		})
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile renders a single BibTeX file and writes the result.
func renderFile(ctx context.Context, f FileToRender, params *renderParams, printer PDFPrinter, env *Environment, stdout *sync.Mutex) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	fail := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	cfg := params.cfg
	bib, err := bibhtml.New(
		bibhtml.WithFile(f.InputPath),
		bibhtml.WithStyle(cfg.Style),
		bibhtml.WithFields(params.fields...),
		bibhtml.WithEngine(params.engine),
		bibhtml.WithAssetPath(cfg.Assets.BasePath),
	)
	if err != nil {
		return fail(err)
	}

	entries, err := bibhtml.Sort(bib.Filter(cfg.Filter), bibhtml.SortOptions{By: cfg.Sort.By, Order: cfg.Sort.Order})
	if err != nil {
		return fail(err)
	}
	result.Entries = len(entries)

	var out []byte
	switch {
	case params.page:
		doc, err := bib.Document(ctx, entries, params.document)
		if err != nil {
			return fail(err)
		}
		out = []byte(doc)
		if params.exportPDF {
			if out, err = printer.RenderPDF(ctx, doc, params.pdf); err != nil {
				return fail(err)
			}
		}
	default:
		html, err := bib.FormatHTML(entries, params.format)
		if err != nil {
			return fail(err)
		}
		out = []byte(html + "\n")
	}

	if f.OutputPath == stdoutPath {
		stdout.Lock()
		defer stdout.Unlock()
		if _, err := env.Stdout.Write(out); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
	}
	// #nosec G306 -- rendered pages are meant to be readable
	if err := os.WriteFile(f.OutputPath, out, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed files.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed files.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports each result and returns the failure count.
// Standard output is left alone when it carries the rendered HTML.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "%s %s: %v\n", errorLabel("FAILED"), r.InputPath, r.Err)
			continue
		}
		if quiet || r.OutputPath == stdoutPath {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d entries, %v)\n", r.InputPath, r.OutputPath, r.Entries, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "%s %s\n", successLabel("Created"), r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
	return summary.Failed
}
