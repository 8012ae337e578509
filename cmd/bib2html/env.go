package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/alnah/go-bibhtml"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// NewPool creates the browser pool used for PDF export.
	NewPool func(size int, timeout time.Duration) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newRendererPool,
	}
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	warningLabel = color.New(color.FgYellow).SprintFunc()
	successLabel = color.New(color.FgGreen).SprintFunc()
)

// warnf prints a yellow warning line to stderr.
func (e *Environment) warnf(format string, args ...any) {
	fmt.Fprintf(e.Stderr, "%s %s\n", warningLabel("warning:"), fmt.Sprintf(format, args...))
}

// PDFPrinter prints an HTML document to PDF.
type PDFPrinter interface {
	RenderPDF(ctx context.Context, document string, opts bibhtml.PDFOptions) ([]byte, error)
}

// Compile-time interface implementation check.
var _ PDFPrinter = (*bibhtml.PDFRenderer)(nil)

// Pool abstracts renderer pool operations for testability.
type Pool interface {
	Acquire() PDFPrinter
	Release(PDFPrinter)
	Size() int
	Close() error
}

// poolAdapter exposes a bibhtml.RendererPool as a Pool.
type poolAdapter struct {
	pool *bibhtml.RendererPool
}

func newRendererPool(size int, timeout time.Duration) Pool {
	return &poolAdapter{pool: bibhtml.NewRendererPool(size, bibhtml.WithPDFTimeout(timeout))}
}

func (a *poolAdapter) Acquire() PDFPrinter { return a.pool.Acquire() }

// Release panics when given a printer the pool did not hand out.
func (a *poolAdapter) Release(p PDFPrinter) {
	r, ok := p.(*bibhtml.PDFRenderer)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", p))
	}
	a.pool.Release(r)
}

func (a *poolAdapter) Size() int { return a.pool.Size() }

func (a *poolAdapter) Close() error { return a.pool.Close() }
