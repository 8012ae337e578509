package main

// Notes:
// - This file holds fixtures and fakes shared by the CLI tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-bibhtml"
)

// sampleBib has two entries with different topics and years.
const sampleBib = `@article{smith2020,
  author  = {Smith, John},
  title   = {Deep Learning for Cats},
  journal = {Journal of Felines},
  year    = {2020},
  doi     = {10.1234/cats.2020},
  topic   = {ml}
}

@book{brown2018,
  author    = {Brown, Alice},
  title     = {Graphs and Trees},
  publisher = {Acme Press},
  year      = {2018},
  topic     = {theory}
}
`

// titleStyle renders only the title.
const titleStyle = `{{.Title}}`

// ---------------------------------------------------------------------------
// Fakes - PDF printer and pool
// ---------------------------------------------------------------------------

type fakePrinter struct {
	mu        sync.Mutex
	documents []string
	err       error
}

func (p *fakePrinter) RenderPDF(_ context.Context, document string, _ bibhtml.PDFOptions) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.documents = append(p.documents, document)
	return []byte("%PDF-1.7 fake"), nil
}

type fakePool struct {
	printer  *fakePrinter
	size     int
	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

func newFakePool(size int) *fakePool {
	return &fakePool{printer: &fakePrinter{}, size: size}
}

func (p *fakePool) Acquire() PDFPrinter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acquired++
	return p.printer
}

func (p *fakePool) Release(PDFPrinter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *fakePool) Size() int { return p.size }

func (p *fakePool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// testEnv returns an environment writing to buffers. NewPool hands out pool.
func testEnv(pool *fakePool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Stdout: stdout,
		Stderr: stderr,
		NewPool: func(size int, _ time.Duration) Pool {
			if pool == nil {
				pool = newFakePool(size)
			}
			return pool
		},
	}
	return env, stdout, stderr
}

// setupTestDir creates a temp directory with the given file structure.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return tempDir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
