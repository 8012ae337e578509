package bibhtml

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one renderer is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// RendererPool hands out PDFRenderers for parallel export.
// Each renderer owns its browser. Renderers are created on first acquire.
type RendererPool struct {
	size      int
	opts      []PDFOption
	renderers []*PDFRenderer
	sem       chan *PDFRenderer
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewRendererPool creates a pool of up to n renderers built with opts.
func NewRendererPool(n int, opts ...PDFOption) *RendererPool {
	if n < 1 {
		n = 1
	}

	return &RendererPool{
		size:      n,
		opts:      opts,
		renderers: make([]*PDFRenderer, 0, n),
		sem:       make(chan *PDFRenderer, n),
	}
}

// Acquire returns an idle renderer, creating one while under capacity.
// Blocks when all renderers are in use.
func (p *RendererPool) Acquire() *PDFRenderer {
	select {
	case r := <-p.sem:
		return r
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		r := NewPDFRenderer(p.opts...)

		p.mu.Lock()
		p.renderers = append(p.renderers, r)
		p.mu.Unlock()

		return r
	}
	p.mu.Unlock()

	return <-p.sem
}

// Release returns a renderer to the pool. Releasing after Close is a no-op.
// The send happens under the lock so Close cannot close sem in between;
// sem holds every renderer the pool can create, so it never blocks.
func (p *RendererPool) Release(r *PDFRenderer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	select {
	case p.sem <- r:
	default:
	}
}

// Close closes every renderer created so far.
func (p *RendererPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	renderers := p.renderers
	p.mu.Unlock()

	var errs []error
	for _, r := range renderers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// ResolvePoolSize returns workers when positive, otherwise half of
// GOMAXPROCS clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0)/cpuDivisor, MinPoolSize), MaxPoolSize)
}
