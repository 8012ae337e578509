package bibhtml

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire() *PDFRenderer
	Release(*PDFRenderer)
	Size() int
	Close() error
} = (*RendererPool)(nil)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit takes priority", 4, 4},
		{"explicit can exceed max", 20, 20},
		{"zero uses auto calculation", 0, min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
		{"negative uses auto calculation", -1, min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestRendererPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	mock := &mockRenderer{}
	pool := NewRendererPool(2, withRenderer(mock))

	first := pool.Acquire()
	second := pool.Acquire()
	if first == second {
		t.Fatal("Acquire() returned the same renderer twice while both in use")
	}

	acquired := make(chan *PDFRenderer)
	go func() { acquired <- pool.Acquire() }()

	select {
	case <-acquired:
		t.Fatal("Acquire() did not block with all renderers in use")
	case <-time.After(50 * time.Millisecond):
	}

	pool.Release(first)
	select {
	case got := <-acquired:
		if got != first {
			t.Error("blocked Acquire() did not receive the released renderer")
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire() still blocked after Release()")
	}

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if mock.closeCalls != 2 {
		t.Errorf("renderer Close() calls = %d, want 2", mock.closeCalls)
	}
}

func TestRendererPool_Concurrent(t *testing.T) {
	t.Parallel()

	pool := NewRendererPool(3, withRenderer(&mockRenderer{}))
	defer pool.Close()

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			r := pool.Acquire()
			pool.Release(r)
		})
	}
	wg.Wait()

	pool.mu.Lock()
	created := pool.created
	pool.mu.Unlock()
	if created > pool.Size() {
		t.Errorf("created %d renderers, capacity %d", created, pool.Size())
	}
}

func TestRendererPool_CloseTwiceAndReleaseAfterClose(t *testing.T) {
	t.Parallel()

	pool := NewRendererPool(0, withRenderer(&mockRenderer{}))
	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1", pool.Size())
	}

	r := pool.Acquire()
	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	pool.Release(r)
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}

func TestRendererPool_ReleaseRacingClose(t *testing.T) {
	t.Parallel()

	for range 50 {
		pool := NewRendererPool(4, withRenderer(&mockRenderer{}))
		held := make([]*PDFRenderer, pool.Size())
		for i := range held {
			held[i] = pool.Acquire()
		}

		var wg sync.WaitGroup
		for _, r := range held {
			wg.Go(func() { pool.Release(r) })
		}
		wg.Go(func() {
			if err := pool.Close(); err != nil {
				t.Errorf("Close() error: %v", err)
			}
		})
		wg.Wait()
	}
}
