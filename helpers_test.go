package bibhtml

import (
	"errors"
	"sync"
	"testing"
)

const testBib = `@article{smith2020,
  author  = {Smith, John and Doe, Jane},
  title   = {Deep Learning for Cats},
  journal = {Journal of Felines},
  year    = {2020},
  doi     = {10.1234/cats.2020},
  topic   = {ml},
  code    = {https://github.com/smith/cats}
}

@book{brown2018,
  author    = {Brown, Alice},
  title     = {Graphs \& Trees},
  publisher = {Acme Press},
  year      = {2018},
  topic     = {theory}
}

@misc{notes,
  title = {Untitled Notes},
  url   = {https://example.org/notes},
  topic = {ml}
}
`

// titleStyle renders only the title, which keeps expected output short.
const titleStyle = `{{.Title}}`

func newTestBibliography(t *testing.T, opts ...Option) *Bibliography {
	t.Helper()

	opts = append([]Option{WithText(testBib), WithStyle(titleStyle), WithFields("topic", "code")}, opts...)
	b, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return b
}

func mustGet(t *testing.T, b *Bibliography, key string) *Entry {
	t.Helper()

	e, ok := b.Get(key)
	if !ok {
		t.Fatalf("Get(%q) not found", key)
	}
	return e
}

func keys(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key()
	}
	return out
}

// countingEngine wraps the built-in engine, counting batch renders and
// optionally dropping results from them.
type countingEngine struct {
	Engine

	mu      sync.Mutex
	batches int
	drop    int
	fail    bool
}

var errEngineFailed = errors.New("engine failed")

func (c *countingEngine) RenderBatch(recs []Record, style string) ([]Rendered, error) {
	c.mu.Lock()
	c.batches++
	c.mu.Unlock()

	if c.fail {
		return nil, errEngineFailed
	}
	out, err := c.Engine.RenderBatch(recs, style)
	if err != nil {
		return nil, err
	}
	return out[:len(out)-c.drop], nil
}

func (c *countingEngine) batchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batches
}
