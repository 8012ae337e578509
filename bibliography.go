package bibhtml

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/alnah/go-bibhtml/internal/assets"
	"github.com/alnah/go-bibhtml/internal/fileutil"
	"github.com/alnah/go-bibhtml/internal/pipeline"
)

// Bibliography holds the entries of one BibTeX source and formats them
// with one citation style. It is safe for concurrent use after New returns.
type Bibliography struct {
	entries  []*Entry
	byKey    map[string]*Entry
	engine   Engine
	style    string
	assets   *assets.AssetResolver
	readFile func(string) (string, error)
	markdown pipeline.MarkdownRenderer
	css      pipeline.CSSInjector
}

// bibConfig collects option values before construction.
type bibConfig struct {
	text      string
	file      string
	style     string
	fields    []string
	engine    Engine
	readFile  func(string) (string, error)
	assetPath string
}

// Option configures a Bibliography.
type Option func(*bibConfig)

// WithText uses BibTeX source text. Replaces an earlier WithFile.
func WithText(source string) Option {
	return func(c *bibConfig) {
		c.text = source
		c.file = ""
	}
}

// WithFile reads BibTeX source from path. Replaces an earlier WithText.
func WithFile(path string) Option {
	return func(c *bibConfig) {
		c.file = path
		c.text = ""
	}
}

// WithStyle selects the citation style: a registered or built-in name,
// a template file path, or inline template text. Default "apa".
func WithStyle(selector string) Option {
	return func(c *bibConfig) {
		c.style = selector
	}
}

// WithFields declares raw fields to preserve on each entry. Names are
// case-insensitive and stored lower-cased, matching raw field names.
func WithFields(names ...string) Option {
	return func(c *bibConfig) {
		for _, n := range names {
			n = strings.ToLower(strings.TrimSpace(n))
			if n != "" && !slices.Contains(c.fields, n) {
				c.fields = append(c.fields, n)
			}
		}
	}
}

// WithEngine replaces the built-in formatting engine.
func WithEngine(e Engine) Option {
	return func(c *bibConfig) {
		c.engine = e
	}
}

// WithFileReader replaces the function used to read source and style files.
func WithFileReader(read func(path string) (string, error)) Option {
	return func(c *bibConfig) {
		c.readFile = read
	}
}

// WithAssetPath adds a directory of custom styles, themes and templates
// that take precedence over the built-in ones.
func WithAssetPath(dir string) Option {
	return func(c *bibConfig) {
		c.assetPath = dir
	}
}

// New parses the source and builds the entries.
// Returns ErrNoSource without WithText or WithFile, ErrUnknownStyle when the
// style selector cannot be resolved, and ErrDuplicateKey when two entries
// share a citation key.
func New(opts ...Option) (*Bibliography, error) {
	cfg := bibConfig{readFile: fileutil.ReadSource}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.engine == nil {
		cfg.engine = NewEngine()
	}

	resolver, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	b := &Bibliography{
		engine:   cfg.engine,
		assets:   resolver,
		readFile: cfg.readFile,
		markdown: pipeline.NewIntroRenderer(),
		css:      &pipeline.CSSInjection{},
	}

	source, err := b.source(cfg)
	if err != nil {
		return nil, err
	}

	if b.style, err = b.resolveStyle(cfg.style); err != nil {
		return nil, err
	}

	raws, err := b.engine.ParseRaw(source)
	if err != nil {
		return nil, fmt.Errorf("parsing raw fields: %w", err)
	}
	recs, err := b.engine.ParseNormalized(source)
	if err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}

	if b.entries, err = reconcile(raws, recs, cfg.fields); err != nil {
		return nil, err
	}
	b.byKey = make(map[string]*Entry, len(b.entries))
	for _, e := range b.entries {
		b.byKey[e.key] = e
	}
	return b, nil
}

func (b *Bibliography) source(cfg bibConfig) (string, error) {
	switch {
	case cfg.text != "":
		return cfg.text, nil
	case cfg.file != "":
		text, err := b.readFile(cfg.file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", cfg.file, err)
		}
		return text, nil
	}
	return "", ErrNoSource
}

// Style returns the registered name of the resolved citation style.
func (b *Bibliography) Style() string { return b.style }

// Entries returns all entries in source order.
func (b *Bibliography) Entries() []*Entry {
	return slices.Clone(b.entries)
}

// Len returns the number of entries.
func (b *Bibliography) Len() int { return len(b.entries) }

// Get returns the entry with the given citation key.
func (b *Bibliography) Get(key string) (*Entry, bool) {
	e, ok := b.byKey[key]
	return e, ok
}

// Filter returns the entries whose custom fields equal every criterion.
// Field names are case-insensitive, values exact. Empty criteria return
// all entries.
func (b *Bibliography) Filter(criteria map[string]string) []*Entry {
	out := make([]*Entry, 0, len(b.entries))
	for _, e := range b.entries {
		if matches(e, criteria) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e *Entry, criteria map[string]string) bool {
	for field, want := range criteria {
		if got, ok := e.custom[strings.ToLower(field)]; !ok || got != want {
			return false
		}
	}
	return true
}

// Sort orders.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortByYear is the default sort key.
const SortByYear = "year"

// SortOptions selects the sort key and direction. By defaults to "year"
// and Order to "desc".
type SortOptions struct {
	By    string
	Order string
}

// Sort returns a sorted copy of entries. "year" compares years (absent
// counts as 0); any other key compares that custom field as a string
// (absent counts as ""). Field names are case-insensitive. Equal keys keep
// their input order in both directions.
func Sort(entries []*Entry, opts SortOptions) ([]*Entry, error) {
	by := strings.ToLower(cmp.Or(opts.By, SortByYear))
	order := cmp.Or(opts.Order, SortDesc)
	if order != SortAsc && order != SortDesc {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortOrder, opts.Order)
	}

	compare := func(a, b *Entry) int {
		if by == SortByYear {
			return cmp.Compare(a.year, b.year)
		}
		return strings.Compare(a.custom[by], b.custom[by])
	}
	if order == SortDesc {
		asc := compare
		compare = func(a, b *Entry) int { return -asc(a, b) }
	}

	out := slices.Clone(entries)
	slices.SortStableFunc(out, compare)
	return out, nil
}
