package bibhtml

import "github.com/alnah/go-bibhtml/internal/engine"

// Engine parses BibTeX and formats citations. The default implementation
// renders html/template styles; callers may supply their own with WithEngine.
//
// RenderOne and RenderBatch must wrap each entry in one container element
// carrying the class "csl-entry". RenderBatch must return one result per
// record, in input order.
type Engine interface {
	ParseRaw(source string) ([]RawRecord, error)
	ParseNormalized(source string) ([]Record, error)
	RenderOne(rec Record, style string) (string, error)
	RenderBatch(recs []Record, style string) ([]Rendered, error)
	StyleExists(name string) bool
	RegisterStyle(name, text string) error
}

// Engine data types.
type (
	Record    = engine.Record
	RawRecord = engine.RawRecord
	Rendered  = engine.Rendered
	Name      = engine.Name
	Date      = engine.Date
)

// NewEngine returns the built-in template engine with no styles registered.
func NewEngine() Engine {
	return engine.New()
}

// NewRecord builds a normalized record, for Engine implementations.
func NewRecord(id, typ, title string, issued *Date, fields map[string]string) Record {
	return engine.NewRecord(id, typ, title, issued, fields)
}

// Compile-time interface check.
var _ Engine = (*engine.Engine)(nil)
