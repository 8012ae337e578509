package engine

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// EntryClass is the class of the container wrapped around each rendered entry.
const EntryClass = "csl-entry"

// Rendered is one entry of a batch render.
type Rendered struct {
	ID   string
	HTML string
}

// Engine parses BibTeX and renders records with registered styles.
// It is safe for concurrent use.
type Engine struct {
	mu     sync.RWMutex
	styles map[string]*template.Template
}

// New creates an Engine with no registered styles.
func New() *Engine {
	return &Engine{styles: make(map[string]*template.Template)}
}

// ContentName derives a registration name from style text.
// Identical text always yields the same name; different text never collides.
func ContentName(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "inline-" + hex.EncodeToString(sum[:])
}

// StyleExists reports whether a style is registered under name.
func (e *Engine) StyleExists(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.styles[name]
	return ok
}

// RegisterStyle parses text as a style template and registers it under name,
// replacing any previous style with that name.
func (e *Engine) RegisterStyle(name, text string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty style name", ErrStyleParse)
	}

	tmpl, err := template.New(name).Funcs(styleFuncs).Parse(text)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStyleParse, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.styles[name] = tmpl
	return nil
}

// Styles returns the registered style names.
func (e *Engine) Styles() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.styles))
	for name := range e.styles {
		names = append(names, name)
	}
	return names
}

func (e *Engine) style(name string) (*template.Template, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	tmpl, ok := e.styles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return tmpl, nil
}

// RenderOne renders a single record as entry number 1.
func (e *Engine) RenderOne(rec Record, style string) (string, error) {
	tmpl, err := e.style(style)
	if err != nil {
		return "", err
	}
	return renderEntry(tmpl, rec, 1)
}

// RenderBatch renders records in order, numbering them from 1.
func (e *Engine) RenderBatch(recs []Record, style string) ([]Rendered, error) {
	tmpl, err := e.style(style)
	if err != nil {
		return nil, err
	}

	out := make([]Rendered, 0, len(recs))
	for i, rec := range recs {
		html, err := renderEntry(tmpl, rec, i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, Rendered{ID: rec.ID, HTML: html})
	}
	return out, nil
}

func renderEntry(tmpl *template.Template, rec Record, index int) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(`<div class="` + EntryClass + `">`)
	if err := tmpl.Execute(&buf, newEntryView(rec, index)); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, rec.ID, err)
	}
	buf.WriteString("</div>")
	return buf.String(), nil
}
