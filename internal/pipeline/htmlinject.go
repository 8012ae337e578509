package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrHeaderRender indicates the page header template failed to execute.
var ErrHeaderRender = errors.New("header template rendering failed")

// CSSInjector adds a stylesheet to a page.
type CSSInjector interface {
	InjectCSS(ctx context.Context, page, css string) string
}

// CSSInjection places a <style> block before </head>, else right after
// <body>, else at the start of the page.
type CSSInjection struct{}

func (s *CSSInjection) InjectCSS(ctx context.Context, page, css string) string {
	if css == "" || ctx.Err() != nil {
		return page
	}
	block := "<style>" + sanitizeCSS(css) + "</style>"

	at := tagOffset(page, "head", true)
	if at < 0 {
		at = max(tagOffset(page, "body", false), 0)
	}
	return page[:at] + block + page[at:]
}

// sanitizeCSS stops CSS text from closing the style element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// tagOffset finds the first real tag named name. For an end tag it returns
// the offset where the tag starts; for a start tag, the offset right after
// it. Names inside comments or script text do not count. Returns -1 when
// there is no such tag.
func tagOffset(page, name string, closing bool) int {
	offset := 0
	for _, t := range tokenize(page) {
		if t.kind == markupToken && t.name == name && t.closing == closing {
			if closing {
				return offset
			}
			return offset + len(t.raw)
		}
		offset += len(t.raw)
	}
	return -1
}

// HeaderData holds the heading and intro shown above a bibliography.
type HeaderData struct {
	Title string
	Intro template.HTML // rendered by IntroRenderer
}

// HeaderInjection renders the page header template and places it first
// inside <body>.
type HeaderInjection struct {
	tmpl *template.Template
}

// NewHeaderInjection parses the header template.
func NewHeaderInjection(tmplContent string) (*HeaderInjection, error) {
	tmpl, err := template.New("header").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing header template: %w", err)
	}
	return &HeaderInjection{tmpl: tmpl}, nil
}

// InjectHeader returns page unchanged when data is nil. Without a <body>
// tag the header is prepended.
func (h *HeaderInjection) InjectHeader(ctx context.Context, page string, data *HeaderData) (string, error) {
	if data == nil {
		return page, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHeaderRender, err)
	}

	at := max(tagOffset(page, "body", false), 0)
	return page[:at] + buf.String() + page[at:], nil
}
