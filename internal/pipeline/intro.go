package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrIntroConversion indicates the Markdown intro could not be rendered.
var ErrIntroConversion = errors.New("intro conversion failed")

// MarkdownRenderer turns a Markdown block into an HTML fragment.
type MarkdownRenderer interface {
	Render(ctx context.Context, source string) (string, error)
}

// IntroRenderer renders the Markdown shown between a page title and the
// bibliography list. Headings are pushed down one level so the page keeps
// a single h1. Raw HTML is omitted.
type IntroRenderer struct {
	md goldmark.Markdown
}

// NewIntroRenderer creates an IntroRenderer with GFM and typographic quotes.
func NewIntroRenderer() *IntroRenderer {
	return &IntroRenderer{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(headingShift(1), 100)),
		),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)}
}

// Render converts source. Intros are short, so conversion runs inline and
// ctx is only checked before starting.
func (r *IntroRenderer) Render(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIntroConversion, err)
	}
	return buf.String(), nil
}

// headingShift adds its value to every heading level, capped at h6.
type headingShift int

func (s headingShift) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			h.Level = min(h.Level+int(s), 6)
		}
		return ast.WalkContinue, nil
	})
}

var _ MarkdownRenderer = (*IntroRenderer)(nil)
