package bibhtml

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-bibhtml/internal/assets"
	"github.com/alnah/go-bibhtml/internal/fileutil"
	"github.com/alnah/go-bibhtml/internal/pipeline"
)

// ThemeNone disables the document stylesheet.
const ThemeNone = "none"

// DefaultLang is the document language when none is set.
const DefaultLang = "en"

// DocumentOptions controls Document.
type DocumentOptions struct {
	Format FormatOptions

	// Title is shown as a heading and used as the page title.
	Title string

	// Intro is Markdown rendered above the list.
	Intro string

	// Theme is a built-in or custom theme name, a CSS file path, or
	// ThemeNone. Empty uses the default theme.
	Theme string

	// CSS is appended after the theme.
	CSS string

	Lang string
}

// documentData feeds the page template.
type documentData struct {
	Lang  string
	Title string
	Body  template.HTML
}

// Document renders entries as a complete HTML page: the FormatHTML list
// inside the page template, a header with the title and intro, and the
// theme stylesheet.
func (b *Bibliography) Document(ctx context.Context, entries []*Entry, opts DocumentOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	css, err := b.themeCSS(opts.Theme)
	if err != nil {
		return "", err
	}
	if opts.CSS != "" {
		css = strings.TrimSpace(css + "\n" + opts.CSS)
	}

	body, err := b.FormatHTML(entries, opts.Format)
	if err != nil {
		return "", err
	}

	page, err := b.page(documentData{
		Lang:  cmp.Or(opts.Lang, DefaultLang),
		Title: opts.Title,
		Body:  template.HTML(body), // #nosec G203 -- produced by FormatHTML, every href gated
	})
	if err != nil {
		return "", err
	}

	header, err := b.header(ctx, opts)
	if err != nil {
		return "", err
	}
	if header != nil {
		injector, err := b.headerInjector()
		if err != nil {
			return "", err
		}
		if page, err = injector.InjectHeader(ctx, page, header); err != nil {
			return "", err
		}
	}

	return b.css.InjectCSS(ctx, page, css), nil
}

func (b *Bibliography) page(data documentData) (string, error) {
	text, err := b.assets.LoadTemplate(assets.DocumentTemplate)
	if err != nil {
		return "", fmt.Errorf("loading document template: %w", err)
	}
	tmpl, err := template.New(assets.DocumentTemplate).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing document template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering document template: %w", err)
	}
	return buf.String(), nil
}

func (b *Bibliography) headerInjector() (*pipeline.HeaderInjection, error) {
	text, err := b.assets.LoadTemplate(assets.HeaderTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading header template: %w", err)
	}
	return pipeline.NewHeaderInjection(text)
}

// header returns nil when there is neither a title nor an intro.
func (b *Bibliography) header(ctx context.Context, opts DocumentOptions) (*pipeline.HeaderData, error) {
	if opts.Title == "" && strings.TrimSpace(opts.Intro) == "" {
		return nil, nil
	}

	data := &pipeline.HeaderData{Title: opts.Title}
	if strings.TrimSpace(opts.Intro) != "" {
		intro, err := b.markdown.Render(ctx, opts.Intro)
		if err != nil {
			return nil, err
		}
		data.Intro = template.HTML(intro) // #nosec G203 -- goldmark output, raw HTML disabled
	}
	return data, nil
}

// themeCSS resolves a theme selector to stylesheet text.
func (b *Bibliography) themeCSS(theme string) (string, error) {
	theme = strings.TrimSpace(theme)
	switch theme {
	case ThemeNone:
		return "", nil
	case "":
		theme = assets.DefaultThemeName
	}

	if assets.ValidateAssetName(theme) == nil {
		css, err := b.assets.LoadTheme(theme)
		if err == nil {
			return css, nil
		}
		if !assets.IsNotFound(err) {
			return "", fmt.Errorf("%w: %v", ErrUnknownTheme, err)
		}
	}

	if fileutil.IsFilePath(theme) || fileutil.FileExists(theme) {
		css, err := b.readFile(theme)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnknownTheme, err)
		}
		return css, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
}
