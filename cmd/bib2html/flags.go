package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// selectionFlags choose and order entries.
type selectionFlags struct {
	fields []string
	filter []string // key=value
	sortBy string
	order  string
}

// formatFlags control entry decoration and the list wrapper.
type formatFlags struct {
	style        string
	titleLinks   []string
	noTitleLinks bool
	list         string
	attrs        []string // name=value or bare name
	noLinkify    bool
	assetPath    string
}

// documentFlags control standalone page output.
type documentFlags struct {
	standalone bool
	title      string
	intro      string
	theme      string
	css        string
	lang       string
}

// pdfFlags control PDF export.
type pdfFlags struct {
	enabled   bool
	pageSize  string
	landscape bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common    commonFlags
	output    string
	workers   int
	timeout   string
	selection selectionFlags
	format    formatFlags
	document  documentFlags
	pdf       pdfFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

func addSelectionFlags(fs *flag.FlagSet, f *selectionFlags) {
	fs.StringSliceVarP(&f.fields, "field", "f", nil, "custom BibTeX field to keep (repeatable)")
	fs.StringArrayVar(&f.filter, "filter", nil, "keep entries whose field equals value: field=value (repeatable)")
	fs.StringVar(&f.sortBy, "sort", "", "sort key: year or a custom field")
	fs.StringVar(&f.order, "order", "", "sort order: asc, desc")
}

func addFormatFlags(fs *flag.FlagSet, f *formatFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "citation style name, .tmpl path or inline template")
	fs.StringSliceVar(&f.titleLinks, "title-link", nil, "fields tried for the title link, in order")
	fs.BoolVar(&f.noTitleLinks, "no-title-links", false, "disable title links")
	fs.StringVar(&f.list, "list", "", "wrapper element: ol, ul, div")
	fs.StringArrayVar(&f.attrs, "attr", nil, "wrapper attribute: name=value or name (repeatable)")
	fs.BoolVar(&f.noLinkify, "no-linkify", false, "do not link bare URLs")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.BoolVar(&f.standalone, "standalone", false, "write a complete HTML page")
	fs.StringVar(&f.title, "title", "", "page heading")
	fs.StringVar(&f.intro, "intro", "", "Markdown shown above the list")
	fs.StringVar(&f.theme, "theme", "", "CSS theme name, .css path or none")
	fs.StringVar(&f.css, "css", "", "extra CSS file")
	fs.StringVar(&f.lang, "lang", "", "page language")
}

func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.BoolVar(&f.enabled, "pdf", false, "print the page to PDF")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: letter, a4, legal")
	fs.BoolVar(&f.landscape, "landscape", false, "landscape orientation")
}

// parseRenderFlags parses render command flags and returns positional args.
// Usage and parse errors go to w.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory, - for stdout")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addSelectionFlags(fs, &f.selection)
	addFormatFlags(fs, &f.format)
	addDocumentFlags(fs, &f.document)
	addPDFFlags(fs, &f.pdf)

	fs.SetOutput(w)
	fs.Usage = func() { printRenderUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parsePairs splits name=value flags. A bare name maps to true when
// allowBare is set.
func parsePairs(flagName string, pairs []string, allowBare bool) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		name, value, found := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		switch {
		case name == "":
			return nil, fmt.Errorf("%w: --%s %q", ErrInvalidFlag, flagName, p)
		case !found && !allowBare:
			return nil, fmt.Errorf("%w: --%s %q (want name=value)", ErrInvalidFlag, flagName, p)
		case !found:
			out[name] = true
		default:
			out[name] = value
		}
	}
	return out, nil
}
