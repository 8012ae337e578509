// Package bibhtml renders BibTeX bibliographies to linked, safe HTML.
//
// # Quick Start
//
// Load a bibliography, pick entries and format them:
//
//	bib, err := bibhtml.New(
//	    bibhtml.WithFile("refs.bib"),
//	    bibhtml.WithStyle("apa"),
//	    bibhtml.WithFields("topic", "code"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	entries, err := bibhtml.Sort(bib.Filter(map[string]string{"topic": "nlp"}), bibhtml.SortOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html, err := bib.FormatHTML(entries, bibhtml.FormatOptions{})
//
// # Entries
//
// Each Entry pairs the normalized record used for citation formatting with
// the raw BibTeX fields, which the normalization drops when they fall
// outside its fixed mapping. Fields declared with WithFields are also kept
// as custom fields; Filter and Sort work on those.
//
// # Decoration Pipeline
//
// FormatEntry and FormatHTML decorate the engine output in order:
//
//  1. The outer csl-entry container of the engine output is removed
//  2. The title is linked to the first usable url, doi or arxiv field
//  3. Badges derived from entry fields are appended
//  4. FormatHTML wraps items in a list and links bare URLs in text
//
// Every generated href passes a scheme check that admits only http,
// https and mailto.
//
// # Styles
//
// WithStyle accepts a built-in name (see BuiltinStyles), a style file path,
// or inline template text. Styles are Go html/template templates executed
// once per entry with Index, ID, Type, Title, Year, Author and Editor, plus
// Get for any other field. Custom styles and themes can also be placed in
// a directory passed to WithAssetPath:
//
//	assets/
//	├── styles/
//	│   └── lab.tmpl
//	├── themes/
//	│   └── lab.css
//	└── templates/
//	    ├── document.html
//	    └── header.html
//
// # Documents and PDF
//
// Document builds a complete HTML page with a heading, a Markdown intro and
// a CSS theme. PDFRenderer prints such a page with headless Chrome:
//
//	r := bibhtml.NewPDFRenderer()
//	defer r.Close()
//	pdf, err := r.RenderPDF(ctx, page, bibhtml.PDFOptions{PageSize: "a4"})
//
// Use RendererPool to print several documents in parallel.
package bibhtml
