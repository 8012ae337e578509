package bibhtml

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-bibhtml/internal/fileutil"
	"github.com/alnah/go-bibhtml/internal/process"
)

// DefaultPDFTimeout bounds page loading when the context has no deadline.
const DefaultPDFTimeout = 30 * time.Second

// Page sizes.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// pageDimensions holds width and height in inches.
var pageDimensions = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

const marginInches = 0.5

// PDFOptions controls page layout.
type PDFOptions struct {
	// PageSize is letter, a4 or legal (case-insensitive). Empty means letter.
	PageSize string

	Landscape bool
}

// pageLayout is the resolved print geometry in inches.
type pageLayout struct {
	width, height float64
	landscape     bool
}

func (o PDFOptions) layout() (pageLayout, error) {
	size := strings.ToLower(strings.TrimSpace(o.PageSize))
	if size == "" {
		size = PageSizeLetter
	}
	dim, ok := pageDimensions[size]
	if !ok {
		return pageLayout{}, fmt.Errorf("%w: %q", ErrInvalidPageSize, o.PageSize)
	}
	return pageLayout{width: dim[0], height: dim[1], landscape: o.Landscape}, nil
}

// pdfRenderer renders an HTML file to PDF; replaced by a fake in tests.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, layout pageLayout) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ pdfRenderer = (*rodRenderer)(nil)

// PDFRenderer prints HTML documents with headless Chrome.
// The browser starts on first use. A PDFRenderer is not safe for
// concurrent use; use a RendererPool to render in parallel.
type PDFRenderer struct {
	renderer pdfRenderer
	timeout  time.Duration
}

// PDFOption configures a PDFRenderer.
type PDFOption func(*PDFRenderer)

// WithPDFTimeout sets the page-load timeout.
func WithPDFTimeout(d time.Duration) PDFOption {
	return func(r *PDFRenderer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// withRenderer replaces the browser backend.
func withRenderer(pr pdfRenderer) PDFOption {
	return func(r *PDFRenderer) {
		r.renderer = pr
	}
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer(opts ...PDFOption) *PDFRenderer {
	r := &PDFRenderer{timeout: DefaultPDFTimeout}
	for _, opt := range opts {
		opt(r)
	}
	if r.renderer == nil {
		r.renderer = &rodRenderer{timeout: r.timeout}
	}
	return r
}

// RenderPDF prints an HTML document, typically from Document.
func (r *PDFRenderer) RenderPDF(ctx context.Context, document string, opts PDFOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layout, err := opts.layout()
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(document, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return r.renderer.RenderFromFile(ctx, path, layout)
}

// Close stops the browser, if started.
func (r *PDFRenderer) Close() error {
	return r.renderer.Close()
}

// rodRenderer implements pdfRenderer with go-rod.
// Rod downloads Chromium on first run when no browser is found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser (containers).
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		process.KillTree(l.PID())
		l.Cleanup()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// Close closes the browser and kills any leftover child processes.
func (r *rodRenderer) Close() error {
	if r.browser == nil {
		return nil
	}

	err := r.browser.Close()
	process.KillTree(r.launcher.PID())
	r.launcher.Cleanup()
	r.browser = nil
	r.launcher = nil
	return err
}

// RenderFromFile opens a local HTML file and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, layout pageLayout) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(printOptions(layout))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

func printOptions(layout pageLayout) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		Landscape:       layout.landscape,
		PaperWidth:      floatPtr(layout.width),
		PaperHeight:     floatPtr(layout.height),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
