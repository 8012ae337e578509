package bibhtml

import "errors"

// Sentinel errors for library operations.
var (
	// Configuration errors, returned by New.
	ErrNoSource         = errors.New("no bibliography source given")
	ErrUnknownStyle     = errors.New("unknown citation style")
	ErrDuplicateKey     = errors.New("duplicate citation key")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Option validation errors.
	ErrInvalidListKind  = errors.New("invalid list kind")
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrUnknownTheme     = errors.New("unknown theme")

	// Rendering errors.
	ErrRenderMismatch = errors.New("engine returned a different number of entries")

	// PDF export errors.
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
)
