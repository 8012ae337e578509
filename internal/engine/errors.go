package engine

import "errors"

// Sentinel errors for engine operations.
var (
	// ErrParse indicates the BibTeX source could not be parsed.
	ErrParse = errors.New("bibtex parse failed")

	// ErrStyleNotFound indicates no style is registered under the name.
	ErrStyleNotFound = errors.New("style not registered")

	// ErrStyleParse indicates style template text is invalid.
	ErrStyleParse = errors.New("invalid style template")

	// ErrRender indicates a style template failed to execute.
	ErrRender = errors.New("style rendering failed")
)
