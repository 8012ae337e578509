package main

import (
	"errors"
	"os"

	"github.com/alnah/go-bibhtml"
	"github.com/alnah/go-bibhtml/internal/config"
	"github.com/alnah/go-bibhtml/internal/fileutil"
)

// Exit codes for the bib2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All inputs rendered
	ExitGeneral = 1 // General/unexpected error, or some inputs failed
	ExitUsage   = 2 // Invalid flags, config, style or theme
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors during PDF export
)

// exitCodeFor returns the exit code for an error.
// It relies on errors.Is, so callers must wrap with fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, bibhtml.ErrBrowserConnect) ||
		errors.Is(err, bibhtml.ErrPageCreate) ||
		errors.Is(err, bibhtml.ErrPageLoad) ||
		errors.Is(err, bibhtml.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrSourceTooLarge) ||
		errors.Is(err, fileutil.ErrNotRegularFile) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrInvalidBadge) ||
		errors.Is(err, bibhtml.ErrUnknownStyle) ||
		errors.Is(err, bibhtml.ErrUnknownTheme) ||
		errors.Is(err, bibhtml.ErrInvalidAssetPath) ||
		errors.Is(err, bibhtml.ErrInvalidListKind) ||
		errors.Is(err, bibhtml.ErrInvalidSortOrder) ||
		errors.Is(err, bibhtml.ErrInvalidPageSize) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidFlag) {
		return ExitUsage
	}

	return ExitGeneral
}
