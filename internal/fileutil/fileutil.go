// Package fileutil provides file and path helpers for bibliography sources.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxSourceSize caps how much of a BibTeX file ReadSource loads (default 32MB).
var MaxSourceSize int64 = 32 << 20

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrSourceTooLarge         = errors.New("source file exceeds maximum size")
	ErrNotRegularFile         = errors.New("not a regular file")
)

// ReadSource reads a bibliography source file, refusing directories and
// files larger than MaxSourceSize.
func ReadSource(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}
	if info.Size() > MaxSourceSize {
		return "", fmt.Errorf("%w: %s (%d bytes, max %d)", ErrSourceTooLarge, path, info.Size(), MaxSourceSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxSourceSize+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if int64(len(data)) > MaxSourceSize {
		return "", fmt.Errorf("%w: %s", ErrSourceTooLarge, path)
	}
	return string(data), nil
}

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "bib2html-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
//
// Examples:
//   - "apa" -> false (name)
//   - "./lab.tmpl" -> true (relative path)
//   - "/etc/bib/lab.tmpl" -> true (absolute)
//   - "C:\styles\lab.tmpl" -> true (Windows)
//   - "lab.tmpl" -> true (has a template or CSS extension)
func IsFilePath(s string) bool {
	if strings.ContainsAny(s, "/\\") {
		return true
	}
	if strings.ContainsAny(s, "{}\n") {
		return false
	}
	lower := strings.ToLower(s)
	for _, ext := range []string{".tmpl", ".css", ".yaml", ".yml", ".bib"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
