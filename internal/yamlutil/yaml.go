// Package yamlutil decodes and encodes bib2html configuration documents.
// It is the only importer of the YAML library.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds a configuration document (1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyDocument  = errors.New("yamlutil: empty document")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrSyntax         = errors.New("yamlutil: invalid document")
)

// decodeOptions reject typos and repeated keys rather than silently
// dropping or overwriting settings.
var decodeOptions = []yaml.DecodeOption{
	yaml.Strict(),
	yaml.DisallowDuplicateKey(),
}

var encodeOptions = []yaml.EncodeOption{
	yaml.Indent(2),
	yaml.IndentSequence(true),
}

// Decode fills v from data. Errors wrap ErrSyntax and quote the offending
// line without color.
func Decode(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrEmptyDocument
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}

	if err := yaml.UnmarshalWithOptions(data, v, decodeOptions...); err != nil {
		return fmt.Errorf("%w:\n%s", ErrSyntax, yaml.FormatError(err, false, true))
	}
	return nil
}

// Encode renders v with two-space indentation, sequences nested under
// their key.
func Encode(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, encodeOptions...)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: encoding: %w", err)
	}
	return out, nil
}
