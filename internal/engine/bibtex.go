package engine

import (
	"fmt"
	"strings"

	"github.com/nickng/bibtex"
)

// RawRecord is one BibTeX entry with every field preserved as written.
// Field names are lower-cased; values keep their TeX markup.
type RawRecord struct {
	Label  string
	Type   string
	Fields map[string]string
}

// ParseRaw parses BibTeX source and returns one RawRecord per entry,
// in source order.
func (e *Engine) ParseRaw(source string) ([]RawRecord, error) {
	entries, err := parseEntries(source)
	if err != nil {
		return nil, err
	}

	raws := make([]RawRecord, 0, len(entries))
	for _, entry := range entries {
		fields := make(map[string]string, len(entry.Fields))
		for name, value := range entry.Fields {
			if value == nil {
				continue
			}
			fields[strings.ToLower(name)] = unwrapValue(value.String())
		}
		raws = append(raws, RawRecord{
			Label:  entry.CiteName,
			Type:   strings.ToLower(entry.Type),
			Fields: fields,
		})
	}
	return raws, nil
}

// ParseNormalized parses BibTeX source and returns one normalized Record
// per entry, in source order.
func (e *Engine) ParseNormalized(source string) ([]Record, error) {
	raws, err := e.ParseRaw(source)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, normalize(raw))
	}
	return records, nil
}

func parseEntries(source string) ([]*bibtex.BibEntry, error) {
	bib, err := bibtex.Parse(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return bib.Entries, nil
}

// unwrapValue trims whitespace and strips one pair of outer braces or
// quotes when that pair encloses the whole value.
func unwrapValue(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	switch {
	case s[0] == '"' && s[len(s)-1] == '"':
		return strings.TrimSpace(s[1 : len(s)-1])
	case s[0] == '{' && s[len(s)-1] == '}' && closingBrace(s) == len(s)-1:
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// closingBrace returns the index of the brace closing the one at s[0],
// or -1 when it is unbalanced.
func closingBrace(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
