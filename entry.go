package bibhtml

import (
	"fmt"
	"maps"
	"strings"
)

// Entry is one bibliography item: the normalized record plus the raw
// BibTeX fields the normalization drops. Entries are immutable.
type Entry struct {
	key     string
	year    int
	hasYear bool
	record  Record
	custom  map[string]string
	raw     map[string]string
}

// Key returns the citation key.
func (e *Entry) Key() string { return e.key }

// Year returns the first date-part of the issued date.
func (e *Entry) Year() (int, bool) { return e.year, e.hasYear }

// Title returns the normalized title.
func (e *Entry) Title() string { return e.record.Title }

// Record returns the normalized record.
func (e *Entry) Record() Record { return e.record }

// Custom returns a preserved field declared with WithFields.
func (e *Entry) Custom(name string) (string, bool) {
	v, ok := e.custom[name]
	return v, ok
}

// CustomFields returns a copy of the preserved fields.
func (e *Entry) CustomFields() map[string]string {
	return maps.Clone(e.custom)
}

// Raw returns a field exactly as the BibTeX source gave it.
func (e *Entry) Raw(name string) (string, bool) {
	v, ok := e.raw[name]
	return v, ok
}

// RawFields returns a copy of every raw field.
func (e *Entry) RawFields() map[string]string {
	return maps.Clone(e.raw)
}

// fieldValue looks up raw first, then custom. A blank raw value defers
// to custom.
func (e *Entry) fieldValue(name string) (string, bool) {
	if v, ok := e.raw[name]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	return e.Custom(name)
}

// reconcile pairs each normalized record with the raw record of the same
// label. Order follows recs; a record without a raw match keeps an empty
// raw map.
func reconcile(raws []RawRecord, recs []Record, fields []string) ([]*Entry, error) {
	byLabel := make(map[string]map[string]string, len(raws))
	for _, r := range raws {
		if _, seen := byLabel[r.Label]; !seen {
			byLabel[r.Label] = r.Fields
		}
	}

	entries := make([]*Entry, 0, len(recs))
	keys := make(map[string]bool, len(recs))
	for _, rec := range recs {
		if keys[rec.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, rec.ID)
		}
		keys[rec.ID] = true

		raw := maps.Clone(byLabel[rec.ID])
		if raw == nil {
			raw = make(map[string]string)
		}

		custom := make(map[string]string)
		for _, name := range fields {
			if v, ok := raw[name]; ok {
				custom[name] = v
			}
		}

		year, hasYear := rec.Year()
		entries = append(entries, &Entry{
			key:     rec.ID,
			year:    year,
			hasYear: hasYear,
			record:  rec,
			custom:  custom,
			raw:     raw,
		})
	}
	return entries, nil
}
