package engine

import (
	"maps"
	"regexp"
	"strconv"
	"strings"
)

// Record is a normalized bibliographic entry using CSL variable names.
type Record struct {
	ID     string
	Type   string
	Title  string
	Author []Name
	Editor []Name
	Issued *Date

	fields map[string]string
}

// Date holds CSL date-parts: [[year, month, day]], month and day optional.
type Date struct {
	DateParts [][]int
}

// Field returns the CSL scalar variable with the given name
// (DOI, URL, container-title, publisher, page, ...).
func (r Record) Field(name string) (string, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Fields returns a copy of all scalar variables.
func (r Record) Fields() map[string]string {
	return maps.Clone(r.fields)
}

// Year returns the first date-part of the issued date.
func (r Record) Year() (int, bool) {
	if r.Issued == nil || len(r.Issued.DateParts) == 0 || len(r.Issued.DateParts[0]) == 0 {
		return 0, false
	}
	return r.Issued.DateParts[0][0], true
}

// NewRecord builds a Record from already-normalized values. Used by
// alternative engines and tests.
func NewRecord(id, typ, title string, issued *Date, fields map[string]string) Record {
	return Record{
		ID:     id,
		Type:   typ,
		Title:  title,
		Issued: issued,
		fields: maps.Clone(fields),
	}
}

// fieldMap maps BibTeX field names to CSL variables. The first BibTeX
// field present wins for variables with several sources.
var fieldMap = []struct {
	bib string
	csl string
}{
	{"journal", "container-title"},
	{"journaltitle", "container-title"},
	{"booktitle", "container-title"},
	{"publisher", "publisher"},
	{"school", "publisher"},
	{"institution", "publisher"},
	{"organization", "publisher"},
	{"address", "publisher-place"},
	{"location", "publisher-place"},
	{"volume", "volume"},
	{"number", "issue"},
	{"pages", "page"},
	{"edition", "edition"},
	{"series", "collection-title"},
	{"doi", "DOI"},
	{"url", "URL"},
	{"isbn", "ISBN"},
	{"issn", "ISSN"},
	{"note", "note"},
	{"abstract", "abstract"},
}

// verbatimFields are copied without TeX cleanup.
var verbatimFields = map[string]bool{
	"DOI": true,
	"URL": true,
}

var typeMap = map[string]string{
	"article":       "article-journal",
	"book":          "book",
	"booklet":       "pamphlet",
	"inbook":        "chapter",
	"incollection":  "chapter",
	"inproceedings": "paper-conference",
	"conference":    "paper-conference",
	"proceedings":   "book",
	"manual":        "report",
	"techreport":    "report",
	"phdthesis":     "thesis",
	"mastersthesis": "thesis",
	"thesis":        "thesis",
	"online":        "webpage",
	"unpublished":   "manuscript",
	"misc":          "document",
}

func normalize(raw RawRecord) Record {
	rec := Record{
		ID:     raw.Label,
		Type:   cslType(raw.Type),
		Title:  cleanTeX(raw.Fields["title"]),
		Author: parseNames(raw.Fields["author"]),
		Editor: parseNames(raw.Fields["editor"]),
		Issued: parseIssued(raw.Fields),
		fields: make(map[string]string),
	}

	for _, m := range fieldMap {
		value := strings.TrimSpace(raw.Fields[m.bib])
		if value == "" {
			continue
		}
		if _, taken := rec.fields[m.csl]; taken {
			continue
		}
		if !verbatimFields[m.csl] {
			value = cleanTeX(value)
		}
		rec.fields[m.csl] = value
	}
	if rec.Title != "" {
		rec.fields["title"] = rec.Title
	}
	return rec
}

func cslType(bibType string) string {
	if t, ok := typeMap[bibType]; ok {
		return t
	}
	return "document"
}

var (
	isoDate   = regexp.MustCompile(`^(\d{4})(?:-(\d{1,2})(?:-(\d{1,2}))?)?`)
	yearDigit = regexp.MustCompile(`\d{4}`)
)

var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// parseIssued reads biblatex "date" first, then BibTeX "year" and "month".
func parseIssued(fields map[string]string) *Date {
	if m := isoDate.FindStringSubmatch(strings.TrimSpace(fields["date"])); m != nil {
		parts := []int{atoi(m[1])}
		for _, p := range m[2:] {
			if p == "" {
				break
			}
			parts = append(parts, atoi(p))
		}
		return &Date{DateParts: [][]int{parts}}
	}

	year := yearDigit.FindString(fields["year"])
	if year == "" {
		return nil
	}
	parts := []int{atoi(year)}
	if month := parseMonth(fields["month"]); month > 0 {
		parts = append(parts, month)
	}
	return &Date{DateParts: [][]int{parts}}
}

func parseMonth(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 12 {
		return n
	}
	if len(s) >= 3 {
		return monthNames[s[:3]]
	}
	return 0
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
