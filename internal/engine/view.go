package engine

import (
	"html/template"
	"strings"
)

// textEscaper escapes only the characters that are special in HTML text and
// attribute values. Everything else, '+' included, must stay literal for the
// title linker and the linkifier.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"'", "&#39;",
)

// escapeText escapes s and marks it safe so templates emit it unchanged.
func escapeText(s string) template.HTML {
	return template.HTML(textEscaper.Replace(s)) // #nosec G203 -- escaped above
}

// entryView is the data a style template executes against.
// Text values are already escaped.
type entryView struct {
	Index  int
	ID     template.HTML
	Type   string
	Title  template.HTML
	Year   int
	Author []Name
	Editor []Name

	rec Record
}

func newEntryView(rec Record, index int) entryView {
	year, _ := rec.Year()
	return entryView{
		Index:  index,
		ID:     escapeText(rec.ID),
		Type:   rec.Type,
		Title:  escapeText(rec.Title),
		Year:   year,
		Author: rec.Author,
		Editor: rec.Editor,
		rec:    rec,
	}
}

// Get returns a CSL variable or "".
func (v entryView) Get(name string) template.HTML {
	s, _ := v.rec.Field(name)
	return escapeText(s)
}

var styleFuncs = template.FuncMap{
	"familyFirst": func(names []Name, sep, last string) template.HTML {
		return escapeText(formatNames(names, Name.FamilyFirst, sep, last))
	},
	"givenFirst": func(names []Name, sep, last string) template.HTML {
		return escapeText(formatNames(names, Name.GivenFirst, sep, last))
	},
}

func formatNames(names []Name, format func(Name) string, sep, last string) string {
	formatted := make([]string, len(names))
	for i, n := range names {
		formatted[i] = format(n)
	}
	return joinNames(formatted, sep, last)
}
