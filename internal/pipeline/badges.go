package pipeline

import (
	"html"
	"regexp"
	"strings"
)

// Placeholder is replaced by the field value in a badge URL template.
const Placeholder = "{value}"

// BadgesClass is the class of the inline container holding rendered badges.
const BadgesClass = "bib-links"

// BadgeSpec describes one field-derived link.
type BadgeSpec struct {
	Field string         // field looked up on the entry
	Label string         // link text, escaped on output
	URL   string         // template containing Placeholder
	Match *regexp.Regexp // optional validator; group 1 (if any) becomes the value
	Class string         // optional CSS class
}

// FieldLookup returns the value of a field and whether it is present.
type FieldLookup func(field string) (string, bool)

// RenderBadges renders every badge that produces a safe link, in order,
// inside one span. Returns "" when no badge produces output.
func RenderBadges(lookup FieldLookup, badges []BadgeSpec) string {
	var links []string
	for _, b := range badges {
		if link, ok := renderBadge(lookup, b); ok {
			links = append(links, link)
		}
	}

	if len(links) == 0 {
		return ""
	}

	return `<span class="` + BadgesClass + `">` + strings.Join(links, " ") + `</span>`
}

// renderBadge renders a single badge anchor.
// Returns false when the field is missing or blank, the validator rejects
// the value, or the resulting URL is unsafe.
func renderBadge(lookup FieldLookup, b BadgeSpec) (string, bool) {
	value, ok := lookup(b.Field)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}

	if b.Match != nil {
		m := b.Match.FindStringSubmatch(value)
		if m == nil {
			return "", false
		}
		value = m[0]
		if len(m) > 1 {
			value = m[1]
		}
	}

	href, ok := SanitizeURL(strings.ReplaceAll(b.URL, Placeholder, value))
	if !ok {
		return "", false
	}

	var buf strings.Builder
	buf.WriteString(`<a href="`)
	buf.WriteString(html.EscapeString(href))
	buf.WriteString(`"`)
	if b.Class != "" {
		buf.WriteString(` class="`)
		buf.WriteString(html.EscapeString(b.Class))
		buf.WriteString(`"`)
	}
	buf.WriteString(`>`)
	buf.WriteString(html.EscapeString(b.Label))
	buf.WriteString(`</a>`)
	return buf.String(), true
}
