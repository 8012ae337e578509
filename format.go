package bibhtml

import (
	"fmt"
	"html"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/alnah/go-bibhtml/internal/engine"
	"github.com/alnah/go-bibhtml/internal/pipeline"
)

// HTML contract class names.
const (
	BodyClass  = "csl-bib-body"
	EntryClass = engine.EntryClass
	LinksClass = pipeline.BadgesClass
)

// KeyAttribute carries the citation key on each list item.
const KeyAttribute = "data-key"

// ListKind selects the wrapper element of FormatHTML.
type ListKind string

// List kinds.
const (
	ListOrdered   ListKind = "ol"
	ListUnordered ListKind = "ul"
	ListDiv       ListKind = "div"
)

// Valid reports whether k is a known list kind. The empty kind is valid
// and means ListOrdered.
func (k ListKind) Valid() bool {
	switch k {
	case "", ListOrdered, ListUnordered, ListDiv:
		return true
	}
	return false
}

func (k ListKind) wrapper() string {
	if k == "" {
		return string(ListOrdered)
	}
	return string(k)
}

func (k ListKind) item() string {
	if k == ListDiv {
		return "div"
	}
	return "li"
}

// Badge describes one field-derived link appended after an entry.
// Every "{value}" in URL is replaced with the field value; when Match is
// set the value must match it, and its first group (if any) is used.
type Badge struct {
	Field string
	Label string
	URL   string
	Match *regexp.Regexp
	Class string
}

// DefaultTitleLinks are the fields tried for the title link.
var DefaultTitleLinks = []string{"url", "doi", "arxiv"}

// FormatOptions controls FormatEntry and FormatHTML.
type FormatOptions struct {
	// TitleLinks lists candidate fields for the title link, in order.
	// Nil uses DefaultTitleLinks; an empty slice disables title links.
	TitleLinks []string

	Badges []Badge

	// List selects the wrapper element (FormatHTML only).
	List ListKind

	// Attributes are added to the wrapper element. A true value renders
	// as a bare attribute name; false and nil values are omitted. A class
	// is appended to csl-bib-body.
	Attributes map[string]any

	// DisableLinkify turns off bare-URL linkification (FormatHTML only).
	DisableLinkify bool
}

// FormatEntry renders one entry without a wrapper: the engine output with
// its outer container removed, the title linked and badges appended.
func (b *Bibliography) FormatEntry(e *Entry, opts FormatOptions) (string, error) {
	out, err := b.engine.RenderOne(e.record, b.style)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", e.key, err)
	}
	return decorate(e, unwrapEntry(out), opts), nil
}

// FormatHTML renders entries in one engine batch, in the given order, and
// wraps them in a list. Returns "" for no entries.
func (b *Bibliography) FormatHTML(entries []*Entry, opts FormatOptions) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	if !opts.List.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidListKind, opts.List)
	}

	recs := make([]Record, len(entries))
	for i, e := range entries {
		recs[i] = e.record
	}
	rendered, err := b.engine.RenderBatch(recs, b.style)
	if err != nil {
		return "", fmt.Errorf("rendering batch: %w", err)
	}
	if len(rendered) != len(entries) {
		return "", fmt.Errorf("%w: got %d, want %d", ErrRenderMismatch, len(rendered), len(entries))
	}

	item := opts.List.item()
	items := make([]string, len(entries))
	for i, e := range entries {
		body := decorate(e, unwrapEntry(rendered[i].HTML), opts)
		items[i] = fmt.Sprintf(`<%s class="%s" %s="%s">%s</%s>`,
			item, EntryClass, KeyAttribute, html.EscapeString(e.key), body, item)
	}

	wrapper := opts.List.wrapper()
	out := "<" + wrapper + wrapperAttributes(opts.Attributes) + ">\n" +
		strings.Join(items, "\n") +
		"\n</" + wrapper + ">"

	if !opts.DisableLinkify {
		out = pipeline.Linkify(out)
	}
	return out, nil
}

func decorate(e *Entry, body string, opts FormatOptions) string {
	if href, ok := titleLink(e, opts.TitleLinks); ok {
		body = pipeline.LinkSpan(body, e.Title(), href)
	}
	if badges := pipeline.RenderBadges(e.fieldValue, badgeSpecs(opts.Badges)); badges != "" {
		body += " " + badges
	}
	return body
}

func badgeSpecs(badges []Badge) []pipeline.BadgeSpec {
	specs := make([]pipeline.BadgeSpec, len(badges))
	for i, b := range badges {
		specs[i] = pipeline.BadgeSpec(b)
	}
	return specs
}

// entryContainer matches one outer element carrying the entry class.
// Go regexps have no backreferences, so tag names are compared after matching.
var entryContainer = regexp.MustCompile(
	`(?s)^\s*<([A-Za-z][A-Za-z0-9]*)\b[^>]*\bclass="(?:[^"]*\s)?` + EntryClass + `(?:\s[^"]*)?"[^>]*>(.*)</([A-Za-z][A-Za-z0-9]*)>\s*$`)

// unwrapEntry strips the container the engine wraps around an entry.
// Output without such a container is returned trimmed.
func unwrapEntry(s string) string {
	m := entryContainer.FindStringSubmatch(s)
	if m == nil || !strings.EqualFold(m[1], m[3]) {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(m[2])
}

var attributeName = regexp.MustCompile(`^[A-Za-z_:][-A-Za-z0-9_:.]*$`)

// wrapperAttributes renders the wrapper attributes with a leading space,
// sorted by name.
func wrapperAttributes(attrs map[string]any) string {
	class := BodyClass
	var buf strings.Builder

	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		if !attributeName.MatchString(name) {
			continue
		}
		value := attrs[name]
		if strings.EqualFold(name, "class") {
			if s := attributeValue(value); s != "" {
				class += " " + s
			}
			continue
		}
		switch v := value.(type) {
		case nil:
		case bool:
			if v {
				buf.WriteString(" " + name)
			}
		default:
			buf.WriteString(" " + name + `="` + html.EscapeString(attributeValue(v)) + `"`)
		}
	}
	return ` class="` + html.EscapeString(class) + `"` + buf.String()
}

func attributeValue(v any) string {
	switch v := v.(type) {
	case nil, bool:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}

var (
	doiPrefix     = regexp.MustCompile(`(?i)^doi:\s*`)
	arxivVersion  = regexp.MustCompile(`v\d+$`)
	doiResolver   = "https://doi.org/"
	arxivAbstract = "https://arxiv.org/abs/"
)

// titleLink resolves the title-link URL from the first usable candidate.
func titleLink(e *Entry, candidates []string) (string, bool) {
	if candidates == nil {
		candidates = DefaultTitleLinks
	}

	for _, name := range candidates {
		value := strings.TrimSpace(titleLinkValue(e, name))
		if value == "" {
			continue
		}

		var target string
		switch field := strings.ToLower(name); {
		case pipeline.HasLinkScheme(value):
			target = value
		case field == "doi":
			target = doiResolver + doiPrefix.ReplaceAllString(value, "")
		case field == "arxiv":
			target = arxivAbstract + arxivVersion.ReplaceAllString(value, "")
		default:
			continue
		}

		if href, ok := pipeline.SanitizeURL(target); ok {
			return href, true
		}
	}
	return "", false
}

// titleLinkValue looks a candidate up in the raw fields, then in the
// normalized record under the upper-cased name, then under the name itself.
func titleLinkValue(e *Entry, name string) string {
	if v, ok := e.raw[strings.ToLower(name)]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	if v, ok := e.record.Field(strings.ToUpper(name)); ok && strings.TrimSpace(v) != "" {
		return v
	}
	v, _ := e.record.Field(name)
	return v
}
