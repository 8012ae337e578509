// Package pipeline implements the HTML decoration stages applied to
// formatted bibliography entries.
//
// Every stage operates on already-serialized HTML as text:
//   - URL safety gate (SanitizeURL) for every generated href
//   - Text-span linking of an entry title (LinkSpan)
//   - Field-derived badges appended after an entry (RenderBadges)
//   - Bare-URL linkification of text nodes (Linkify)
//   - CSS and header injection for standalone documents
//   - Markdown to HTML conversion of document intros via Goldmark
//
// LinkSpan and Linkify share one tokenizer that splits HTML on tag
// boundaries while keeping the raw bytes of every token, plus a small scan
// state tracking whether the cursor is inside an anchor, script, or style
// element. Text inside those elements is never modified. The input shape is
// constrained (self-produced, well-formed fragments), so no DOM is built.
package pipeline
