package bibhtml

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-bibhtml/internal/engine"
)

func TestResolveStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stylePath := filepath.Join(dir, "lab.tmpl")
	if err := os.WriteFile(stylePath, []byte(`[{{.Title}}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		selector string
		want     string
	}{
		{"empty selects default", "", DefaultStyle},
		{"built-in name", "ieee", "ieee"},
		{"file path registers by content", stylePath, engine.ContentName(`[{{.Title}}]`)},
		{"inline text registers by content", `<b>{{.Title}}</b>`, engine.ContentName(`<b>{{.Title}}</b>`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, err := New(WithText(testBib), WithStyle(tt.selector))
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if b.Style() != tt.want {
				t.Errorf("Style() = %q, want %q", b.Style(), tt.want)
			}
		})
	}
}

func TestResolveStyle_RegisteredNameWins(t *testing.T) {
	t.Parallel()

	eng := NewEngine()
	if err := eng.RegisterStyle("apa", `custom {{.Title}}`); err != nil {
		t.Fatal(err)
	}

	b, err := New(WithText(testBib), WithEngine(eng))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	got, err := b.FormatEntry(mustGet(t, b, "notes"), FormatOptions{TitleLinks: []string{}})
	if err != nil {
		t.Fatalf("FormatEntry() error: %v", err)
	}
	if got != "custom Untitled Notes" {
		t.Errorf("FormatEntry() = %q, want registered style output", got)
	}
}

func TestResolveStyle_SharedEngineKeepsDistinctInlineStyles(t *testing.T) {
	t.Parallel()

	eng := NewEngine()
	first, err := New(WithText(testBib), WithEngine(eng), WithStyle(`A {{.Title}}`))
	if err != nil {
		t.Fatal(err)
	}
	second, err := New(WithText(testBib), WithEngine(eng), WithStyle(`B {{.Title}}`))
	if err != nil {
		t.Fatal(err)
	}
	again, err := New(WithText(testBib), WithEngine(eng), WithStyle(`A {{.Title}}`))
	if err != nil {
		t.Fatal(err)
	}

	if first.Style() == second.Style() {
		t.Errorf("different inline styles share name %q", first.Style())
	}
	if first.Style() != again.Style() {
		t.Errorf("identical inline styles got names %q and %q", first.Style(), again.Style())
	}

	opts := FormatOptions{TitleLinks: []string{}}
	got, err := first.FormatEntry(mustGet(t, first, "notes"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if got != "A Untitled Notes" {
		t.Errorf("first FormatEntry() = %q, want style A output", got)
	}
}

func TestResolveStyle_CustomAssetPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o750); err != nil {
		t.Fatal(err)
	}
	text := `lab: {{.Title}}`
	if err := os.WriteFile(filepath.Join(dir, "styles", "apa.tmpl"), []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}

	eng := NewEngine()
	custom, err := New(WithText(testBib), WithEngine(eng), WithAssetPath(dir))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if custom.Style() != engine.ContentName(text) {
		t.Errorf("Style() = %q, want content name", custom.Style())
	}

	// The embedded apa on the same engine is not shadowed.
	plain, err := New(WithText(testBib), WithEngine(eng))
	if err != nil {
		t.Fatal(err)
	}
	got, err := plain.FormatEntry(mustGet(t, plain, "notes"), FormatOptions{TitleLinks: []string{}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(got, "lab:") {
		t.Errorf("embedded style replaced by custom asset: %q", got)
	}
}

func TestResolveStyle_UnreadableFile(t *testing.T) {
	t.Parallel()

	_, err := New(WithText(testBib), WithStyle(filepath.Join(t.TempDir(), "missing.tmpl")))
	if !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("New() error = %v, want ErrUnknownStyle", err)
	}
}

func TestBuiltinStyles(t *testing.T) {
	t.Parallel()

	got := BuiltinStyles()
	for _, want := range []string{"apa", "harvard", "ieee"} {
		if !slices.Contains(got, want) {
			t.Errorf("BuiltinStyles() = %v, missing %q", got, want)
		}
	}
	if !slices.IsSorted(got) {
		t.Errorf("BuiltinStyles() = %v, want sorted", got)
	}
	if !slices.Contains(BuiltinThemes(), "default") {
		t.Errorf("BuiltinThemes() = %v, missing default", BuiltinThemes())
	}
}
