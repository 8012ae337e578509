package bibhtml

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	b := newTestBibliography(t)

	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}
	if got, want := keys(b.Entries()), []string{"smith2020", "brown2018", "notes"}; !slices.Equal(got, want) {
		t.Errorf("Entries() keys = %v, want %v", got, want)
	}

	e := mustGet(t, b, "smith2020")
	if e.Title() != "Deep Learning for Cats" {
		t.Errorf("Title() = %q", e.Title())
	}
	if got, _ := e.Custom("code"); got != "https://github.com/smith/cats" {
		t.Errorf("Custom(code) = %q", got)
	}
	if got, _ := e.Raw("journal"); got != "Journal of Felines" {
		t.Errorf("Raw(journal) = %q", got)
	}
	if _, ok := e.Custom("journal"); ok {
		t.Error("Custom(journal) present, want only declared fields")
	}
	if year, _ := e.Year(); year != 2020 {
		t.Errorf("Year() = %d, want 2020", year)
	}

	if _, ok := b.Get("missing"); ok {
		t.Error("Get(missing) ok = true")
	}
}

func TestNew_EntriesReturnsCopy(t *testing.T) {
	t.Parallel()

	b := newTestBibliography(t)
	entries := b.Entries()
	entries[0] = nil

	if b.Entries()[0] == nil {
		t.Error("mutating Entries() result changed the bibliography")
	}
}

func TestNew_FieldNamesAreCaseInsensitive(t *testing.T) {
	t.Parallel()

	b := newTestBibliography(t, WithFields("TOPIC"))
	if got, ok := mustGet(t, b, "brown2018").Custom("topic"); !ok || got != "theory" {
		t.Errorf("Custom(topic) = %q, %v, want %q, true", got, ok, "theory")
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	dup := "@misc{a, title = {One}}\n@misc{a, title = {Two}}\n"

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"no source", []Option{WithStyle("apa")}, ErrNoSource},
		{"unknown style", []Option{WithText(testBib), WithStyle("chicago")}, ErrUnknownStyle},
		{"unparsable inline style", []Option{WithText(testBib), WithStyle("{{.Title")}, ErrUnknownStyle},
		{"duplicate key", []Option{WithText(dup)}, ErrDuplicateKey},
		{"missing asset path", []Option{WithText(testBib), WithAssetPath(filepath.Join(t.TempDir(), "nope"))}, ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_WithFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "refs.bib")
	if err := os.WriteFile(path, []byte(testBib), 0o600); err != nil {
		t.Fatal(err)
	}

	b, err := New(WithFile(path))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
	if b.Style() != DefaultStyle {
		t.Errorf("Style() = %q, want %q", b.Style(), DefaultStyle)
	}
}

func TestNew_WithFileReader(t *testing.T) {
	t.Parallel()

	var read []string
	reader := func(path string) (string, error) {
		read = append(read, path)
		return "@misc{x, title = {From Reader}}", nil
	}

	b, err := New(WithText("ignored"), WithFile("virtual.bib"), WithFileReader(reader))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if !slices.Equal(read, []string{"virtual.bib"}) {
		t.Errorf("reader calls = %v, want [virtual.bib]", read)
	}
	if got := mustGet(t, b, "x").Title(); got != "From Reader" {
		t.Errorf("Title() = %q, want %q", got, "From Reader")
	}
}

func TestNew_LastSourceWins(t *testing.T) {
	t.Parallel()

	reader := func(string) (string, error) {
		t.Error("file reader called after WithText")
		return "", nil
	}
	b, err := New(WithFile("refs.bib"), WithText(testBib), WithFileReader(reader))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
}

func TestNew_ReaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := New(WithFile("refs.bib"), WithFileReader(func(string) (string, error) { return "", boom }))
	if !errors.Is(err, boom) {
		t.Errorf("New() error = %v, want wrapped reader error", err)
	}
}

func TestBibliography_Filter(t *testing.T) {
	t.Parallel()

	b := newTestBibliography(t)

	tests := []struct {
		name     string
		criteria map[string]string
		want     []string
	}{
		{"empty criteria returns all", nil, []string{"smith2020", "brown2018", "notes"}},
		{"single field", map[string]string{"topic": "ml"}, []string{"smith2020", "notes"}},
		{"AND across fields", map[string]string{"topic": "ml", "code": "https://github.com/smith/cats"}, []string{"smith2020"}},
		{"exact match only", map[string]string{"topic": "M"}, []string{}},
		{"undeclared field never matches", map[string]string{"journal": "Journal of Felines"}, []string{}},
		{"field name case-insensitive", map[string]string{"Topic": "ml"}, []string{"smith2020", "notes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := keys(b.Filter(tt.criteria)); !slices.Equal(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	entry := func(key string, year int, topic string) *Entry {
		e := &Entry{key: key, custom: map[string]string{}}
		if year != 0 {
			e.year, e.hasYear = year, true
		}
		if topic != "" {
			e.custom["topic"] = topic
		}
		return e
	}
	input := []*Entry{
		entry("a", 2019, "nlp"),
		entry("b", 2021, ""),
		entry("c", 0, "cv"),
		entry("d", 2019, "cv"),
	}

	tests := []struct {
		name string
		opts SortOptions
		want []string
	}{
		{"default year desc", SortOptions{}, []string{"b", "a", "d", "c"}},
		{"year asc", SortOptions{Order: SortAsc}, []string{"c", "a", "d", "b"}},
		{"custom field asc", SortOptions{By: "topic", Order: SortAsc}, []string{"b", "c", "d", "a"}},
		{"custom field desc keeps ties in input order", SortOptions{By: "topic"}, []string{"a", "c", "d", "b"}},
		{"field name case-insensitive", SortOptions{By: "Topic", Order: SortAsc}, []string{"b", "c", "d", "a"}},
		{"year key case-insensitive", SortOptions{By: "YEAR", Order: SortAsc}, []string{"c", "a", "d", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Sort(input, tt.opts)
			if err != nil {
				t.Fatalf("Sort() error: %v", err)
			}
			if !slices.Equal(keys(got), tt.want) {
				t.Errorf("Sort() = %v, want %v", keys(got), tt.want)
			}
		})
	}

	if got := keys(input); !slices.Equal(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("input reordered to %v", got)
	}
}

func TestSort_InvalidOrder(t *testing.T) {
	t.Parallel()

	_, err := Sort(nil, SortOptions{Order: "sideways"})
	if !errors.Is(err, ErrInvalidSortOrder) {
		t.Errorf("Sort() error = %v, want ErrInvalidSortOrder", err)
	}
}
