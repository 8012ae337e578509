package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-bibhtml/internal/yamlutil"
)

type badgeDoc struct {
	Field string `yaml:"field"`
	URL   string `yaml:"url"`
}

type configDoc struct {
	Style  string     `yaml:"style"`
	Fields []string   `yaml:"fields"`
	Badges []badgeDoc `yaml:"badges"`
}

const arxivConfig = "style: ieee\nfields: [arxiv, slides]\nbadges:\n  - field: arxiv\n    url: https://arxiv.org/abs/{value}\n"

// ---------------------------------------------------------------------------
// TestDecode - Strict decoding of configuration documents
// ---------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		data        []byte
		dest        any
		wantErr     error
		errContains string
	}{
		{"valid document", []byte(arxivConfig), &configDoc{}, nil, ""},
		{"empty document", nil, &configDoc{}, yamlutil.ErrEmptyDocument, ""},
		{"nil destination", []byte("style: apa"), nil, yamlutil.ErrNilDestination, ""},
		{"unknown key", []byte("style: apa\ncolour: red\n"), &configDoc{}, yamlutil.ErrSyntax, "colour"},
		{"duplicate key", []byte("style: apa\nstyle: ieee\n"), &configDoc{}, yamlutil.ErrSyntax, "style"},
		{"unclosed sequence", []byte("fields: [arxiv"), &configDoc{}, yamlutil.ErrSyntax, ""},
		{"oversized", []byte("style: " + strings.Repeat("x", yamlutil.MaxInputSize)), &configDoc{}, yamlutil.ErrInputTooLarge, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Decode(tt.data, tt.dest)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.errContains != "" && (err == nil || !strings.Contains(err.Error(), tt.errContains)) {
				t.Errorf("error = %v, want containing %q", err, tt.errContains)
			}
		})
	}
}

func TestDecode_Values(t *testing.T) {
	t.Parallel()

	var cfg configDoc
	if err := yamlutil.Decode([]byte(arxivConfig), &cfg); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if cfg.Style != "ieee" {
		t.Errorf("Style = %q, want ieee", cfg.Style)
	}
	if len(cfg.Fields) != 2 || cfg.Fields[1] != "slides" {
		t.Errorf("Fields = %v, want [arxiv slides]", cfg.Fields)
	}
	if len(cfg.Badges) != 1 || cfg.Badges[0].URL != "https://arxiv.org/abs/{value}" {
		t.Errorf("Badges = %+v, want one arxiv badge", cfg.Badges)
	}
}

// ---------------------------------------------------------------------------
// TestEncode - Output decodes back to the same document
// ---------------------------------------------------------------------------

func TestEncode(t *testing.T) {
	t.Parallel()

	in := configDoc{Style: "harvard", Fields: []string{"code"}, Badges: []badgeDoc{{Field: "code", URL: "{value}"}}}
	data, err := yamlutil.Encode(in)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.Contains(string(data), "style: harvard") {
		t.Errorf("Encode() = %q, want style key", data)
	}
	if !strings.Contains(string(data), "\n  - code") {
		t.Errorf("Encode() = %q, want indented sequence", data)
	}

	var out configDoc
	if err := yamlutil.Decode(data, &out); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if out.Style != in.Style || len(out.Fields) != 1 || len(out.Badges) != 1 {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
