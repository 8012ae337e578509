// Package config loads bib2html settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-bibhtml/internal/fileutil"
	"github.com/alnah/go-bibhtml/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrInvalidBadge    = errors.New("invalid badge")
)

// Field length limits.
const (
	MaxNameLength    = 64   // Field names, style and theme names
	MaxLabelLength   = 100  // Badge label
	MaxURLLength     = 2048 // Browser limit
	MaxPatternLength = 512  // Badge match pattern
	MaxTitleLength   = 200  // Document title
	MaxIntroLength   = 10000
	MaxPathLength    = 4096
)

// Config holds all configuration for bibliography rendering.
type Config struct {
	Style      string            `yaml:"style"`      // Built-in name, file path or inline template
	Fields     []string          `yaml:"fields"`     // Custom fields to preserve
	TitleLinks []string          `yaml:"titleLinks"` // nil = url, doi, arxiv; [] = disabled
	Badges     []Badge           `yaml:"badges"`
	List       string            `yaml:"list"` // "ol", "ul", "div" (default: "ol")
	Attributes map[string]any    `yaml:"attributes"`
	Linkify    *bool             `yaml:"linkify"` // nil = enabled
	Sort       SortConfig        `yaml:"sort"`
	Filter     map[string]string `yaml:"filter"`
	Document   DocumentConfig    `yaml:"document"`
	PDF        PDFConfig         `yaml:"pdf"`
	Assets     AssetsConfig      `yaml:"assets"`
	Output     OutputConfig      `yaml:"output"`
}

// Badge declares one field-derived link.
type Badge struct {
	Field string `yaml:"field"`
	Label string `yaml:"label"`
	URL   string `yaml:"url"`   // Template containing {value}
	Match string `yaml:"match"` // Optional regular expression
	Class string `yaml:"class"`
}

// SortConfig selects entry order.
type SortConfig struct {
	By    string `yaml:"by"`    // "year" or a custom field (default: "year")
	Order string `yaml:"order"` // "asc" or "desc" (default: "desc")
}

// DocumentConfig controls standalone HTML page output.
type DocumentConfig struct {
	Standalone bool   `yaml:"standalone"`
	Title      string `yaml:"title"`
	Intro      string `yaml:"intro"` // Markdown
	Theme      string `yaml:"theme"` // Theme name, CSS file path, or "none"
	CSS        string `yaml:"css"`   // Extra CSS file appended after the theme
	Lang       string `yaml:"lang"`
}

// PDFConfig controls PDF export.
type PDFConfig struct {
	Enabled   bool   `yaml:"enabled"`
	PageSize  string `yaml:"pageSize"` // "letter", "a4", "legal"
	Landscape bool   `yaml:"landscape"`
	Timeout   string `yaml:"timeout"` // Go duration, e.g. "30s"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded assets only
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source file
}

// CompileMatch compiles the badge's match pattern; nil when none is set.
func (b Badge) CompileMatch() (*regexp.Regexp, error) {
	if b.Match == "" {
		return nil, nil
	}
	re, err := regexp.Compile(b.Match)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBadge, b.Field, err)
	}
	return re, nil
}

// Validate checks field lengths and enumerated values.
// Called by LoadConfig; available to callers building a Config by hand.
func (c *Config) Validate() error {
	if err := validateFieldLength("style", c.Style, MaxURLLength*4); err != nil {
		return err
	}
	for i, f := range c.Fields {
		if err := validateFieldLength(fmt.Sprintf("fields[%d]", i), f, MaxNameLength); err != nil {
			return err
		}
	}
	for i, f := range c.TitleLinks {
		if err := validateFieldLength(fmt.Sprintf("titleLinks[%d]", i), f, MaxNameLength); err != nil {
			return err
		}
	}

	for i, b := range c.Badges {
		if err := b.validate(i); err != nil {
			return err
		}
	}

	if !oneOf(c.List, "", "ol", "ul", "div") {
		return fmt.Errorf("%w: list %q (must be ol, ul, or div)", ErrInvalidValue, c.List)
	}
	if !oneOf(c.Sort.Order, "", "asc", "desc") {
		return fmt.Errorf("%w: sort.order %q (must be asc or desc)", ErrInvalidValue, c.Sort.Order)
	}
	if err := validateFieldLength("sort.by", c.Sort.By, MaxNameLength); err != nil {
		return err
	}

	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.intro", c.Document.Intro, MaxIntroLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.theme", c.Document.Theme, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.css", c.Document.CSS, MaxPathLength); err != nil {
		return err
	}

	if !oneOf(strings.ToLower(c.PDF.PageSize), "", "letter", "a4", "legal") {
		return fmt.Errorf("%w: pdf.pageSize %q (must be letter, a4, or legal)", ErrInvalidValue, c.PDF.PageSize)
	}
	if c.PDF.Timeout != "" {
		d, err := time.ParseDuration(c.PDF.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: pdf.timeout %q (must be a positive duration)", ErrInvalidValue, c.PDF.Timeout)
		}
	}

	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

func (b Badge) validate(i int) error {
	prefix := fmt.Sprintf("badges[%d]", i)
	if b.Field == "" {
		return fmt.Errorf("%w: %s.field is required", ErrInvalidBadge, prefix)
	}
	if b.URL == "" {
		return fmt.Errorf("%w: %s.url is required", ErrInvalidBadge, prefix)
	}
	if err := validateFieldLength(prefix+".label", b.Label, MaxLabelLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".url", b.URL, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".match", b.Match, MaxPatternLength); err != nil {
		return err
	}
	_, err := b.CompileMatch()
	return err
}

// LinkifyEnabled reports whether bare-URL linkification is on.
func (c *Config) LinkifyEnabled() bool {
	return c.Linkify == nil || *c.Linkify
}

// PDFTimeout returns the configured timeout, or 0 when unset.
func (c *Config) PDFTimeout() time.Duration {
	d, _ := time.ParseDuration(c.PDF.Timeout)
	return d
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; a bare name is
// searched in the current directory, then in the user config directory.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a bare name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-bibhtml", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
