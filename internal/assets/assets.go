package assets

// defaultLoader serves the package-level helpers.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in citation style by name.
// Returns ErrStyleNotFound if the style does not exist.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTheme loads a built-in CSS theme by name.
// Returns ErrThemeNotFound if the theme does not exist.
func LoadTheme(name string) (string, error) {
	return defaultLoader.LoadTheme(name)
}

// Styles lists the built-in citation style names.
func Styles() []string {
	return defaultLoader.Styles()
}

// Themes lists the built-in CSS theme names.
func Themes() []string {
	return defaultLoader.Themes()
}
