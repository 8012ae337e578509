// Package assets provides citation style templates, CSS themes and page
// templates for bibliography rendering.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in assets compiled into the binary
//	    ├── FilesystemLoader  - assets from a custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// Overriding one asset in a custom directory keeps every other built-in.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.tmpl   # citation style (html/template, one entry per execution)
//	├── themes/
//	│   └── {name}.css    # page theme for standalone documents
//	└── templates/
//	    └── {name}.html   # page templates (document, header)
//
// # Security
//
// Asset names are restricted to letters, digits, '-' and '_'.
// FilesystemLoader opens files with os.OpenInRoot, so symlinks cannot
// leave basePath.
package assets
