// Package assets provides the stylesheets and HTML layouts used when dokufy
// renders markup itself (Markdown templates, DOCX previews).
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader - built-in assets compiled in with go:embed
//	    ├── DirLoader      - assets under the configured templates directory
//	    └── Resolver       - DirLoader first, EmbeddedLoader as fallback
//
// # Directory Structure
//
//	{templates.path}/
//	├── styles/
//	│   └── {name}.css
//	└── layouts/
//	    └── {name}.html
//
// Asset names are validated to prevent path traversal, and DirLoader
// verifies resolved paths stay inside its base directory.
package assets

// Built-in asset names.
const (
	DefaultStyle  = "default"
	DefaultLayout = "document"
)
