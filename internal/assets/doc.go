// Package assets provides the CSS styles of the preview document.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// The "default" style is the fixed stylesheet every preview document starts
// with (see DefaultStyle). Other styles (print, dark, or custom ones) are
// appended after it. Styles rely on CSS custom properties (--md-fg, --md-bg,
// --md-accent, ...) so the embedding surface can theme the preview.
//
// # Directory Structure
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css
//
// # Security
//
// Style names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
