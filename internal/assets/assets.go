package assets

import _ "embed"

//go:embed styles/default.css
var defaultStyle string

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// DefaultStyle returns the base stylesheet of every preview document.
func DefaultStyle() string {
	return defaultStyle
}

// ListStyles returns the names of the embedded styles, sorted.
func ListStyles() []string {
	return defaultLoader.ListStyles()
}
