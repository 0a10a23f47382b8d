package mdpreview

import (
	"errors"

	"github.com/alnah/go-mdpreview/internal/assets"
	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrInvalidEngine  = errors.New("invalid engine")
	ErrInternal       = errors.New("internal conversion error")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrStyleLoad        = errors.New("failed to load style")

	// Highlighting errors.
	ErrUnknownHighlightStyle = pipeline.ErrUnknownHighlightStyle
)
