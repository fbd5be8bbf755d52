package dokufy

import "errors"

// Sentinel errors for document generation.
// Callers match them with errors.Is; messages carry the wrapped detail.
var (
	ErrTemplateNotFound    = errors.New("template not found")
	ErrDriverNotFound      = errors.New("driver not found")
	ErrDriverNotConfigured = errors.New("driver not properly configured")
	ErrDriverUnavailable   = errors.New("driver not available")
	ErrConversionFailed    = errors.New("document conversion failed")
	ErrUnsupportedFormat   = errors.New("unsupported format")
	ErrConversionOutput    = errors.New("failed to write output")

	// Invalid-state errors.
	ErrNoContent        = errors.New("no template or HTML content has been set")
	ErrTemplateRequired = errors.New("a template is required for DOCX output")
	ErrFakeNotActive    = errors.New("no fake driver has been set, call Fake first")

	// Page settings errors.
	ErrInvalidMargin = errors.New("invalid margin")
)
