// Package pipeline turns document sources into HTML that a PDF backend can print.
//
// Stages:
//   - Markdown to HTML via goldmark (GFM, footnotes, chroma highlighting)
//   - DOCX body (parsed by go-stencil) to semantic HTML
//   - HTML split into top-level blocks for DOCX generation
//   - Layout rendering: a body fragment wrapped in a styled HTML5 document
//
// PDF generation itself lives in the root dokufy package drivers.
package pipeline
