package dokufy

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// DefaultFilename is sent when Stream or Download get an empty filename.
const DefaultFilename = "document.pdf"

// Stream renders a PDF and writes it to w for inline display.
func (d *Dokufy) Stream(ctx context.Context, w http.ResponseWriter, filename string) error {
	return d.serve(ctx, w, filename, "inline")
}

// Download renders a PDF and writes it to w as an attachment.
func (d *Dokufy) Download(ctx context.Context, w http.ResponseWriter, filename string) error {
	return d.serve(ctx, w, filename, "attachment")
}

// serve converts into a temporary file that is removed on every path,
// then copies it to w. Nothing is written to w when conversion fails.
func (d *Dokufy) serve(ctx context.Context, w http.ResponseWriter, filename, disposition string) error {
	if filename == "" {
		filename = DefaultFilename
	}
	tmpPath := filepath.Join(os.TempDir(), "dokufy_"+uuid.NewString()+".pdf")
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := d.ToPDF(ctx, tmpPath); err != nil {
		return err
	}

	f, err := os.Open(tmpPath) // #nosec G304 -- path generated above
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConversionOutput, tmpPath, err)
	}
	defer f.Close()

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": filename}))
	if info, err := f.Stat(); err == nil {
		h.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("streaming %s: %w", filename, err)
	}
	return nil
}
