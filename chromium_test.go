package dokufy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newChromiumTest(r *mockRenderer, found bool) *ChromiumDriver {
	d := NewChromiumDriver(DriverSettings{"timeout": 5}, DefaultConfig().PDF)
	d.renderer = r
	d.lookup = func() (string, bool) { return "/usr/bin/chromium", found }
	return d
}

// ---------------------------------------------------------------------------
// TestChromiumDriver_HTMLToPDF - Rendering through the browser
// ---------------------------------------------------------------------------

func TestChromiumDriver_HTMLToPDF(t *testing.T) {
	t.Parallel()

	r := &mockRenderer{pdf: []byte("%PDF-1.7")}
	d := newChromiumTest(r, true)
	out := filepath.Join(t.TempDir(), "nested", "page.pdf")

	got, err := d.HTMLToPDF(context.Background(), "<h1>Hi</h1>", out)
	if err != nil {
		t.Fatalf("HTMLToPDF() error = %v", err)
	}
	if got != out {
		t.Errorf("HTMLToPDF() = %q, want %q", got, out)
	}
	data, err := os.ReadFile(out)
	if err != nil || string(data) != "%PDF-1.7" {
		t.Errorf("output = %q, %v", data, err)
	}

	html, layout := r.seen()
	if html != "<h1>Hi</h1>" {
		t.Errorf("renderer saw %q", html)
	}
	if layout.WidthMM != 210 || layout.HeightMM != 297 {
		t.Errorf("layout = %+v, want A4", layout)
	}
	if layout.Margins.Top != 25.4 || layout.Margins.Left != 12.7 {
		t.Errorf("margins = %+v", layout.Margins)
	}
}

func TestChromiumDriver_Landscape(t *testing.T) {
	t.Parallel()

	r := &mockRenderer{pdf: []byte("%PDF")}
	d := newChromiumTest(r, true)
	d.pdf.Format = "Letter"
	d.pdf.Orientation = "landscape"

	if _, err := d.HTMLToPDF(context.Background(), "<p/>", filepath.Join(t.TempDir(), "out.pdf")); err != nil {
		t.Fatalf("HTMLToPDF() error = %v", err)
	}
	_, layout := r.seen()
	if !layout.Landscape || layout.WidthMM <= layout.HeightMM {
		t.Errorf("layout = %+v, want landscape", layout)
	}
}

func TestChromiumDriver_Errors(t *testing.T) {
	t.Parallel()

	renderErr := errors.New("browser crashed")

	tests := []struct {
		name    string
		mutate  func(d *ChromiumDriver)
		wantErr error
	}{
		{
			name:    "renderer failure passes through",
			mutate:  func(d *ChromiumDriver) { d.renderer = &mockRenderer{err: renderErr} },
			wantErr: renderErr,
		},
		{
			name:    "unknown page format",
			mutate:  func(d *ChromiumDriver) { d.pdf.Format = "B7" },
			wantErr: ErrConversionFailed,
		},
		{
			name:    "bad margin",
			mutate:  func(d *ChromiumDriver) { d.pdf.MarginTop = "wide" },
			wantErr: ErrConversionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newChromiumTest(&mockRenderer{pdf: []byte("%PDF")}, true)
			tt.mutate(d)
			_, err := d.HTMLToPDF(context.Background(), "<p/>", filepath.Join(t.TempDir(), "out.pdf"))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("HTMLToPDF() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChromiumDriver_DocxUnsupported(t *testing.T) {
	t.Parallel()

	d := newChromiumTest(&mockRenderer{}, true)
	_, err := d.DocxToPDF(context.Background(), "in.docx", "out.pdf")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("DocxToPDF() error = %v, want ErrUnsupportedFormat", err)
	}
	if SupportsFormat(d, FormatDocx) || !SupportsFormat(d, FormatHTML) {
		t.Errorf("Supports() = %v, want html only", d.Supports())
	}
}

func TestChromiumDriver_AvailabilityAndClose(t *testing.T) {
	t.Parallel()

	r := &mockRenderer{}
	if newChromiumTest(r, false).IsAvailable(context.Background()) {
		t.Error("IsAvailable() = true without a browser")
	}

	d := newChromiumTest(r, true)
	if !d.IsAvailable(context.Background()) {
		t.Error("IsAvailable() = false with a browser")
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !r.closed {
		t.Error("Close() did not close the renderer")
	}
}
