package dokufy

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-dokufy/internal/fileutil"
	"github.com/alnah/go-dokufy/internal/hints"
)

// pdfRenderer renders an HTML file to PDF bytes. Tests substitute a mock.
type pdfRenderer interface {
	RenderFile(ctx context.Context, htmlPath string, layout PageLayout) ([]byte, error)
	Close() error
}

var _ pdfRenderer = (*rodRenderer)(nil)

// rodRenderer drives headless Chrome through go-rod. The browser starts on
// first use and is shared by every render until Close.
type rodRenderer struct {
	bin       string
	noSandbox bool
	timeout   time.Duration

	mu      sync.Mutex
	browser *rod.Browser
}

func newRodRenderer(bin string, noSandbox bool, timeout time.Duration) *rodRenderer {
	return &rodRenderer{bin: bin, noSandbox: noSandbox, timeout: timeout}
}

// browserPath returns the Chrome executable rod would launch, or false
// when none is installed.
func (r *rodRenderer) browserPath() (string, bool) {
	if r.bin != "" {
		return r.bin, fileutil.IsExecutable(r.bin)
	}
	return launcher.LookPath()
}

func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()
	if r.bin != "" {
		l = l.Bin(r.bin)
	}
	if r.noSandbox || hints.IsInContainer() {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to browser: %v", ErrConversionFailed, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: connecting to browser: %v", ErrConversionFailed, err)
	}
	r.browser = browser
	return browser, nil
}

// RenderFile opens htmlPath in a new tab and prints it with layout.
func (r *rodRenderer) RenderFile(ctx context.Context, htmlPath string, layout PageLayout) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + htmlPath})
	if err != nil {
		return nil, fmt.Errorf("%w: creating page: %v", ErrConversionFailed, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: loading page: %v", ErrConversionFailed, err)
	}

	reader, err := page.PDF(printOptions(layout))
	if err != nil {
		return nil, fmt.Errorf("%w: printing PDF: %v", ErrConversionFailed, err)
	}
	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrConversionFailed, err)
	}
	return pdf, nil
}

// printOptions maps a millimeter layout onto CDP's inch-based print options.
// Width and height are already swapped for landscape.
func printOptions(layout PageLayout) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(inches(layout.WidthMM)),
		PaperHeight:     floatPtr(inches(layout.HeightMM)),
		MarginTop:       floatPtr(inches(layout.Margins.Top)),
		MarginBottom:    floatPtr(inches(layout.Margins.Bottom)),
		MarginLeft:      floatPtr(inches(layout.Margins.Left)),
		MarginRight:     floatPtr(inches(layout.Margins.Right)),
		PrintBackground: true,
	}
}

// Close releases the browser.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}

func floatPtr(v float64) *float64 {
	return &v
}
