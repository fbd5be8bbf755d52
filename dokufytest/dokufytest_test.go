package dokufytest

// Notes:
// - Assertion failures are observed through recordingT, which captures
//   Errorf instead of failing the enclosing test.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-dokufy"
)

// recordingT captures testify failures without failing the real test.
type recordingT struct {
	testing.TB
	mu     sync.Mutex
	errors []string
}

func (r *recordingT) Helper() {}

func (r *recordingT) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) Error(args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprint(args...))
}

func (r *recordingT) failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors) > 0
}

func (r *recordingT) output() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.errors, "\n")
}

func newFakeWithCalls(t *testing.T) *dokufy.FakeDriver {
	t.Helper()
	f := dokufy.NewFakeDriver(nil)
	ctx := context.Background()
	if _, err := f.HTMLToPDF(ctx, "<p>hi</p>", "/tmp/a.pdf"); err != nil {
		t.Fatalf("HTMLToPDF() error = %v", err)
	}
	if _, err := f.DocxToPDF(ctx, "/tmp/s.docx", "/tmp/b.docx"); err != nil {
		t.Fatalf("DocxToPDF() error = %v", err)
	}
	return f
}

// ---------------------------------------------------------------------------
// TestAssertions - Passing and failing assertions
// ---------------------------------------------------------------------------

func TestAssertions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		assert   func(r Recorder, rt *recordingT) bool
		wantPass bool
		wantMsg  string
	}{
		{
			name:     "generated at path",
			assert:   func(r Recorder, rt *recordingT) bool { return AssertGenerated(rt, r, "/tmp/a.pdf") },
			wantPass: true,
		},
		{
			name:    "not generated at path",
			assert:  func(r Recorder, rt *recordingT) bool { return AssertGenerated(rt, r, "/tmp/z.pdf") },
			wantMsg: "Expected file to be generated at [/tmp/z.pdf], but it was not.",
		},
		{
			name:     "pdf generated",
			assert:   func(r Recorder, rt *recordingT) bool { return AssertPDFGenerated(rt, r) },
			wantPass: true,
		},
		{
			name:     "docx generated",
			assert:   func(r Recorder, rt *recordingT) bool { return AssertDocxGenerated(rt, r) },
			wantPass: true,
		},
		{
			name:    "nothing generated fails",
			assert:  func(r Recorder, rt *recordingT) bool { return AssertNothingGenerated(rt, r) },
			wantMsg: "Expected no files to be generated, but some were.",
		},
		{
			name:     "method called",
			assert:   func(r Recorder, rt *recordingT) bool { return AssertMethodCalled(rt, r, dokufy.MethodDocxToPDF) },
			wantPass: true,
		},
		{
			name: "method called with args",
			assert: func(r Recorder, rt *recordingT) bool {
				return AssertMethodCalled(rt, r, dokufy.MethodHTMLToPDF, "<p>hi</p>", "/tmp/a.pdf")
			},
			wantPass: true,
		},
		{
			name: "method called with other args",
			assert: func(r Recorder, rt *recordingT) bool {
				return AssertMethodCalled(rt, r, dokufy.MethodHTMLToPDF, "<p>bye</p>", "/tmp/a.pdf")
			},
			wantMsg: "Expected method [HTMLToPDF] to be called with specific arguments, but no matching call was found.",
		},
		{
			name:    "method never called",
			assert:  func(r Recorder, rt *recordingT) bool { return AssertMethodCalled(rt, r, dokufy.MethodHTMLToDocx) },
			wantMsg: "Expected method [HTMLToDocx] to be called, but it was not.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFakeWithCalls(t)
			rt := &recordingT{TB: t}
			got := tt.assert(f, rt)

			if got != tt.wantPass || rt.failed() == tt.wantPass {
				t.Fatalf("assertion passed = %v (errors: %q), want pass = %v", got, rt.output(), tt.wantPass)
			}
			if tt.wantMsg != "" && !strings.Contains(rt.output(), tt.wantMsg) {
				t.Errorf("failure output missing %q:\n%s", tt.wantMsg, rt.output())
			}
		})
	}
}

func TestAssertions_AfterReset(t *testing.T) {
	t.Parallel()

	f := newFakeWithCalls(t)
	f.Reset()

	checks := map[string]func(rt *recordingT) bool{
		"generated": func(rt *recordingT) bool { return AssertGenerated(rt, f, "/tmp/a.pdf") },
		"pdf":       func(rt *recordingT) bool { return AssertPDFGenerated(rt, f) },
		"docx":      func(rt *recordingT) bool { return AssertDocxGenerated(rt, f) },
		"method":    func(rt *recordingT) bool { return AssertMethodCalled(rt, f, dokufy.MethodHTMLToPDF) },
	}
	for name, check := range checks {
		rt := &recordingT{TB: t}
		if check(rt) {
			t.Errorf("%s assertion passed after Reset", name)
		}
	}

	rt := &recordingT{TB: t}
	if !AssertNothingGenerated(rt, f) {
		t.Errorf("AssertNothingGenerated failed after Reset: %s", rt.output())
	}
}

// ---------------------------------------------------------------------------
// TestFake - Dokufy integration
// ---------------------------------------------------------------------------

func TestFake(t *testing.T) {
	t.Parallel()

	d, err := dokufy.New(dokufy.WithRegistry(dokufy.NewRegistry()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	d.Fake()
	ctx := context.Background()
	if _, err := d.HTML("<p>{{n}}</p>").Data(map[string]any{"n": 7}).ToPDF(ctx, "invoice.pdf"); err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if _, err := d.RenderDocx(ctx, "invoice.docx"); err != nil {
		t.Fatalf("RenderDocx() error = %v", err)
	}

	fake := Fake(t, d)
	AssertGenerated(t, fake, "invoice.pdf")
	AssertPDFGenerated(t, fake)
	AssertDocxGenerated(t, fake)
	AssertMethodCalled(t, fake, dokufy.MethodHTMLToPDF, "<p>7</p>", "invoice.pdf")
	AssertMethodCalled(t, fake, dokufy.MethodHTMLToDocx, "<p>7</p>", "invoice.docx")
}

func TestFake_NotActive(t *testing.T) {
	t.Parallel()

	d, err := dokufy.New(dokufy.WithRegistry(dokufy.NewRegistry()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	rt := &recordingT{TB: t}
	fake := Fake(rt, d)
	if !rt.failed() || !strings.Contains(rt.output(), dokufy.ErrFakeNotActive.Error()) {
		t.Errorf("Fake() output = %q, want %v", rt.output(), dokufy.ErrFakeNotActive)
	}
	if AssertPDFGenerated(rt, fake) {
		t.Error("AssertPDFGenerated() passed without a fake")
	}
	if _, err := d.FakeDriver(); !errors.Is(err, dokufy.ErrFakeNotActive) {
		t.Errorf("FakeDriver() error = %v, want ErrFakeNotActive", err)
	}
}
