// Package dokufytest provides test assertions over the calls recorded by
// dokufy.FakeDriver.
//
//	fake := d.Fake()
//	_, _ = d.HTML("<p>x</p>").ToPDF(ctx, "/tmp/a.pdf")
//	dokufytest.AssertPDFGenerated(t, fake)
//	dokufytest.AssertMethodCalled(t, fake, dokufy.MethodHTMLToPDF)
package dokufytest

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alnah/go-dokufy"
)

// Recorder exposes recorded driver activity. *dokufy.FakeDriver implements it.
type Recorder interface {
	Calls() []dokufy.Call
	GeneratedFiles() []string
}

// Faker hands out the fake driver installed by Fake. *dokufy.Dokufy implements it.
type Faker interface {
	FakeDriver() (*dokufy.FakeDriver, error)
}

// Fake returns the fake driver active on d. When d.Fake was never called it
// marks t failed with dokufy.ErrFakeNotActive and returns an empty recorder,
// so assertions chained on it fail as well.
func Fake(t testing.TB, d Faker) Recorder {
	t.Helper()
	f, err := d.FakeDriver()
	if err != nil {
		t.Error(err)
		return dokufy.NewFakeDriver(nil)
	}
	return f
}

// AssertGenerated fails t unless a file was generated at path.
func AssertGenerated(t testing.TB, r Recorder, path string) bool {
	t.Helper()
	return assert.Contains(t, r.GeneratedFiles(), path,
		fmt.Sprintf("Expected file to be generated at [%s], but it was not.", path))
}

// AssertPDFGenerated fails t unless some generated path ends in .pdf.
func AssertPDFGenerated(t testing.TB, r Recorder) bool {
	t.Helper()
	return assert.NotEmpty(t, withSuffix(r, ".pdf"),
		"Expected a PDF file to be generated, but none were.")
}

// AssertDocxGenerated fails t unless some generated path ends in .docx.
func AssertDocxGenerated(t testing.TB, r Recorder) bool {
	t.Helper()
	return assert.NotEmpty(t, withSuffix(r, ".docx"),
		"Expected a DOCX file to be generated, but none were.")
}

// AssertNothingGenerated fails t if any file was generated.
func AssertNothingGenerated(t testing.TB, r Recorder) bool {
	t.Helper()
	return assert.Empty(t, r.GeneratedFiles(),
		"Expected no files to be generated, but some were.")
}

// AssertMethodCalled fails t unless method was called. When args are
// given, one of the calls must have exactly those arguments.
func AssertMethodCalled(t testing.TB, r Recorder, method string, args ...any) bool {
	t.Helper()

	var matched []dokufy.Call
	for _, c := range r.Calls() {
		if c.Method == method {
			matched = append(matched, c)
		}
	}
	if !assert.NotEmpty(t, matched,
		fmt.Sprintf("Expected method [%s] to be called, but it was not.", method)) {
		return false
	}
	if len(args) == 0 {
		return true
	}

	found := false
	for _, c := range matched {
		if reflect.DeepEqual(c.Args, args) {
			found = true
			break
		}
	}
	return assert.True(t, found,
		fmt.Sprintf("Expected method [%s] to be called with specific arguments, but no matching call was found.", method))
}

func withSuffix(r Recorder, suffix string) []string {
	var out []string
	for _, p := range r.GeneratedFiles() {
		if strings.HasSuffix(p, suffix) {
			out = append(out, p)
		}
	}
	return out
}
