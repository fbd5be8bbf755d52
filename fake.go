package dokufy

import (
	"context"
	"sync"
)

// Recorded method names. They match the Driver and DocxWriter methods and
// are stable across releases.
const (
	MethodHTMLToPDF  = "HTMLToPDF"
	MethodDocxToPDF  = "DocxToPDF"
	MethodHTMLToDocx = "HTMLToDocx"
)

// Call is one recorded driver invocation.
type Call struct {
	Method string
	Args   []any
}

// FakeDriver records conversions without touching the filesystem.
// It is always available and safe for concurrent use. Package dokufytest
// asserts over what it recorded.
type FakeDriver struct {
	settings DriverSettings

	mu    sync.Mutex
	calls []Call
	files []string
}

// NewFakeDriver returns an empty recording driver.
func NewFakeDriver(settings DriverSettings) *FakeDriver {
	return &FakeDriver{settings: settings.Clone()}
}

func (f *FakeDriver) Name() string { return DriverFake }

func (f *FakeDriver) Config() DriverSettings { return f.settings.Clone() }

// IsAvailable always reports true.
func (f *FakeDriver) IsAvailable(context.Context) bool { return true }

func (f *FakeDriver) Supports() []Format {
	return []Format{FormatHTML, FormatDocx, FormatXlsx, FormatPptx, FormatODT, FormatMarkdown}
}

// HTMLToPDF records the call and reports outputPath as generated.
func (f *FakeDriver) HTMLToPDF(_ context.Context, html, outputPath string) (string, error) {
	f.record(MethodHTMLToPDF, outputPath, html, outputPath)
	return outputPath, nil
}

// DocxToPDF records the call and reports outputPath as generated.
func (f *FakeDriver) DocxToPDF(_ context.Context, sourcePath, outputPath string) (string, error) {
	f.record(MethodDocxToPDF, outputPath, sourcePath, outputPath)
	return outputPath, nil
}

// HTMLToDocx records the call and reports outputPath as generated.
func (f *FakeDriver) HTMLToDocx(_ context.Context, html, outputPath string) (string, error) {
	f.record(MethodHTMLToDocx, outputPath, html, outputPath)
	return outputPath, nil
}

func (f *FakeDriver) record(method, output string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: method, Args: args})
	f.files = append(f.files, output)
}

// Calls returns the recorded calls in order.
func (f *FakeDriver) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// GeneratedFiles returns the output paths in call order.
func (f *FakeDriver) GeneratedFiles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.files...)
}

// Reset clears recorded calls and generated files.
func (f *FakeDriver) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
	f.files = nil
}
