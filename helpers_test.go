package dokufy

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"sync"
	"testing"
)

// mockRunner implements CommandRunner for testing.
type mockRunner struct {
	mu       sync.Mutex
	name     string
	args     []string
	stderr   string
	err      error
	produce  func(args []string) error
	runCount int
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runCount++
	m.name = name
	m.args = append([]string(nil), args...)
	if m.err != nil {
		return "", m.stderr, m.err
	}
	if m.produce != nil {
		if err := m.produce(args); err != nil {
			return "", err.Error(), err
		}
	}
	return "", m.stderr, nil
}

func (m *mockRunner) calledWith() (string, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name, m.args
}

// writeExecutable creates an executable stub file and returns its path.
func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("writing executable: %v", err)
	}
	return path
}

// writeTestDocx writes a minimal DOCX whose body holds the given paragraphs.
func writeTestDocx(t *testing.T, path string, paragraphs ...string) {
	t.Helper()

	body := ""
	for _, p := range paragraphs {
		body += "<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>"
	}
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`,
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating docx: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing docx: %v", err)
	}
}

// mockRenderer implements pdfRenderer without a browser.
type mockRenderer struct {
	mu     sync.Mutex
	pdf    []byte
	err    error
	html   string
	layout PageLayout
	closed bool
}

func (m *mockRenderer) RenderFile(_ context.Context, htmlPath string, layout PageLayout) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := os.ReadFile(htmlPath)
	if err != nil {
		return nil, err
	}
	m.html = string(data)
	m.layout = layout
	if m.err != nil {
		return nil, m.err
	}
	return m.pdf, nil
}

func (m *mockRenderer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockRenderer) seen() (string, PageLayout) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.html, m.layout
}

// assertCalled fails t unless calls holds method with exactly args.
func assertCalled(t *testing.T, calls []Call, method string, args ...any) {
	t.Helper()
	if !slices.ContainsFunc(calls, func(c Call) bool {
		return c.Method == method && reflect.DeepEqual(c.Args, args)
	}) {
		t.Errorf("no %s call with args %v; calls: %+v", method, args, calls)
	}
}
