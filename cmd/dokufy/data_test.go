package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDecodeData - JSON object validation
// ---------------------------------------------------------------------------

func TestDecodeData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr bool
		wantKey string
	}{
		{name: "object", raw: `{"name": "Ada", "total": 12.5}`, wantKey: "name"},
		{name: "empty object", raw: `{}`},
		{name: "array", raw: `[1, 2]`, wantErr: true},
		{name: "string", raw: `"Ada"`, wantErr: true},
		{name: "malformed", raw: `{"name":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := decodeData([]byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Errorf("decodeData(%s) = %v, want error", tt.raw, data)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeData(%s) error = %v", tt.raw, err)
			}
			if tt.wantKey != "" {
				if _, ok := data[tt.wantKey]; !ok {
					t.Errorf("decodeData(%s) = %v, missing %q", tt.raw, data, tt.wantKey)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPlaceholderData - Flag sources and warnings
// ---------------------------------------------------------------------------

func TestPlaceholderData(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, filepath.Join(dir, "good.json"), `{"city": "Lyon"}`)
	bad := writeFile(t, filepath.Join(dir, "bad.json"), `city: Lyon`)

	tests := []struct {
		name        string
		flags       generateFlags
		wantCity    string
		wantWarning string
	}{
		{name: "nothing"},
		{name: "inline", flags: generateFlags{data: `{"city": "Paris"}`}, wantCity: "Paris"},
		{name: "file", flags: generateFlags{dataFile: good}, wantCity: "Lyon"},
		{name: "inline before file", flags: generateFlags{data: `{"city": "Nice"}`, dataFile: good}, wantCity: "Nice"},
		{name: "invalid inline", flags: generateFlags{data: `nope`}, wantWarning: "warning: invalid JSON in --data"},
		{name: "missing file", flags: generateFlags{dataFile: filepath.Join(dir, "none.json")}, wantWarning: "warning: data file not found"},
		{name: "invalid file", flags: generateFlags{dataFile: bad}, wantWarning: "warning: invalid JSON in data file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			data := placeholderData(&tt.flags, &stderr)

			if data == nil {
				t.Fatal("placeholderData() = nil, want empty map")
			}
			if got, _ := data["city"].(string); got != tt.wantCity {
				t.Errorf("city = %q, want %q", got, tt.wantCity)
			}
			if tt.wantWarning == "" && stderr.Len() > 0 {
				t.Errorf("unexpected warning: %q", stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.wantWarning) {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantWarning)
			}
		})
	}
}
