package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// dataSchema accepts any JSON object: placeholder data is keyed by name.
const dataSchema = `{"type": "object"}`

// placeholderData reads --data, or else --data-file. Missing files and
// payloads that are not JSON objects print a warning and yield no data.
func placeholderData(f *generateFlags, stderr io.Writer) map[string]any {
	switch {
	case f.data != "":
		data, err := decodeData([]byte(f.data))
		if err != nil {
			fmt.Fprintf(stderr, "warning: invalid JSON in --data (%v), ignoring\n", err)
			return map[string]any{}
		}
		return data
	case f.dataFile != "":
		raw, err := os.ReadFile(f.dataFile) // #nosec G304 -- user-supplied path
		if err != nil {
			fmt.Fprintf(stderr, "warning: data file not found: %s, ignoring\n", f.dataFile)
			return map[string]any{}
		}
		data, err := decodeData(raw)
		if err != nil {
			fmt.Fprintf(stderr, "warning: invalid JSON in data file (%v), ignoring\n", err)
			return map[string]any{}
		}
		return data
	default:
		return map[string]any{}
	}
}

// decodeData validates raw against dataSchema and decodes it.
func decodeData(raw []byte) (map[string]any, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(dataSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, err
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%s", strings.Join(msgs, "; "))
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}
