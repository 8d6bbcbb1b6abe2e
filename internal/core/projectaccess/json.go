// Package projectaccess reads and updates SAP Fiori projects on disk: JSON
// and properties files, project and app discovery, manifest services and
// CAP projects.
package projectaccess

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const defaultIndent = "  "

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadJSON unmarshals the JSON file at path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// DetectIndent returns the indentation of the first indented line of data,
// or two spaces when there is none.
func DetectIndent(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || len(trimmed) == len(line) {
			continue
		}
		return line[:len(line)-len(trimmed)]
	}
	return defaultIndent
}

// WriteJSON writes v to path with the given indent and a trailing newline.
func WriteJSON(path string, v any, indent string) error {
	data, err := marshalJSON(v, indent)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// UpdateJSON reads the JSON object at path, applies mutate and writes it back
// keeping the file's indentation and trailing newline. Object keys are
// written in sorted order; numbers reach mutate as json.Number and are
// written back verbatim. A missing file is treated as an empty object.
func UpdateJSON(path string, mutate func(doc map[string]any) error) error {
	doc := map[string]any{}
	indent := defaultIndent
	trailingNewline := true

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", path, err)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		indent = DetectIndent(data)
		trailingNewline = bytes.HasSuffix(data, []byte("\n"))
	}

	if err := mutate(doc); err != nil {
		return err
	}

	out, err := marshalJSON(doc, indent)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if !trailingNewline {
		out = bytes.TrimSuffix(out, []byte("\n"))
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func marshalJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
