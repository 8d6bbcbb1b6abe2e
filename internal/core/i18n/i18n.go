// Package i18n holds the user facing texts of fadp.
//
// Texts are read from the embedded messages bundle when the package is
// initialised. Placeholders use the {{name}} form.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

//go:embed messages/*.json
var bundleFS embed.FS

const defaultBundle = "messages/en.json"

var texts map[string]string

func init() {
	var err error
	texts, err = loadBundle(defaultBundle)
	if err != nil {
		panic(fmt.Sprintf("i18n: %v", err))
	}
}

// loadBundle reads a nested JSON bundle and flattens it to dotted keys.
func loadBundle(name string) (map[string]string, error) {
	data, err := bundleFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle %s: %w", name, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse bundle %s: %w", name, err)
	}
	flat := make(map[string]string)
	flatten("", raw, flat)
	return flat, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		}
	}
}

// T returns the text for key with {{k}} placeholders replaced by the
// following key/value pairs. Unknown keys are returned unchanged.
func T(key string, kv ...string) string {
	text, ok := texts[key]
	if !ok {
		return key
	}
	if len(kv) < 2 {
		return text
	}
	pairs := make([]string, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		pairs = append(pairs, "{{"+kv[i]+"}}", kv[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Has reports whether the bundle contains key.
func Has(key string) bool {
	_, ok := texts[key]
	return ok
}

// Error returns an error carrying the localized text for key.
func Error(key string, kv ...string) error {
	return errors.New(T(key, kv...))
}
