// Package manifest reads SAP Fiori application descriptors (manifest.json).
//
// A Manifest is kept as a loosely typed JSON object. Accessors never fail:
// missing or mistyped keys yield zero values.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Manifest is a parsed manifest.json.
type Manifest map[string]any

// Parse decodes a manifest from JSON.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m == nil {
		m = Manifest{}
	}
	return m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Object returns the nested object at the given key path.
func (m Manifest) Object(path ...string) map[string]any {
	var current map[string]any = m
	for _, key := range path {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

// StringAt returns the string at the given key path.
func (m Manifest) StringAt(path ...string) string {
	if len(path) == 0 {
		return ""
	}
	parent := m.Object(path[:len(path)-1]...)
	s, _ := parent[path[len(path)-1]].(string)
	return s
}

// SapApp returns the "sap.app" section.
func (m Manifest) SapApp() map[string]any { return m.Object("sap.app") }

// SapUI5 returns the "sap.ui5" section.
func (m Manifest) SapUI5() map[string]any { return m.Object("sap.ui5") }

// SapFiori returns the "sap.fiori" section.
func (m Manifest) SapFiori() map[string]any { return m.Object("sap.fiori") }

// SapOvp returns the "sap.ovp" section.
func (m Manifest) SapOvp() map[string]any { return m.Object("sap.ovp") }

// ID returns sap.app/id.
func (m Manifest) ID() string { return m.StringAt("sap.app", "id") }

// Title returns sap.app/title.
func (m Manifest) Title() string { return m.StringAt("sap.app", "title") }

// Ach returns the application component hierarchy code (sap.app/ach).
func (m Manifest) Ach() string { return m.StringAt("sap.app", "ach") }

// MinUI5Version returns sap.ui5/dependencies/minUI5Version.
func (m Manifest) MinUI5Version() string {
	return m.StringAt("sap.ui5", "dependencies", "minUI5Version")
}

// RegistrationIDs returns sap.fiori/registrationIds.
func (m Manifest) RegistrationIDs() []string {
	return toStrings(m.SapFiori()["registrationIds"])
}

// InboundIDs returns the keys of sap.app/crossNavigation/inbounds, sorted.
func (m Manifest) InboundIDs() []string {
	inbounds := m.Object("sap.app", "crossNavigation", "inbounds")
	ids := make([]string, 0, len(inbounds))
	for id := range inbounds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DataSources returns sap.app/dataSources.
func (m Manifest) DataSources() map[string]any {
	return m.Object("sap.app", "dataSources")
}

// Models returns sap.ui5/models.
func (m Manifest) Models() map[string]any {
	return m.Object("sap.ui5", "models")
}

// Libs returns the library names of sap.ui5/dependencies/libs.
func (m Manifest) Libs() []string {
	libs := m.Object("sap.ui5", "dependencies", "libs")
	names := make([]string, 0, len(libs))
	for name := range libs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func toStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}
