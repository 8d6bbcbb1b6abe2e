package projectaccess

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magiconair/properties"

	"github.com/nightconcept/fadp-go/internal/core/manifest"
	"github.com/nightconcept/fadp-go/internal/output"
)

const (
	defaultI18nPath   = "i18n/i18n.properties"
	resourceModelType = "sap.ui.model.resource.ResourceModel"
	capI18nFileName   = "i18n.properties"
)

// CapI18nFolders are the folders CAP searches for i18n bundles.
var CapI18nFolders = []string{"_i18n", "i18n", "assets/i18n"}

// I18nPropertiesPaths are the i18n files of an application.
type I18nPropertiesPaths struct {
	// SapApp is the bundle of the sap.app texts.
	SapApp string
	// Models maps resource model names to their bundle.
	Models map[string]string
}

// I18nEntry is one key of a properties bundle. Annotation is the comment
// written above the key, usually a text type such as XFLD.
type I18nEntry struct {
	Key        string
	Value      string
	Annotation string
}

// GetI18nPropertiesPaths resolves the i18n bundles declared in m, relative
// to the folder of manifestPath.
func GetI18nPropertiesPaths(manifestPath string, m manifest.Manifest) I18nPropertiesPaths {
	dir := filepath.Dir(manifestPath)
	paths := I18nPropertiesPaths{
		SapApp: filepath.Join(dir, filepath.FromSlash(defaultI18nPath)),
		Models: map[string]string{},
	}

	switch v := m.SapApp()["i18n"].(type) {
	case string:
		paths.SapApp = filepath.Join(dir, filepath.FromSlash(v))
	case map[string]any:
		if p := bundlePath(m.ID(), v); p != "" {
			paths.SapApp = filepath.Join(dir, p)
		}
	}

	for name, raw := range m.Models() {
		model, ok := raw.(map[string]any)
		if !ok || model["type"] != resourceModelType {
			continue
		}
		if uri, ok := model["uri"].(string); ok && uri != "" {
			paths.Models[name] = filepath.Join(dir, filepath.FromSlash(uri))
			continue
		}
		settings, _ := model["settings"].(map[string]any)
		if p := bundlePath(m.ID(), settings); p != "" {
			paths.Models[name] = filepath.Join(dir, p)
		}
	}
	return paths
}

// bundlePath converts bundleUrl or bundleName settings to a relative file path.
func bundlePath(appID string, settings map[string]any) string {
	if settings == nil {
		return ""
	}
	if u, ok := settings["bundleUrl"].(string); ok && u != "" {
		return filepath.FromSlash(u)
	}
	name, ok := settings["bundleName"].(string)
	if !ok || name == "" {
		return ""
	}
	name = strings.TrimPrefix(strings.TrimPrefix(name, appID), ".")
	return filepath.FromSlash(strings.ReplaceAll(name, ".", "/") + ".properties")
}

// ReadPropertiesFile returns the entries of a properties file in file order.
func ReadPropertiesFile(path string) ([]I18nEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	keys := props.Keys()
	entries := make([]I18nEntry, 0, len(keys))
	for _, key := range keys {
		value, _ := props.Get(key)
		entries = append(entries, I18nEntry{Key: key, Value: value, Annotation: props.GetComment(key)})
	}
	return entries, nil
}

// CreatePropertiesI18nEntries appends entries to the properties file at path,
// creating it when needed. Keys that already exist are skipped. It reports
// whether anything was written.
func CreatePropertiesI18nEntries(path string, entries []I18nEntry) (bool, error) {
	existing := map[string]bool{}
	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return false, fmt.Errorf("failed to create folder for %s: %w", path, err)
		}
	case err != nil:
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		current, err := ReadPropertiesFile(path)
		if err != nil {
			return false, err
		}
		for _, e := range current {
			existing[e.Key] = true
		}
	}

	var buf bytes.Buffer
	for _, e := range entries {
		if existing[e.Key] {
			output.Debug("Skipping existing i18n key", "key", e.Key, "file", path)
			continue
		}
		existing[e.Key] = true
		if buf.Len() > 0 || len(content) > 0 {
			buf.WriteString("\n")
		}
		if e.Annotation != "" {
			buf.WriteString("#" + e.Annotation + "\n")
		}
		buf.WriteString(e.Key + "=" + escapePropertyValue(e.Value) + "\n")
	}
	if buf.Len() == 0 {
		return false, nil
	}
	if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
		content = append(content, '\n')
	}
	if err := os.WriteFile(path, append(content, buf.Bytes()...), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

// escapePropertyValue escapes v for the value side of a properties line.
// Leading blanks are escaped since readers drop them after the separator.
func escapePropertyValue(v string) string {
	escaped := strings.NewReplacer("\\", "\\\\", "\r", "\\r", "\n", "\\n").Replace(v)
	var lead strings.Builder
	for i, r := range escaped {
		switch r {
		case ' ':
			lead.WriteString(`\ `)
		case '\t':
			lead.WriteString(`\t`)
		case '\f':
			lead.WriteString(`\f`)
		default:
			return lead.String() + escaped[i:]
		}
	}
	return lead.String()
}

// GetCapI18nFolder returns the i18n folder for cdsFile. The CAP folders are
// searched from the file's folder up to root; when none exists, root/_i18n
// is returned.
func GetCapI18nFolder(root, cdsFile string) string {
	root = filepath.Clean(root)
	dir := filepath.Dir(cdsFile)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	for {
		for _, folder := range CapI18nFolders {
			candidate := filepath.Join(dir, filepath.FromSlash(folder))
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				return candidate
			}
		}
		if dir == root || !strings.HasPrefix(dir, root) {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return filepath.Join(root, CapI18nFolders[0])
}

// CreateCapI18nEntries writes entries to the i18n bundle CAP uses for cdsFile.
func CreateCapI18nEntries(root, cdsFile string, entries []I18nEntry) (bool, error) {
	return CreatePropertiesI18nEntries(filepath.Join(GetCapI18nFolder(root, cdsFile), capI18nFileName), entries)
}

// SortedModelNames returns the model names of p in sorted order.
func (p I18nPropertiesPaths) SortedModelNames() []string {
	names := make([]string, 0, len(p.Models))
	for name := range p.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
