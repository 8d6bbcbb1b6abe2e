package projectaccess

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/fadp-go/internal/core/manifest"
)

func TestGetI18nPropertiesPaths(t *testing.T) {
	m, err := manifest.Parse([]byte(`{
	  "sap.app": {"id": "my.app", "i18n": {"bundleName": "my.app.i18n.app"}},
	  "sap.ui5": {"models": {
	    "i18n": {"type": "sap.ui.model.resource.ResourceModel", "settings": {"bundleName": "my.app.i18n.i18n"}},
	    "@i18n": {"type": "sap.ui.model.resource.ResourceModel", "uri": "i18n/i18n.properties"},
	    "": {"dataSource": "mainService"}
	  }}
	}`))
	require.NoError(t, err)

	webapp := filepath.Join("/p", "webapp")
	paths := GetI18nPropertiesPaths(filepath.Join(webapp, "manifest.json"), m)
	assert.Equal(t, filepath.Join(webapp, "i18n", "app.properties"), paths.SapApp)
	assert.Equal(t, map[string]string{
		"i18n":  filepath.Join(webapp, "i18n", "i18n.properties"),
		"@i18n": filepath.Join(webapp, "i18n", "i18n.properties"),
	}, paths.Models)
	assert.Equal(t, []string{"@i18n", "i18n"}, paths.SortedModelNames())
}

func TestGetI18nPropertiesPaths_Defaults(t *testing.T) {
	m, err := manifest.Parse([]byte(`{"sap.app": {"id": "my.app"}}`))
	require.NoError(t, err)

	paths := GetI18nPropertiesPaths(filepath.Join("/p", "webapp", "manifest.json"), m)
	assert.Equal(t, filepath.Join("/p", "webapp", "i18n", "i18n.properties"), paths.SapApp)
	assert.Empty(t, paths.Models)
}

func TestReadPropertiesFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"i18n.properties": "#XTIT: Title\nappTitle=Sales ${user}\n\nsave=Save\n"})

	entries, err := ReadPropertiesFile(filepath.Join(dir, "i18n.properties"))
	require.NoError(t, err)
	assert.Equal(t, []I18nEntry{
		{Key: "appTitle", Value: "Sales ${user}", Annotation: "XTIT: Title"},
		{Key: "save", Value: "Save"},
	}, entries)
}

func TestCreatePropertiesI18nEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "i18n", "i18n.properties")

	written, err := CreatePropertiesI18nEntries(path, []I18nEntry{{Key: "appTitle", Value: "Sales", Annotation: "XTIT"}})
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "#XTIT\nappTitle=Sales\n", readFile(t, path))

	written, err = CreatePropertiesI18nEntries(path, []I18nEntry{
		{Key: "appTitle", Value: "Other"},
		{Key: "multi", Value: "a\nb"},
	})
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "#XTIT\nappTitle=Sales\n\nmulti=a\\nb\n", readFile(t, path))

	written, err = CreatePropertiesI18nEntries(path, []I18nEntry{{Key: "multi", Value: "x"}})
	require.NoError(t, err)
	assert.False(t, written)

	entries, err := ReadPropertiesFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a\nb", entries[1].Value)
}

func TestCreatePropertiesI18nEntries_KeepsLeadingWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i18n.properties")

	written, err := CreatePropertiesI18nEntries(path, []I18nEntry{
		{Key: "indented", Value: "  indented"},
		{Key: "tabbed", Value: "\ttabbed"},
		{Key: "blank", Value: "   "},
		{Key: "path", Value: "C:\\temp"},
	})
	require.NoError(t, err)
	assert.True(t, written)
	assert.Contains(t, readFile(t, path), "indented=\\ \\ indented\n")

	entries, err := ReadPropertiesFile(path)
	require.NoError(t, err)
	values := map[string]string{}
	for _, e := range entries {
		values[e.Key] = e.Value
	}
	assert.Equal(t, map[string]string{
		"indented": "  indented",
		"tabbed":   "\ttabbed",
		"blank":    "   ",
		"path":     "C:\\temp",
	}, values)
}

func TestGetCapI18nFolder(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"srv/service.cds": "service S {}", "i18n/i18n.properties": ""})

	assert.Equal(t, filepath.Join(root, "i18n"), GetCapI18nFolder(root, filepath.Join("srv", "service.cds")))

	writeFiles(t, root, map[string]string{"srv/_i18n/i18n.properties": ""})
	assert.Equal(t, filepath.Join(root, "srv", "_i18n"), GetCapI18nFolder(root, filepath.Join(root, "srv", "service.cds")))

	empty := t.TempDir()
	assert.Equal(t, filepath.Join(empty, "_i18n"), GetCapI18nFolder(empty, "db/schema.cds"))
}

func TestCreateCapI18nEntries(t *testing.T) {
	root := t.TempDir()
	written, err := CreateCapI18nEntries(root, "srv/service.cds", []I18nEntry{{Key: "Books", Value: "Books"}})
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "Books=Books\n", readFile(t, filepath.Join(root, "_i18n", "i18n.properties")))
}
