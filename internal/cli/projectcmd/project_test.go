package projectcmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/fadp-go/internal/cli/clitest"
)

type fakeRunner map[string]string

func (f fakeRunner) Run(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
	key := name
	for _, a := range args {
		key += " " + a
	}
	out, ok := f[key]
	if !ok {
		return nil, fmt.Errorf("unexpected command %q", key)
	}
	return []byte(out), nil
}

func useRunner(t *testing.T, r fakeRunner) {
	t.Helper()
	original := Runner
	Runner = r
	t.Cleanup(func() { Runner = original })
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

const salesManifest = `{
  "sap.app": {
    "id": "my.sales.app",
    "dataSources": {
      "mainService": {"uri": "/sap/opu/odata/sap/SALES_SRV/", "type": "OData",
        "settings": {"annotations": ["annotation"], "localUri": "localService/metadata.xml"}},
      "annotation": {"uri": "annotations/annotation.xml", "type": "ODataAnnotation"}
    }
  },
  "sap.ui5": {"models": {"": {"dataSource": "mainService"}}}
}`

func TestInfo_FioriProject(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json":                 `{"name": "sales", "sapux": true}`,
		"webapp/manifest.json":         salesManifest,
		"webapp/Component.ts":          "export default {}",
		"tsconfig.json":                "{}",
		"node_modules/x/manifest.json": `{"sap.app": {"id": "ignored"}}`,
	})

	out, err := clitest.Run(t, t.TempDir(), NewProjectCommand(), "project", "info", root)
	require.NoError(t, err)
	assert.Contains(t, out, "EDMXBackend")
	assert.Contains(t, out, "my.sales.app")
	assert.Contains(t, out, "TypeScript")
	assert.Contains(t, out, "mainService")
	assert.Contains(t, out, "webapp/i18n/i18n.properties")
	assert.NotContains(t, out, "ignored")
}

func TestInfo_CapProject(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json": `{"name": "bookshop", "dependencies": {"@sap/cds": "^8"}}`,
	})
	useRunner(t, fakeRunner{"cds --version": "@sap/cds: 8.3.1\n@sap/cds-dk: 8.3.0\n"})

	out, err := clitest.Run(t, t.TempDir(), NewProjectCommand(), "project", "info", root)
	require.NoError(t, err)
	assert.Contains(t, out, "CAPNodejs")
	assert.Contains(t, out, "8.3.1")
}

func TestInfo_NoProject(t *testing.T) {
	_, err := clitest.Run(t, t.TempDir(), NewProjectCommand(), "project", "info", t.TempDir())
	assert.Error(t, err)
}

func TestServices(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json":                   `{"name": "sales", "dependencies": {"@sap/cds": "^8"}}`,
		"app/sales/webapp/manifest.json": salesManifest,
		"app/sales/ui5.yaml":             "specVersion: '3.0'\n",
	})
	useRunner(t, fakeRunner{
		"cds compile srv --to json": `{"definitions": {"CatalogService": {"kind": "service"}, "Books": {"kind": "entity"}}}`,
	})

	out, err := clitest.Run(t, t.TempDir(), NewProjectCommand(), "project", "services", root)
	require.NoError(t, err)
	assert.Contains(t, out, "/sap/opu/odata/sap/SALES_SRV/")
	assert.Contains(t, out, "annotation")
	assert.Contains(t, out, "/odata/v4/catalog/")
	assert.NotContains(t, out, "Books")
}

const validXsApp = `{
  "welcomeFile": "/index.html",
  "routes": [
    {"source": "^/sap/(.*)$", "target": "/sap/$1", "destination": "S4H", "authenticationType": "none"},
    {"source": "^(.*)$", "target": "$1", "service": "html5-apps-repo-rt"}
  ]
}`

func TestRoutes_Valid(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json":       `{"name": "sales"}`,
		"webapp/xs-app.json": validXsApp,
	})

	out, err := clitest.Run(t, t.TempDir(), NewProjectCommand(), "project", "routes", "--destination", "S4H", root)
	require.NoError(t, err)
	assert.Contains(t, out, "html5-apps-repo-rt")
	assert.Contains(t, out, "webapp/xs-app.json is valid")
}

func TestRoutes_Problems(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json": `{"name": "sales"}`,
		"xs-app.json":  validXsApp,
	})

	out, err := clitest.Run(t, t.TempDir(), NewProjectCommand(), "project", "routes", "--destination", "Q42", root)
	require.Error(t, err)
	assert.Contains(t, out, `uses unknown destination "S4H"`)
}

func TestRoutes_Missing(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"package.json": `{"name": "sales"}`})

	_, err := clitest.Run(t, t.TempDir(), NewProjectCommand(), "project", "routes", root)
	assert.Error(t, err)
}
