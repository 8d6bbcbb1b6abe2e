// Package clitest provides a fake SAP system and helpers for testing the
// fadp commands.
package clitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"github.com/zalando/go-keyring"

	"github.com/nightconcept/fadp-go/internal/cli/env"
	"github.com/nightconcept/fadp-go/internal/core/abap"
	"github.com/nightconcept/fadp-go/internal/core/config"
)

// ManifestURL is where the fake system serves the sales app manifest.
const ManifestURL = "/sap/bc/ui5_ui5/sap/zsales/manifest.json"

// SalesManifest is the manifest of the only application of the fake system.
const SalesManifest = `{
  "sap.app": {
    "id": "my.sales.app",
    "title": "Manage Sales Orders",
    "ach": "SD-SLS",
    "dataSources": {"mainService": {"uri": "/sap/opu/odata/sap/SALES_SRV/", "type": "OData"}}
  },
  "sap.ui5": {
    "dependencies": {"minUI5Version": "1.96.0", "libs": {"sap.m": {}}},
    "rootView": {"viewName": "my.sales.app.view.App", "async": true},
    "models": {"": {"dataSource": "mainService"}}
  },
  "sap.fiori": {"registrationIds": ["F0842"]},
  "sap.ui.inbound": {}
}`

const versionJSON = `{
  "latest": {"version": "1.130.0", "support": "Maintenance", "lts": false},
  "1.120": {"version": "1.120.4", "support": "Maintenance", "lts": true}
}`

const neoAppJSON = `{
  "routes": [
    {"path": "/1.130.0", "target": {"type": "service", "name": "sapui5", "version": "1.130.0"}},
    {"path": "/1.120.4", "target": {"type": "service", "name": "sapui5", "version": "1.120.4"}},
    {"path": "/1.96.30", "target": {"type": "service", "name": "sapui5", "version": "1.96.30"}}
  ]
}`

// FakeSystem is an ABAP on-premise system that also serves the UI5 CDN documents.
type FakeSystem struct {
	*httptest.Server
	// Requests records the paths requested, in order.
	Requests []string
}

// NewFakeSystem starts a fake system closed at the end of the test.
func NewFakeSystem(t *testing.T) *FakeSystem {
	t.Helper()
	fs := &FakeSystem{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.Requests = append(fs.Requests, r.URL.Path)
		switch r.URL.Path {
		case abap.AtoSettingsPath:
			_, _ = w.Write([]byte(`<settings operationsType="P" tenantRole="0"/>`))
		case abap.UI5VersionPath:
			_, _ = w.Write([]byte("1.120.4"))
		case abap.AppIndexPath:
			results := []map[string]any{}
			if r.URL.Query().Get("fileType") == "appdescr" {
				results = append(results, map[string]any{
					"sap.app/id":                "my.sales.app",
					"sap.app/title":             "Manage Sales Orders",
					"sap.app/ach":               "SD-SLS",
					"sap.fiori/registrationIds": []string{"F0842"},
					"fileType":                  "appdescr",
					"url":                       "/sap/bc/ui5_ui5/sap/zsales",
					"repoName":                  "ZSALES",
				})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
		case abap.ManiFirstSupportPath:
			_, _ = w.Write([]byte(`{"isManiFirstSupported": true}`))
		case abap.AppInfoPath:
			_, _ = fmt.Fprintf(w, `{"my.sales.app": {"manifestUrl": %q}}`, ManifestURL)
		case ManifestURL:
			_, _ = w.Write([]byte(SalesManifest))
		case "/version.json":
			_, _ = w.Write([]byte(versionJSON))
		case "/neo-app.json":
			_, _ = w.Write([]byte(neoAppJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(fs.Server.Close)
	return fs
}

// ConfigDir writes a config.toml that points the UI5 CDNs at fs and a
// systems.toml with fs saved as "S4H" in client 100.
func (fs *FakeSystem) ConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.UI5.CDNURL = fs.URL
	cfg.UI5.VersionURL = fs.URL
	require.NoError(t, config.Write(dir, cfg))

	systems := fmt.Sprintf("[[system]]\nname = %q\nurl = %q\nclient = \"100\"\nauthentication = \"ReentranceTicket\"\n", "S4H", fs.URL)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SystemsFileName), []byte(systems), 0o600))
	return dir
}

// Run executes cmd inside a minimal app with the global flags and returns
// what the command wrote to the app writer.
func Run(t *testing.T, configDir string, cmd *cli.Command, args ...string) (string, error) {
	t.Helper()
	t.Setenv("H2O_URL", "")
	color.NoColor = true
	keyring.MockInit()

	var out bytes.Buffer
	app := &cli.App{
		Name:   "fadp",
		Writer: &out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: env.ConfigDirFlag},
			&cli.BoolFlag{Name: env.VerboseFlag},
		},
		Commands: []*cli.Command{cmd},
		ExitErrHandler: func(_ *cli.Context, _ error) {
			// keep urfave/cli from calling os.Exit
		},
	}
	fullArgs := append([]string{"fadp", "--" + env.ConfigDirFlag, configDir}, args...)
	err := app.Run(fullArgs)
	return out.String(), err
}
