package xsapp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xsApp = `{
  "welcomeFile": "/index.html",
  "authenticationMethod": "route",
  "routes": [
    {"source": "^/sap/(.*)$", "target": "/sap/$1", "destination": "S4H", "authenticationType": "xsuaa", "csrfProtection": false},
    {"source": "^/resources/(.*)$", "target": "/resources/$1", "destination": "ui5"},
    {"source": "^(.*)$", "target": "$1", "service": "html5-apps-repo-rt"}
  ]
}`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(xsApp), 0o644))

	app, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/index.html", app.WelcomeFile)
	require.Len(t, app.Routes, 3)
	require.NotNil(t, app.Routes[0].CSRFProtection)
	assert.False(t, *app.Routes[0].CSRFProtection)

	_, err = Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}

func TestValidateRoutes_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(xsApp), 0o644))
	app, err := Load(path)
	require.NoError(t, err)

	assert.Empty(t, ValidateRoutes(app, []string{"S4H", "ui5"}))
	assert.Empty(t, ValidateRoutes(app, nil), "destinations are not checked without a list")
}

func TestValidateRoutes_CollectsProblems(t *testing.T) {
	app := &App{
		WelcomeFile: "/index.html",
		Routes: []Route{
			{Target: "/x"},
			{Source: "^/sap/(.*)$", Destination: "MISSING"},
			{Source: "^/api/(.*)$"},
			{Source: "^/bad/(.*$", Destination: "S4H"},
		},
	}

	messages := ValidateRoutes(app, []string{"S4H"})
	require.Len(t, messages, 5)
	assert.Equal(t, "route 0 has no source", messages[0])
	assert.Equal(t, `route "^/sap/(.*)$" uses unknown destination "MISSING"`, messages[1])
	assert.Equal(t, `route "^/api/(.*)$" has neither a destination nor a service`, messages[2])
	assert.Contains(t, messages[3], "invalid source pattern")
	assert.Equal(t, `welcome file "/index.html" is not served by any route`, messages[4])
}
