package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `{
  "_version": "1.32.0",
  "sap.app": {
    "id": "my.sales.app",
    "title": "{{appTitle}}",
    "ach": "SD-SLS",
    "type": "application",
    "dataSources": {
      "mainService": {"uri": "/sap/opu/odata/sap/SALES_SRV/", "type": "OData"}
    },
    "crossNavigation": {
      "inbounds": {
        "Sales-display": {"semanticObject": "Sales", "action": "display"},
        "Sales-create": {"semanticObject": "Sales", "action": "create"}
      }
    }
  },
  "sap.fiori": {"registrationIds": ["F1234", "F5678"], "archeType": "transactional"},
  "sap.ui5": {
    "rootView": {"viewName": "my.sales.app.view.App", "type": "XML", "async": true},
    "dependencies": {"minUI5Version": "1.96.0", "libs": {"sap.m": {}, "sap.ui.core": {}}},
    "models": {"": {"dataSource": "mainService"}}
  }
}`

func TestParse_Accessors(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "my.sales.app", m.ID())
	assert.Equal(t, "{{appTitle}}", m.Title())
	assert.Equal(t, "SD-SLS", m.Ach())
	assert.Equal(t, "1.96.0", m.MinUI5Version())
	assert.Equal(t, []string{"F1234", "F5678"}, m.RegistrationIDs())
	assert.Equal(t, []string{"Sales-create", "Sales-display"}, m.InboundIDs())
	assert.Equal(t, []string{"sap.m", "sap.ui.core"}, m.Libs())
	assert.Contains(t, m.DataSources(), "mainService")
	assert.Contains(t, m.Models(), "")
	assert.Equal(t, FreeStyle, GetApplicationType(m))
	assert.False(t, IsSyncLoadedView(m))
}

func TestAccessors_AreDefensive(t *testing.T) {
	m := Manifest{"sap.app": "not an object", "sap.fiori": map[string]any{"registrationIds": "F1"}}
	assert.Equal(t, "", m.ID())
	assert.Nil(t, m.RegistrationIDs())
	assert.Empty(t, m.InboundIDs())
	assert.Nil(t, m.SapUI5())

	var empty Manifest
	assert.Equal(t, "", empty.Ach())
	assert.Equal(t, "", empty.StringAt())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("{"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse manifest")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "my.sales.app", m.ID())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestGetApplicationType(t *testing.T) {
	tests := []struct {
		name string
		m    Manifest
		want ApplicationType
	}{
		{"empty", Manifest{}, None},
		{"ovp", Manifest{"sap.ovp": map[string]any{}}, FioriElementsOVP},
		{"generic app", Manifest{"sap.ui.generic.app": map[string]any{}}, FioriElements},
		{"v4", Manifest{"sap.ui5": map[string]any{"dependencies": map[string]any{"libs": map[string]any{"sap.fe.templates": map[string]any{}}}}}, FioriElements},
		{"smart template", Manifest{"sap.app": map[string]any{"sourceTemplate": map[string]any{"id": "ui5template.smartTemplate"}}}, FioriElements},
		{"free style", Manifest{"sap.app": map[string]any{"id": "x"}}, FreeStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetApplicationType(tt.m))
		})
	}
}

func TestIsSupportedAppTypeForAdp(t *testing.T) {
	assert.True(t, IsSupportedAppTypeForAdp(FreeStyle))
	assert.True(t, IsSupportedAppTypeForAdp(FioriElementsOVP))
	assert.False(t, IsSupportedAppTypeForAdp(None))
}

func TestIsSyncLoadedView(t *testing.T) {
	assert.True(t, IsSyncLoadedView(Manifest{"sap.ui5": map[string]any{"rootView": "my.view.App"}}))
	assert.True(t, IsSyncLoadedView(Manifest{"sap.ui5": map[string]any{"rootView": map[string]any{"viewName": "v"}}}))
	assert.False(t, IsSyncLoadedView(Manifest{"sap.ui5": map[string]any{"rootView": map[string]any{"async": true}}}))
	assert.False(t, IsSyncLoadedView(Manifest{}))
}
