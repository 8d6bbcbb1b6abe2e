package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Valid(t *testing.T) {
	tempDir := t.TempDir()
	content := `
layer = "VENDOR"

[ui5]
cdn_url = "https://cdn.example.com"
version_url = "https://versions.example.com"

[destinations]
url = "https://bas.example.com"

[http]
timeout_seconds = 5
`
	err := os.WriteFile(filepath.Join(tempDir, ConfigFileName), []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(tempDir)
	require.NoError(t, err)

	assert.Equal(t, LayerVendor, cfg.Layer)
	assert.False(t, cfg.IsCustomerBase())
	assert.Equal(t, "https://cdn.example.com", cfg.UI5.CDNURL)
	assert.Equal(t, "https://versions.example.com", cfg.UI5.VersionURL)
	assert.Equal(t, "https://bas.example.com", cfg.Destinations.URL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
}

func TestLoad_NotFoundReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, LayerCustomerBase, cfg.Layer)
	assert.True(t, cfg.IsCustomerBase())
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestLoad_InvalidFormat(t *testing.T) {
	tempDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tempDir, ConfigFileName), []byte("[ui5\ncdn_url = 1"), 0644)
	require.NoError(t, err)

	_, err = Load(tempDir)
	assert.Error(t, err)
}

func TestWrite_RoundTrip(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "nested")
	cfg := Default()
	cfg.UI5.SnapshotURL = "https://snapshot.example.com"

	require.NoError(t, Write(tempDir, cfg))

	loaded, err := Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "https://snapshot.example.com", loaded.UI5.SnapshotURL)
	assert.Equal(t, LayerCustomerBase, loaded.Layer)
}

func TestDefaultDir_HonoursEnv(t *testing.T) {
	t.Setenv(HomeEnvVar, "/tmp/fadp-home")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fadp-home", dir)
}
