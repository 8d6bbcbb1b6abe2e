package env

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nightconcept/fadp-go/internal/core/config"
	"github.com/nightconcept/fadp-go/internal/core/ui5version"
)

func TestVersions_ConfiguredHosts(t *testing.T) {
	cfg := config.Default()
	cfg.UI5.CDNURL = "https://cdn.example.com"
	cfg.UI5.VersionURL = "https://versions.example.com"

	s := (&Env{Config: cfg}).Versions()
	assert.Equal(t, "https://cdn.example.com", s.CDNURL)
	assert.Equal(t, "https://versions.example.com", s.NeoCDNURL)
	assert.Equal(t, ui5version.SnapshotCDNURL, s.SnapshotURL)

	defaults := (&Env{Config: config.Default()}).Versions()
	assert.Equal(t, ui5version.DefaultCDNURL, defaults.CDNURL)
	assert.Equal(t, ui5version.NeoCDNURL, defaults.NeoCDNURL)
}
