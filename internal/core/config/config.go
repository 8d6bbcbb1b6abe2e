package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const ConfigFileName = "config.toml"
const SystemsFileName = "systems.toml"

// HomeEnvVar overrides the directory holding fadp's configuration files.
const HomeEnvVar = "FADP_HOME"

const (
	LayerCustomerBase = "CUSTOMER_BASE"
	LayerVendor       = "VENDOR"
)

// Config represents the structure of config.toml.
type Config struct {
	Layer        string             `toml:"layer"`
	UI5          UI5Config          `toml:"ui5"`
	Destinations DestinationsConfig `toml:"destinations"`
	HTTP         HTTPConfig         `toml:"http"`
}

// UI5Config overrides the public UI5 CDN endpoints. CDNURL serves
// neo-app.json and the UI5 resources, VersionURL serves version.json.
type UI5Config struct {
	CDNURL      string `toml:"cdn_url,omitempty"`
	VersionURL  string `toml:"version_url,omitempty"`
	SnapshotURL string `toml:"snapshot_url,omitempty"`
}

// DestinationsConfig points at the BTP destination listing of SAP Business Application Studio.
type DestinationsConfig struct {
	URL string `toml:"url,omitempty"`
}

// HTTPConfig holds settings for outgoing requests.
type HTTPConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds,omitempty"`
}

// Default returns the configuration used when no config.toml exists.
func Default() *Config {
	return &Config{
		Layer: LayerCustomerBase,
		HTTP:  HTTPConfig{TimeoutSeconds: 30},
	}
}

// IsCustomerBase reports whether projects are created in the CUSTOMER_BASE layer.
func (c *Config) IsCustomerBase() bool {
	return c.Layer != LayerVendor
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.HTTP.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// DefaultDir returns the configuration directory, honouring FADP_HOME.
func DefaultDir() (string, error) {
	if dir := os.Getenv(HomeEnvVar); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "fadp"), nil
}

// Load reads config.toml from dirPath. A missing file yields the defaults.
func Load(dirPath string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filepath.Join(dirPath, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Layer == "" {
		cfg.Layer = LayerCustomerBase
	}
	return cfg, nil
}

// Write marshals cfg and writes it to dirPath, overwriting any existing file.
func Write(dirPath string, cfg *Config) error {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return err
	}
	fullPath := filepath.Join(dirPath, ConfigFileName)
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, err = file.Write(buf.Bytes())
	return err
}
