package adpwriter

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nightconcept/fadp-go/internal/core/project"
	"github.com/nightconcept/fadp-go/internal/core/ui5version"
)

const ui5YamlHeader = "# yaml-language-server: $schema=https://sap.github.io/ui5-tooling/schema/ui5.yaml.json\n\n"

type ui5Yaml struct {
	SpecVersion string        `yaml:"specVersion"`
	Type        string        `yaml:"type"`
	Server      ui5YamlServer `yaml:"server"`
}

type ui5YamlServer struct {
	CustomMiddleware []middleware `yaml:"customMiddleware"`
}

type middleware struct {
	Name            string         `yaml:"name"`
	AfterMiddleware string         `yaml:"afterMiddleware"`
	Configuration   map[string]any `yaml:"configuration"`
}

type backend struct {
	Path        string `yaml:"path"`
	URL         string `yaml:"url,omitempty"`
	Client      string `yaml:"client,omitempty"`
	Destination string `yaml:"destination,omitempty"`
}

func newUI5Yaml(cfg *project.Config) ui5Yaml {
	target := map[string]any{}
	if cfg.Target.Destination != "" {
		target["destination"] = cfg.Target.Destination
	} else {
		target["url"] = cfg.Target.URL
		if cfg.Target.Client != "" {
			target["client"] = cfg.Target.Client
		}
	}

	version := ui5version.GetFormattedVersion(cfg.UI5.Version)
	url := cfg.UI5.URL
	if url == "" {
		url = ui5version.GetOfficialBaseUI5VersionURL(version)
	}

	middlewares := []middleware{
		{
			Name:            "fiori-tools-appreload",
			AfterMiddleware: "compression",
			Configuration: map[string]any{
				"port":  35729,
				"path":  "webapp",
				"delay": 300,
			},
		},
		{
			Name:            "fiori-tools-preview",
			AfterMiddleware: "fiori-tools-appreload",
			Configuration: map[string]any{
				"adp": map[string]any{
					"target":           target,
					"ignoreCertErrors": false,
				},
			},
		},
		{
			Name:            "fiori-tools-proxy",
			AfterMiddleware: "fiori-tools-preview",
			Configuration: map[string]any{
				"ignoreCertErrors": false,
				"ui5": map[string]any{
					"version": version,
					"path":    []string{"/resources", "/test-resources"},
					"url":     url,
				},
				"backend": []backend{{
					Path:        "/sap",
					URL:         cfg.Target.URL,
					Client:      cfg.Target.Client,
					Destination: cfg.Target.Destination,
				}},
			},
		},
	}
	if cfg.Options.TypeScript {
		middlewares = append(middlewares, middleware{
			Name:            "ui5-tooling-transpile-middleware",
			AfterMiddleware: "compression",
			Configuration: map[string]any{
				"debug":                 true,
				"excludePatterns":       []string{"/Component-preload.js"},
				"transformModulesToUI5": map[string]any{"overridesToOverride": true},
			},
		})
	}
	return ui5Yaml{SpecVersion: "3.0", Type: "application", Server: ui5YamlServer{CustomMiddleware: middlewares}}
}

func writeUI5Yaml(path string, cfg *project.Config) error {
	data, err := yaml.Marshal(newUI5Yaml(cfg))
	if err != nil {
		return fmt.Errorf("failed to encode ui5.yaml: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(ui5YamlHeader), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// canonical renders v as compact JSON with sorted keys, for comparisons.
func canonical(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
