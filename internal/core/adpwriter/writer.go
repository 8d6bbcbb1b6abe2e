// Package adpwriter writes new adaptation projects and adds descriptor
// changes to existing ones.
package adpwriter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nightconcept/fadp-go/internal/core/project"
	"github.com/nightconcept/fadp-go/internal/core/projectaccess"
	"github.com/nightconcept/fadp-go/internal/output"
)

const (
	VariantFileName = "manifest.appdescr_variant"
	webappDir       = "webapp"
	i18nPath        = "i18n/i18n.properties"
	variantVersion  = "0.1.0"
)

// ErrTargetNotEmpty is returned when the project folder already has content.
var ErrTargetNotEmpty = errors.New("target folder is not empty")

// Generate writes a new adaptation project for cfg into basePath.
func Generate(basePath string, cfg *project.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid project configuration: %w", err)
	}
	entries, err := os.ReadDir(basePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", basePath, err)
	case len(entries) > 0:
		return fmt.Errorf("%s: %w", basePath, ErrTargetNotEmpty)
	}

	if err := os.MkdirAll(filepath.Join(basePath, webappDir, "i18n"), 0o755); err != nil {
		return fmt.Errorf("failed to create project folder: %w", err)
	}

	variantPath := filepath.Join(basePath, webappDir, VariantFileName)
	if err := projectaccess.WriteJSON(variantPath, NewVariant(cfg), "  "); err != nil {
		return err
	}
	if _, err := projectaccess.CreatePropertiesI18nEntries(filepath.Join(basePath, webappDir, filepath.FromSlash(i18nPath)), i18nEntries(cfg)); err != nil {
		return err
	}
	if err := writeUI5Yaml(filepath.Join(basePath, projectaccess.UI5Yaml), cfg); err != nil {
		return err
	}
	if err := projectaccess.WriteJSON(filepath.Join(basePath, projectaccess.PackageJSON), newPackageJSON(cfg), "  "); err != nil {
		return err
	}
	if cfg.Options.TypeScript {
		if err := projectaccess.WriteJSON(filepath.Join(basePath, "tsconfig.json"), newTSConfig(cfg), "  "); err != nil {
			return err
		}
	}
	if err := os.WriteFile(filepath.Join(basePath, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("failed to write .gitignore: %w", err)
	}
	output.Debug("Generated adaptation project", "path", basePath, "id", cfg.App.ID)
	return nil
}

const gitignore = `node_modules/
dist/
.tmp
.env
*.zip
`

func titleKey(cfg *project.Config) string {
	return cfg.App.ID + "_sap.app.title"
}

func i18nEntries(cfg *project.Config) []projectaccess.I18nEntry {
	title := cfg.App.Title
	if title == "" {
		title = cfg.ProjectName
	}
	return []projectaccess.I18nEntry{
		{Key: titleKey(cfg), Value: title, Annotation: "XTIT: Application name"},
	}
}

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Description     string            `json:"description"`
	Keywords        []string          `json:"keywords"`
	Scripts         map[string]string `json:"scripts"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func newPackageJSON(cfg *project.Config) packageJSON {
	pkg := packageJSON{
		Name:        cfg.ProjectName,
		Version:     variantVersion,
		Private:     true,
		Description: fmt.Sprintf("Adaptation of %s", cfg.App.Reference),
		Keywords:    []string{"ui5", "openui5", "sapui5", "adaptation-project"},
		Scripts: map[string]string{
			"start":         "fiori run --open /test/flp.html#app-preview",
			"start-editor":  "fiori run --open /test/adaptation-editor.html",
			"build":         "ui5 build --exclude-task=* --include-task=app-variant-bundler",
			"deploy":        "fiori deploy",
			"deploy-config": "fiori add deploy-config",
		},
		DevDependencies: map[string]string{
			"@sap/ux-ui5-tooling":              "1",
			"@ui5/cli":                         "^3.9.0",
			"@sap-ux/backend-proxy-middleware": "^0.8",
			"@sap-ux/preview-middleware":       "^0.16",
		},
	}
	if cfg.Options.TypeScript {
		pkg.Scripts["build"] = "npm run ts-typecheck && " + pkg.Scripts["build"]
		pkg.Scripts["ts-typecheck"] = "tsc --noEmit"
		pkg.DevDependencies["typescript"] = "^5.1.6"
		pkg.DevDependencies["ui5-tooling-transpile"] = "^3.3.7"
		pkg.DevDependencies["@sapui5/types"] = typesVersion(cfg.UI5.Version)
	}
	return pkg
}

// typesVersion returns the @sapui5/types version matching version.
func typesVersion(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 || strings.Contains(version, "snapshot") {
		return "latest"
	}
	return "~" + parts[0] + "." + parts[1] + ".0"
}

func newTSConfig(cfg *project.Config) map[string]any {
	return map[string]any{
		"compilerOptions": map[string]any{
			"target":           "es2022",
			"module":           "es2022",
			"skipLibCheck":     true,
			"allowJs":          true,
			"strict":           true,
			"strictNullChecks": false,
			"moduleResolution": "node",
			"outDir":           "./dist",
			"rootDir":          "./webapp",
			"types":            []string{"@sapui5/types"},
			"paths": map[string]any{
				cfg.App.ID + "/*": []string{"./webapp/*"},
			},
		},
		"include": []string{"./webapp/**/*"},
	}
}
