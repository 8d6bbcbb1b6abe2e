package projectaccess

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nightconcept/fadp-go/internal/core/manifest"
)

const (
	PackageJSON   = "package.json"
	ManifestJSON  = "manifest.json"
	UI5Yaml       = "ui5.yaml"
	defaultWebapp = "webapp"
)

// ProjectType classifies a project root.
type ProjectType string

const (
	EDMXBackend ProjectType = "EDMXBackend"
	CAPNodejs   ProjectType = "CAPNodejs"
	CAPJava     ProjectType = "CAPJava"
)

// ErrProjectRootNotFound is returned when no package.json is found above a path.
var ErrProjectRootNotFound = errors.New("could not find project root (package.json)")

var skipDirs = map[string]bool{"node_modules": true, ".git": true, "dist": true}

// AppResult is an application found by FindAllApps.
type AppResult struct {
	AppRoot      string
	ManifestPath string
	Manifest     manifest.Manifest
}

type packageJSON struct {
	Name            string            `json:"name"`
	SapUX           any               `json:"sapux"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Cds             map[string]any    `json:"cds"`
}

func (p packageJSON) hasDependency(name string) bool {
	_, dep := p.Dependencies[name]
	_, dev := p.DevDependencies[name]
	return dep || dev
}

// sapux is true or a list of app paths in Fiori projects.
func (p packageJSON) isSapUX() bool {
	switch v := p.SapUX.(type) {
	case bool:
		return v
	case []any:
		return true
	}
	return false
}

// FindProjectRoot walks up from path to the nearest folder with a
// package.json. With sapuxRequired the package.json must also declare sapux.
func FindProjectRoot(path string, sapuxRequired bool) (string, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, PackageJSON)
		if FileExists(candidate) {
			if !sapuxRequired {
				return dir, nil
			}
			var pkg packageJSON
			if err := ReadJSON(candidate, &pkg); err == nil && pkg.isSapUX() {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrProjectRootNotFound
		}
		dir = parent
	}
}

// FindAllApps walks down from each root and returns the applications whose
// manifest.json declares sap.app.id. node_modules, .git and dist are skipped.
func FindAllApps(roots []string) ([]AppResult, error) {
	var apps []AppResult
	seen := map[string]bool{}
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDirs[d.Name()] && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Name() != ManifestJSON || seen[path] {
				return nil
			}
			m, err := manifest.Load(path)
			if err != nil || m.ID() == "" {
				return nil
			}
			seen[path] = true
			apps = append(apps, AppResult{
				AppRoot:      GetAppRootFromWebappPath(filepath.Dir(path)),
				ManifestPath: path,
				Manifest:     m,
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search apps in %s: %w", root, err)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ManifestPath < apps[j].ManifestPath })
	return apps, nil
}

// GetAppRootFromWebappPath returns the first folder above webappPath that
// holds a ui5.yaml or package.json, or the parent of webappPath.
func GetAppRootFromWebappPath(webappPath string) string {
	dir := filepath.Clean(webappPath)
	for current := filepath.Dir(dir); ; {
		if FileExists(filepath.Join(current, UI5Yaml)) || FileExists(filepath.Join(current, PackageJSON)) {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return filepath.Dir(dir)
}

type ui5YamlConfig struct {
	Resources struct {
		Configuration struct {
			Paths struct {
				Webapp string `yaml:"webapp"`
			} `yaml:"paths"`
		} `yaml:"configuration"`
	} `yaml:"resources"`
}

// GetWebappPath returns the webapp folder of appRoot as configured in
// ui5.yaml, defaulting to appRoot/webapp.
func GetWebappPath(appRoot string) (string, error) {
	webapp := defaultWebapp
	data, err := os.ReadFile(filepath.Join(appRoot, UI5Yaml))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return "", fmt.Errorf("failed to read %s: %w", UI5Yaml, err)
	default:
		var cfg ui5YamlConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", filepath.Join(appRoot, UI5Yaml), err)
		}
		if p := cfg.Resources.Configuration.Paths.Webapp; p != "" {
			webapp = p
		}
	}
	return filepath.Join(appRoot, filepath.FromSlash(webapp)), nil
}

// GetProjectType classifies root as CAP Java, CAP Node.js or an EDMX backend project.
func GetProjectType(root string) (ProjectType, error) {
	for _, name := range []string{"application.yaml", "application.yml"} {
		if FileExists(filepath.Join(root, "srv", "src", "main", "resources", name)) {
			return CAPJava, nil
		}
	}
	pkgPath := filepath.Join(root, PackageJSON)
	if !FileExists(pkgPath) {
		return EDMXBackend, nil
	}
	var pkg packageJSON
	if err := ReadJSON(pkgPath, &pkg); err != nil {
		return "", err
	}
	if pkg.hasDependency("@sap/cds") || pkg.Cds != nil {
		return CAPNodejs, nil
	}
	return EDMXBackend, nil
}

// IsCapProject reports whether t is one of the CAP project types.
func (t ProjectType) IsCapProject() bool {
	return t == CAPNodejs || t == CAPJava
}

// GetAppProgrammingLanguage returns "TypeScript" or "JavaScript" depending on
// the sources in the app's webapp folder, or "" when there are none.
func GetAppProgrammingLanguage(appRoot string) (string, error) {
	webapp, err := GetWebappPath(appRoot)
	if err != nil {
		return "", err
	}
	if !FileExists(webapp) {
		return "", nil
	}
	var hasTS, hasJS bool
	err = filepath.WalkDir(webapp, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		switch {
		case strings.HasSuffix(path, ".d.ts"):
		case strings.HasSuffix(path, ".ts"):
			hasTS = true
		case strings.HasSuffix(path, ".js"):
			hasJS = true
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", webapp, err)
	}
	switch {
	case hasTS && FileExists(filepath.Join(appRoot, "tsconfig.json")):
		return "TypeScript", nil
	case hasJS:
		return "JavaScript", nil
	}
	return "", nil
}
