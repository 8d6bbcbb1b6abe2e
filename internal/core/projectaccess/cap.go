package projectaccess

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/nightconcept/fadp-go/internal/output"
)

const (
	cdsCommand       = "cds"
	cdsPackage       = "@sap/cds"
	cdsGlobalDevKit  = "@sap/cds-dk (global)"
	cdsHomeKey       = "home"
	defaultSrvFolder = "srv"
	odataV4Prefix    = "/odata/v4/"
)

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// CommandRunner runs an external command in dir and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return out, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

// CdsVersionInfo maps the package names printed by "cds --version" to their
// versions. The "home" entry holds the installation folder.
type CdsVersionInfo map[string]string

// CapService is a service of a CAP model.
type CapService struct {
	Name    string
	URLPath string
}

// CapModel is the compiled CSN of a CAP project's services.
type CapModel struct {
	Model    map[string]any
	Services []CapService
}

// GetCdsVersionInfo runs "cds --version" in cwd and parses its output.
func GetCdsVersionInfo(ctx context.Context, runner CommandRunner, cwd string) (CdsVersionInfo, error) {
	out, err := runner.Run(ctx, cwd, cdsCommand, "--version")
	if err != nil {
		return nil, fmt.Errorf("failed to get cds version info: %w", err)
	}
	return ParseCdsVersionInfo(out), nil
}

// ParseCdsVersionInfo parses "key: value" lines and "| key | value |" table rows.
func ParseCdsVersionInfo(out []byte) CdsVersionInfo {
	info := CdsVersionInfo{}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		var key, value string
		if strings.HasPrefix(line, "|") {
			cells := strings.Split(strings.Trim(line, "|"), "|")
			if len(cells) < 2 {
				continue
			}
			key, value = cells[0], cells[1]
		} else {
			var ok bool
			if key, value, ok = strings.Cut(line, ":"); !ok {
				continue
			}
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" || value == "" || strings.Trim(key, "-") == "" {
			continue
		}
		info[key] = value
	}
	return info
}

// GetGlobalCdsPath returns the installation folder of the globally installed
// cds development kit, or "" when it is not installed.
func GetGlobalCdsPath(ctx context.Context, runner CommandRunner) (string, error) {
	info, err := GetCdsVersionInfo(ctx, runner, "")
	if err != nil {
		return "", err
	}
	if _, ok := info[cdsGlobalDevKit]; !ok {
		return "", nil
	}
	return info[cdsHomeKey], nil
}

// IsCdsVersionSupported reports whether the @sap/cds version in info is at least minVersion.
func IsCdsVersionSupported(info CdsVersionInfo, minVersion string) bool {
	current, err := semver.NewVersion(info[cdsPackage])
	if err != nil {
		return false
	}
	minimum, err := semver.NewVersion(minVersion)
	if err != nil {
		return false
	}
	return !current.LessThan(minimum)
}

// GetCapModelAndServices compiles the srv folder of the CAP project at root
// and returns the model with the URL path of each service.
func GetCapModelAndServices(ctx context.Context, runner CommandRunner, root string) (*CapModel, error) {
	out, err := runner.Run(ctx, root, cdsCommand, "compile", defaultSrvFolder, "--to", "json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile CAP model in %s: %w", root, err)
	}
	var model map[string]any
	if err := json.Unmarshal(out, &model); err != nil {
		return nil, fmt.Errorf("failed to parse CAP model of %s: %w", root, err)
	}

	definitions, _ := model["definitions"].(map[string]any)
	var services []CapService
	for name, raw := range definitions {
		def, ok := raw.(map[string]any)
		if !ok || def["kind"] != "service" {
			continue
		}
		services = append(services, CapService{Name: name, URLPath: ServiceURLPath(name, str(def["@path"]))})
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	output.Debug("Compiled CAP model", "root", root, "services", len(services))
	return &CapModel{Model: model, Services: services}, nil
}

// ServiceURLPath returns the OData V4 path a CAP service is served at. An
// absolute @path is used as is; otherwise the path is the @path or the
// kebab-case service name without the "Service" suffix below /odata/v4/.
func ServiceURLPath(name, annotatedPath string) string {
	if strings.HasPrefix(annotatedPath, "/") {
		return strings.TrimSuffix(annotatedPath, "/") + "/"
	}
	path := annotatedPath
	if path == "" {
		short := name
		if i := strings.LastIndex(short, "."); i >= 0 {
			short = short[i+1:]
		}
		if trimmed := strings.TrimSuffix(short, "Service"); trimmed != "" {
			short = trimmed
		}
		path = strings.ToLower(camelBoundary.ReplaceAllString(short, "$1-$2"))
	}
	return odataV4Prefix + strings.Trim(path, "/") + "/"
}
