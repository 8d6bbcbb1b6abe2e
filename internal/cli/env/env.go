// Package env wires the services used by the fadp commands from the global
// flags and config.toml.
package env

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/fadp-go/internal/core/config"
	"github.com/nightconcept/fadp-go/internal/core/prompts"
	"github.com/nightconcept/fadp-go/internal/core/system"
	"github.com/nightconcept/fadp-go/internal/core/ui5version"
)

// Names of the global flags.
const (
	ConfigDirFlag = "config-dir"
	VerboseFlag   = "verbose"
)

// NewPrompter creates the prompter used by interactive commands. Tests
// replace it with a prompts.StaticPrompter.
var NewPrompter = func() prompts.Prompter { return prompts.NewRunner() }

// Env holds the configuration and services of one command invocation.
type Env struct {
	ConfigDir string
	Config    *config.Config
	HTTP      *http.Client
	Out       io.Writer
	AppStudio bool
}

// FromContext loads the configuration selected by the global flags.
func FromContext(c *cli.Context) (*Env, error) {
	dir := c.String(ConfigDirFlag)
	if dir == "" {
		var err error
		if dir, err = config.DefaultDir(); err != nil {
			return nil, cli.Exit(fmt.Sprintf("Error: could not determine configuration directory: %v", err), 1)
		}
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("Error loading %s: %v", filepath.Join(dir, config.ConfigFileName), err), 1)
	}
	out := c.App.Writer
	if out == nil {
		out = os.Stdout
	}
	return &Env{
		ConfigDir: dir,
		Config:    cfg,
		HTTP:      &http.Client{Timeout: cfg.Timeout()},
		Out:       out,
		AppStudio: system.IsAppStudio(),
	}, nil
}

// Systems returns the store of saved systems.
func (e *Env) Systems() *system.Store {
	return system.NewStore(filepath.Join(e.ConfigDir, config.SystemsFileName))
}

// Endpoints returns the endpoint lookup for saved systems or, in SAP
// Business Application Studio, destinations.
func (e *Env) Endpoints() *system.EndpointsService {
	var destinations system.DestinationLister
	if e.AppStudio {
		destinations = system.NewDestinationsClient(e.Config.Destinations.URL, e.HTTP)
	}
	return system.NewEndpointsService(e.Systems(), destinations, e.AppStudio)
}

// Versions returns the UI5 version service with the configured CDNs.
func (e *Env) Versions() *ui5version.Service {
	s := ui5version.NewService(e.HTTP)
	if u := e.Config.UI5.CDNURL; u != "" {
		s.CDNURL = u
	}
	if u := e.Config.UI5.VersionURL; u != "" {
		s.NeoCDNURL = u
	}
	if u := e.Config.UI5.SnapshotURL; u != "" {
		s.SnapshotURL = u
	}
	return s
}

// Connect opens an ABAP provider for endpoint.
func (e *Env) Connect(endpoint system.Endpoint) prompts.Backend {
	return endpoint.Provider(e.HTTP)
}

// Endpoint resolves name to a saved system or destination. Unknown names are
// accepted when they are system URLs.
func (e *Env) Endpoint(c *cli.Context, name string) (*system.Endpoint, error) {
	endpoint, err := e.Endpoints().GetSystemByName(c.Context, name)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("Error resolving system '%s': %v", name, err), 1)
	}
	if endpoint != nil {
		return endpoint, nil
	}
	parsed, err := system.ParseSystemURL(name)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("Error: system '%s' is not saved and is not a valid URL.", name), 1)
	}
	return &system.Endpoint{Name: name, URL: parsed.URL, Client: parsed.Client}, nil
}
