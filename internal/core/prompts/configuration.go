package prompts

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/nightconcept/fadp-go/internal/core/abap"
	"github.com/nightconcept/fadp-go/internal/core/i18n"
	"github.com/nightconcept/fadp-go/internal/core/manifest"
	"github.com/nightconcept/fadp-go/internal/core/project"
	"github.com/nightconcept/fadp-go/internal/core/sourceapp"
	"github.com/nightconcept/fadp-go/internal/core/system"
	"github.com/nightconcept/fadp-go/internal/core/ui5version"
	"github.com/nightconcept/fadp-go/internal/core/validators"
	"github.com/nightconcept/fadp-go/internal/output"
)

// EndpointLookup resolves the systems offered in the system question.
type EndpointLookup interface {
	GetSystemNames(ctx context.Context) ([]string, error)
	GetSystemByName(ctx context.Context, name string) (*system.Endpoint, error)
	GetSystemRequiresAuth(ctx context.Context, name string) (bool, error)
}

// VersionLookup resolves the UI5 versions offered for the project.
type VersionLookup interface {
	GetSystemVersion(ctx context.Context, provider ui5version.SystemVersionProvider) (string, error)
	GetRelevantVersions(ctx context.Context, systemVersion string, isCustomerBase bool) ([]string, error)
}

// Backend is a connected ABAP system.
type Backend interface {
	sourceapp.Searcher
	manifest.Provider
	ui5version.SystemVersionProvider
	IsAbapCloud(ctx context.Context) (bool, error)
}

// Connector opens a Backend for an endpoint. Credentials and client entered
// in the prompts are already applied to endpoint.
type Connector func(endpoint system.Endpoint) Backend

// ConfigurationDeps are the services used by the configuration questions.
type ConfigurationDeps struct {
	Endpoints      EndpointLookup
	Versions       VersionLookup
	Connect        Connector
	IsCustomerBase bool
}

// ConfigPrompter holds the state of the configuration questions. Answering
// the system question connects to the backend and loads the applications,
// answering the application question loads its manifest.
type ConfigPrompter struct {
	deps ConfigurationDeps

	endpoint      *system.Endpoint
	requiresAuth  bool
	backend       Backend
	manifests     *manifest.Service
	apps          []sourceapp.Application
	app           *sourceapp.Application
	systemVersion string
	isCloud       bool
}

// NewConfigPrompter creates a prompter for deps.
func NewConfigPrompter(deps ConfigurationDeps) *ConfigPrompter {
	return &ConfigPrompter{deps: deps}
}

// ConfigurationQuestions is a shortcut for NewConfigPrompter(deps).Questions().
func ConfigurationQuestions(deps ConfigurationDeps) []Question {
	return NewConfigPrompter(deps).Questions()
}

// Questions returns the system, client, username, password, application and
// ui5Version questions.
func (p *ConfigPrompter) Questions() []Question {
	return []Question{
		p.systemQuestion(),
		p.clientQuestion(),
		p.usernameQuestion(),
		p.passwordQuestion(),
		p.applicationQuestion(),
		p.ui5VersionQuestion(),
	}
}

func (p *ConfigPrompter) systemQuestion() Question {
	return Question{
		Type:    List,
		Name:    project.AnswerSystem,
		Message: i18n.T("prompts.system.message"),
		Guide:   i18n.T("prompts.system.guide"),
		Choices: func(ctx context.Context, _ Answers) ([]Choice, error) {
			names, err := p.deps.Endpoints.GetSystemNames(ctx)
			if err != nil {
				return nil, err
			}
			choices := make([]Choice, 0, len(names))
			for _, name := range names {
				choices = append(choices, Choice{Name: name, Value: name})
			}
			return choices, nil
		},
		Validate: func(ctx context.Context, value any, _ Answers) error {
			name := stringValue(value)
			if err := validators.ValidateEmptyString(name); err != nil {
				return err
			}
			return p.selectSystem(ctx, name)
		},
	}
}

func (p *ConfigPrompter) clientQuestion() Question {
	return Question{
		Type:    Input,
		Name:    project.AnswerClient,
		Message: i18n.T("prompts.client.message"),
		When: func(_ Answers) bool {
			return p.endpoint != nil && !p.endpoint.Destination && p.endpoint.Client == ""
		},
		Validate: func(ctx context.Context, value any, _ Answers) error {
			client := stringValue(value)
			if err := validators.ValidateClient(client); err != nil {
				return err
			}
			if p.requiresAuth {
				return nil
			}
			return p.connect(ctx, client, "", "")
		},
	}
}

func (p *ConfigPrompter) usernameQuestion() Question {
	return Question{
		Type:    Input,
		Name:    project.AnswerUsername,
		Message: i18n.T("prompts.username.message"),
		When:    func(_ Answers) bool { return p.requiresAuth },
		Validate: func(_ context.Context, value any, _ Answers) error {
			return validators.ValidateEmptyString(stringValue(value))
		},
	}
}

func (p *ConfigPrompter) passwordQuestion() Question {
	return Question{
		Type:    Password,
		Name:    project.AnswerPassword,
		Message: i18n.T("prompts.password.message"),
		When:    func(_ Answers) bool { return p.requiresAuth },
		Validate: func(ctx context.Context, value any, answers Answers) error {
			password := stringValue(value)
			if err := validators.ValidateEmptyString(password); err != nil {
				return err
			}
			return p.connect(ctx, answers.String(project.AnswerClient), answers.String(project.AnswerUsername), password)
		},
	}
}

func (p *ConfigPrompter) applicationQuestion() Question {
	return Question{
		Type:    List,
		Name:    project.AnswerApplication,
		Message: i18n.T("prompts.application.message"),
		Guide:   i18n.T("prompts.application.guide"),
		When:    func(_ Answers) bool { return p.backend != nil },
		Choices: func(_ context.Context, _ Answers) ([]Choice, error) {
			if len(p.apps) == 0 {
				return nil, i18n.Error("prompts.application.noApps")
			}
			choices := make([]Choice, 0, len(p.apps))
			for _, app := range p.apps {
				choices = append(choices, Choice{Name: app.DisplayName(), Value: app.ID})
			}
			return choices, nil
		},
		Validate: func(ctx context.Context, value any, _ Answers) error {
			id := stringValue(value)
			if err := validators.ValidateEmptyString(id); err != nil {
				return err
			}
			return p.selectApplication(ctx, id)
		},
	}
}

func (p *ConfigPrompter) ui5VersionQuestion() Question {
	var versions []string
	return Question{
		Type:    List,
		Name:    project.AnswerUI5Version,
		Message: i18n.T("prompts.ui5Version.message"),
		When:    func(_ Answers) bool { return p.backend != nil && !p.isCloud },
		Choices: func(ctx context.Context, _ Answers) ([]Choice, error) {
			var err error
			versions, err = p.deps.Versions.GetRelevantVersions(ctx, p.systemVersion, p.deps.IsCustomerBase)
			if err != nil {
				return nil, err
			}
			choices := make([]Choice, 0, len(versions))
			for _, v := range versions {
				choices = append(choices, Choice{Name: v, Value: ui5version.RemoveBracketsFromVersion(v)})
			}
			return choices, nil
		},
		Default: func(_ Answers) any {
			if len(versions) == 0 {
				return nil
			}
			return ui5version.RemoveBracketsFromVersion(versions[0])
		},
		Validate: func(_ context.Context, value any, _ Answers) error {
			return validators.ValidateEmptyString(stringValue(value))
		},
	}
}

func (p *ConfigPrompter) selectSystem(ctx context.Context, name string) error {
	p.reset()
	endpoint, err := p.deps.Endpoints.GetSystemByName(ctx, name)
	if err != nil {
		return err
	}
	if endpoint == nil {
		parsed, err := system.ParseSystemURL(name)
		if err != nil {
			return i18n.Error("prompts.system.unknown", "name", name)
		}
		endpoint = &system.Endpoint{Name: name, URL: parsed.URL, Client: parsed.Client}
	}
	requiresAuth, err := p.deps.Endpoints.GetSystemRequiresAuth(ctx, name)
	if err != nil {
		return err
	}
	p.endpoint = endpoint
	p.requiresAuth = requiresAuth
	if !requiresAuth && (endpoint.Destination || endpoint.Client != "") {
		return p.connect(ctx, "", "", "")
	}
	return nil
}

// connect opens the backend and loads the data the following questions need.
func (p *ConfigPrompter) connect(ctx context.Context, client, username, password string) error {
	endpoint := *p.endpoint
	if client != "" {
		endpoint.Client = client
	}
	if username != "" {
		endpoint.Username = username
		endpoint.Password = password
	}
	backend := p.deps.Connect(endpoint)

	isCloud, err := backend.IsAbapCloud(ctx)
	if err != nil {
		return connectionError(endpoint.Name, err)
	}
	apps, err := sourceapp.LoadApps(ctx, backend, p.deps.IsCustomerBase, isCloud)
	if err != nil {
		return connectionError(endpoint.Name, err)
	}
	systemVersion := ""
	if !isCloud {
		if systemVersion, err = p.deps.Versions.GetSystemVersion(ctx, backend); err != nil {
			output.Debug("System UI5 version not available", "system", endpoint.Name, "err", err)
		}
	}

	p.endpoint = &endpoint
	p.backend = backend
	p.isCloud = isCloud
	p.apps = apps
	p.systemVersion = systemVersion
	p.manifests = manifest.NewService(backend)
	output.Debug("Connected to system", "system", endpoint.Name, "cloud", isCloud, "apps", len(apps), "ui5", systemVersion)
	return nil
}

func connectionError(name string, err error) error {
	var status *abap.StatusError
	if errors.As(err, &status) && status.Unauthorized() {
		return i18n.Error("prompts.system.authenticationFailed", "name", name)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return i18n.Error("prompts.system.unreachable", "name", name)
	}
	return fmt.Errorf("failed to load applications from %s: %w", name, err)
}

func (p *ConfigPrompter) selectApplication(ctx context.Context, id string) error {
	var app *sourceapp.Application
	for i := range p.apps {
		if p.apps[i].ID == id {
			app = &p.apps[i]
			break
		}
	}
	if app == nil {
		return i18n.Error("prompts.application.unknown", "id", id)
	}
	if !p.isCloud {
		if err := p.manifests.IsAppSupported(ctx, id); err != nil {
			return err
		}
	}
	m, err := p.manifests.GetManifest(ctx, id)
	if err != nil {
		return err
	}
	if !manifest.IsSupportedAppTypeForAdp(manifest.GetApplicationType(m)) {
		return i18n.Error("prompts.application.unsupportedType", "id", id)
	}
	if manifest.IsSyncLoadedView(m) {
		output.Warn(i18n.T("prompts.application.syncViewsWarning"), "app", id)
	}
	p.app = app
	return nil
}

func (p *ConfigPrompter) reset() {
	p.endpoint = nil
	p.requiresAuth = false
	p.backend = nil
	p.manifests = nil
	p.apps = nil
	p.app = nil
	p.systemVersion = ""
	p.isCloud = false
}

// Endpoint returns the selected system with the entered client and credentials.
func (p *ConfigPrompter) Endpoint() *system.Endpoint { return p.endpoint }

// Application returns the selected base application.
func (p *ConfigPrompter) Application() *sourceapp.Application { return p.app }

// Manifest returns the manifest of the selected base application.
func (p *ConfigPrompter) Manifest() manifest.Manifest {
	if p.manifests == nil {
		return nil
	}
	return p.manifests.GetCachedManifest()
}

// SystemVersion returns the UI5 version of the connected system, if known.
func (p *ConfigPrompter) SystemVersion() string { return p.systemVersion }

// IsCloud reports whether the connected system is an ABAP Cloud system.
func (p *ConfigPrompter) IsCloud() bool { return p.isCloud }

// Apply copies the backend details of the prompts into cfg.
func (p *ConfigPrompter) Apply(cfg *project.Config) {
	if p.endpoint != nil {
		cfg.Target.System = p.endpoint.Name
		cfg.Target.Client = p.endpoint.Client
		if p.endpoint.Destination {
			cfg.Target.Destination = p.endpoint.Name
		} else {
			cfg.Target.URL = p.endpoint.URL
		}
	}
	if m := p.Manifest(); m != nil {
		cfg.App.Ach = m.Ach()
		cfg.App.AppType = string(manifest.GetApplicationType(m))
		cfg.UI5.MinVersion = m.MinUI5Version()
		if ids := m.RegistrationIDs(); len(ids) > 0 {
			cfg.App.FioriID = ids[0]
		}
	}
}
