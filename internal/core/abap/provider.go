// Package abap talks to the ABAP system behind an adaptation project: the
// UI2 app index, the ADT file store and plain resource URLs.
package abap

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	AppInfoPath          = "/sap/bc/ui2/app_index/ui5_app_info_json"
	ManiFirstSupportPath = "/sap/bc/ui2/app_index/ui5_app_mani_first_supported/"
	AppIndexPath         = "/sap/bc/ui2/app_index/"
	UI5VersionPath       = "/sap/bc/adt/filestore/ui5-bsp/ui5-rt-version"
	AtoSettingsPath      = "/sap/bc/adt/ato/settings"
)

// Provider is an HTTP client bound to one ABAP system.
type Provider struct {
	BaseURL  string
	Client   string // sap-client, optional
	Username string
	Password string
	HTTP     *http.Client

	cloud *bool
}

// NewProvider creates a provider for baseURL using httpClient (nil means a client with a 30s timeout).
func NewProvider(baseURL, client string, httpClient *http.Client) *Provider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Provider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
		HTTP:    httpClient,
	}
}

// WithCredentials sets basic authentication for all requests.
func (p *Provider) WithCredentials(username, password string) *Provider {
	p.Username = username
	p.Password = password
	return p
}

func (p *Provider) resolve(pathOrURL string, query url.Values) (string, error) {
	var u *url.URL
	var err error
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		u, err = url.Parse(pathOrURL)
	} else {
		u, err = url.Parse(p.BaseURL + "/" + strings.TrimLeft(pathOrURL, "/"))
	}
	if err != nil {
		return "", fmt.Errorf("invalid request URL '%s': %w", pathOrURL, err)
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if p.Client != "" && q.Get("sap-client") == "" {
		q.Set("sap-client", p.Client)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Get performs a GET against a system relative path or an absolute URL and returns the body.
func (p *Provider) Get(ctx context.Context, pathOrURL string, query url.Values) ([]byte, error) {
	target, err := p.resolve(pathOrURL, query)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request to %s: %w", target, err)
	}
	if p.Username != "" {
		req.SetBasicAuth(p.Username, p.Password)
	}

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: target, Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// StatusError is returned for non 200 responses.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.Status)
}

// Unauthorized reports whether the system rejected the credentials.
func (e *StatusError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// GetUI5Version returns the UI5 runtime version installed on the system.
func (p *Provider) GetUI5Version(ctx context.Context) (string, error) {
	body, err := p.Get(ctx, UI5VersionPath, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

type atoSettings struct {
	XMLName        xml.Name `xml:"settings"`
	OperationsType string   `xml:"operationsType,attr"`
	TenantRole     string   `xml:"tenantRole,attr"`
}

// IsAbapCloud reports whether the system is an ABAP cloud system. The answer is cached.
func (p *Provider) IsAbapCloud(ctx context.Context) (bool, error) {
	if p.cloud != nil {
		return *p.cloud, nil
	}
	body, err := p.Get(ctx, AtoSettingsPath, nil)
	if err != nil {
		return false, err
	}
	var settings atoSettings
	if err := xml.Unmarshal(body, &settings); err != nil {
		return false, fmt.Errorf("failed to parse ATO settings: %w", err)
	}
	cloud := settings.OperationsType == "C"
	p.cloud = &cloud
	return cloud, nil
}
