// Package system resolves the backend systems an adaptation project can
// target: systems saved locally and BTP destinations in SAP Business
// Application Studio.
package system

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/nightconcept/fadp-go/internal/core/abap"
)

const (
	AuthNoAuthentication = "NoAuthentication"
	AuthBasic            = "BasicAuthentication"
	AuthReentrance       = "ReentranceTicket"
)

var clientPattern = regexp.MustCompile(`^\d{3}$`)

// Endpoint is a backend system or BTP destination.
type Endpoint struct {
	Name            string `toml:"name" json:"name"`
	URL             string `toml:"url" json:"url"`
	Client          string `toml:"client,omitempty" json:"client,omitempty"`
	Authentication  string `toml:"authentication,omitempty" json:"authentication,omitempty"`
	Username        string `toml:"username,omitempty" json:"username,omitempty"`
	Password        string `toml:"-" json:"-"`
	UserDisplayName string `toml:"user_display_name,omitempty" json:"userDisplayName,omitempty"`
	Destination     bool   `toml:"-" json:"destination"`
}

// DisplayName renders the endpoint for choice lists.
func (e Endpoint) DisplayName() string {
	if e.Client != "" {
		return fmt.Sprintf("%s (%s)", e.Name, e.Client)
	}
	return e.Name
}

// Provider builds an ABAP provider for the endpoint. Destinations are reached
// through the BAS destination proxy at https://<name>.dest.
func (e Endpoint) Provider(httpClient *http.Client) *abap.Provider {
	base := e.URL
	if e.Destination {
		base = fmt.Sprintf("https://%s.dest", e.Name)
	}
	p := abap.NewProvider(base, e.Client, httpClient)
	if e.Username != "" {
		p.WithCredentials(e.Username, e.Password)
	}
	return p
}

// IsAppStudio reports whether fadp runs inside SAP Business Application Studio.
func IsAppStudio() bool {
	return os.Getenv("H2O_URL") != ""
}

// ParsedSystemURL holds the parts of a system URL entered by a user.
type ParsedSystemURL struct {
	URL    string // scheme://host[:port] without path or query
	Client string // sap-client query value, if any
}

// ParseSystemURL normalizes a system URL and extracts its sap-client parameter.
func ParseSystemURL(raw string) (*ParsedSystemURL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("system URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse system URL '%s': %w", raw, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("unsupported system URL scheme '%s' in '%s'. Only http and https are supported", u.Scheme, raw)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("system URL '%s' has no host", raw)
	}

	client := u.Query().Get("sap-client")
	if client != "" && !clientPattern.MatchString(client) {
		return nil, fmt.Errorf("invalid sap-client '%s' in '%s': expected three digits", client, raw)
	}
	return &ParsedSystemURL{
		URL:    fmt.Sprintf("%s://%s", scheme, u.Host),
		Client: client,
	}, nil
}
