package system

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/nightconcept/fadp-go/internal/core/downloader"
)

// ListDestinationsPath is the BAS endpoint listing the subaccount destinations.
const ListDestinationsPath = "/reserved/api/listDestinations"

// Destination is a BTP destination as returned by BAS.
type Destination struct {
	Name           string `json:"Name"`
	Host           string `json:"Host"`
	Type           string `json:"Type"`
	Authentication string `json:"Authentication"`
	ProxyType      string `json:"ProxyType"`
	Description    string `json:"Description"`
	WebIDEUsage    string `json:"WebIDEUsage"`
	SapClient      string `json:"sap-client"`
}

// IsAbapDestination reports whether the destination can serve an ABAP system.
func (d Destination) IsAbapDestination() bool {
	usage := strings.ToLower(d.WebIDEUsage)
	return strings.Contains(usage, "odata_abap") || strings.Contains(usage, "dev_abap")
}

// Endpoint converts the destination into an Endpoint.
func (d Destination) Endpoint() Endpoint {
	return Endpoint{
		Name:           d.Name,
		URL:            d.Host,
		Client:         d.SapClient,
		Authentication: d.Authentication,
		Destination:    true,
	}
}

// DestinationsClient lists destinations of SAP Business Application Studio.
type DestinationsClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewDestinationsClient uses baseURL, or H2O_URL when baseURL is empty.
func NewDestinationsClient(baseURL string, httpClient *http.Client) *DestinationsClient {
	if baseURL == "" {
		baseURL = os.Getenv("H2O_URL")
	}
	return &DestinationsClient{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

// List returns all destinations.
func (c *DestinationsClient) List(ctx context.Context) ([]Destination, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("destination service URL is not configured")
	}
	var destinations []Destination
	if err := downloader.FetchJSON(ctx, c.HTTP, c.BaseURL+ListDestinationsPath, &destinations); err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	return destinations, nil
}
