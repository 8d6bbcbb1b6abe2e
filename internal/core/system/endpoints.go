package system

import (
	"context"
	"fmt"

	"github.com/nightconcept/fadp-go/internal/output"
)

// SystemLister lists saved systems.
type SystemLister interface {
	Load() ([]Endpoint, error)
}

// DestinationLister lists BTP destinations.
type DestinationLister interface {
	List(ctx context.Context) ([]Destination, error)
}

// EndpointsService resolves the endpoints offered when creating a project.
type EndpointsService struct {
	store        SystemLister
	destinations DestinationLister
	appStudio    bool

	endpoints []Endpoint
}

// NewEndpointsService reads destinations when appStudio is true and saved systems otherwise.
func NewEndpointsService(store SystemLister, destinations DestinationLister, appStudio bool) *EndpointsService {
	return &EndpointsService{store: store, destinations: destinations, appStudio: appStudio}
}

// Reset drops the cached endpoints.
func (s *EndpointsService) Reset() {
	s.endpoints = nil
}

// GetEndpoints returns the available endpoints, loading them on first use.
func (s *EndpointsService) GetEndpoints(ctx context.Context) ([]Endpoint, error) {
	if s.endpoints != nil {
		return s.endpoints, nil
	}

	var endpoints []Endpoint
	if s.appStudio {
		if s.destinations == nil {
			return nil, fmt.Errorf("no destination source configured")
		}
		destinations, err := s.destinations.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, d := range destinations {
			if d.IsAbapDestination() {
				endpoints = append(endpoints, d.Endpoint())
			}
		}
	} else {
		systems, err := s.store.Load()
		if err != nil {
			return nil, err
		}
		endpoints = systems
	}
	if endpoints == nil {
		endpoints = []Endpoint{}
	}
	output.Debug("loaded endpoints", "count", len(endpoints), "appStudio", s.appStudio)
	s.endpoints = endpoints
	return endpoints, nil
}

// GetSystemByName returns the endpoint called name or nil.
func (s *EndpointsService) GetSystemByName(ctx context.Context, name string) (*Endpoint, error) {
	endpoints, err := s.GetEndpoints(ctx)
	if err != nil {
		return nil, err
	}
	for i := range endpoints {
		if endpoints[i].Name == name {
			return &endpoints[i], nil
		}
	}
	return nil, nil
}

// GetSystemNames returns the display order of endpoint names.
func (s *EndpointsService) GetSystemNames(ctx context.Context) ([]string, error) {
	endpoints, err := s.GetEndpoints(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(endpoints))
	for _, e := range endpoints {
		names = append(names, e.Name)
	}
	return names, nil
}

// GetSystemRequiresAuth reports whether the user must enter credentials for name.
// Destinations need them when they carry no authentication of their own.
// Saved systems need them when they are unknown or have no stored credentials.
func (s *EndpointsService) GetSystemRequiresAuth(ctx context.Context, name string) (bool, error) {
	endpoint, err := s.GetSystemByName(ctx, name)
	if err != nil {
		return false, err
	}
	if s.appStudio {
		return endpoint != nil && endpoint.Authentication == AuthNoAuthentication, nil
	}
	if endpoint == nil {
		return true, nil
	}
	if endpoint.Authentication == AuthReentrance {
		return false, nil
	}
	return endpoint.Username == "" || endpoint.Password == "", nil
}
