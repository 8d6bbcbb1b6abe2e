package manifest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nightconcept/fadp-go/internal/core/abap"
	"github.com/nightconcept/fadp-go/internal/core/i18n"
	"github.com/nightconcept/fadp-go/internal/output"
)

var (
	ErrManifestURLNotFound = i18n.Error("error.manifestUrlNotFound")
	ErrAppNotSupported     = i18n.Error("validators.appDoesNotSupportManifest")
)

// Provider is the part of the ABAP provider the service needs.
type Provider interface {
	GetAppInfo(ctx context.Context, appID string) (map[string]abap.AppInfo, error)
	IsManiFirstSupported(ctx context.Context, appID string) (bool, error)
	Get(ctx context.Context, pathOrURL string, query url.Values) ([]byte, error)
}

// Service loads and caches the manifest of the application being adapted.
type Service struct {
	provider Provider

	appID       string
	manifestURL string
	manifest    Manifest
}

// NewService creates a Service reading from provider.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Reset drops the cached manifest.
func (s *Service) Reset() {
	s.appID = ""
	s.manifestURL = ""
	s.manifest = nil
}

func (s *Service) cached(appID string) bool {
	return s.appID == appID && s.manifest != nil
}

// GetManifestURL returns the manifest URL registered in the app index.
func (s *Service) GetManifestURL(ctx context.Context, appID string) (string, error) {
	if s.appID == appID && s.manifestURL != "" {
		return s.manifestURL, nil
	}
	info, err := s.provider.GetAppInfo(ctx, appID)
	if err != nil {
		return "", fmt.Errorf("failed to read app index entry for '%s': %w", appID, err)
	}
	location := ""
	if entry, ok := info[appID]; ok {
		location = entry.ManifestLocation()
	} else if len(info) == 1 {
		// The app index may key a single result by its component name.
		for _, entry := range info {
			location = entry.ManifestLocation()
		}
	}
	if location == "" {
		return "", ErrManifestURLNotFound
	}
	if s.appID != appID {
		s.manifest = nil
	}
	s.appID = appID
	s.manifestURL = location
	return location, nil
}

// GetManifest returns the manifest of appID, fetching it on first use.
func (s *Service) GetManifest(ctx context.Context, appID string) (Manifest, error) {
	if s.cached(appID) {
		return s.manifest, nil
	}
	location, err := s.GetManifestURL(ctx, appID)
	if err != nil {
		return nil, err
	}
	output.Debug("fetching manifest", "app", appID, "url", location)
	body, err := s.provider.Get(ctx, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest of '%s': %w", appID, err)
	}
	m, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("manifest of '%s': %w", appID, err)
	}
	s.manifest = m
	return m, nil
}

// IsAppSupported checks that appID supports manifest first loading and has a manifest URL.
func (s *Service) IsAppSupported(ctx context.Context, appID string) error {
	supported, err := s.provider.IsManiFirstSupported(ctx, appID)
	if err != nil {
		return fmt.Errorf("failed to check manifest first support of '%s': %w", appID, err)
	}
	if !supported {
		return ErrAppNotSupported
	}
	_, err = s.GetManifestURL(ctx, appID)
	return err
}

// GetCachedRegistrationIDs returns the Fiori registration IDs of the cached manifest.
func (s *Service) GetCachedRegistrationIDs() []string {
	return s.manifest.RegistrationIDs()
}

// GetCachedACH returns the ACH code of the cached manifest.
func (s *Service) GetCachedACH() string {
	return s.manifest.Ach()
}

// GetCachedInboundIDs returns the inbound IDs of the cached manifest.
func (s *Service) GetCachedInboundIDs() []string {
	return s.manifest.InboundIDs()
}

// GetCachedApplicationType classifies the cached manifest.
func (s *Service) GetCachedApplicationType() ApplicationType {
	return GetApplicationType(s.manifest)
}

// GetCachedManifest returns the cached manifest or nil.
func (s *Service) GetCachedManifest() Manifest {
	return s.manifest
}
