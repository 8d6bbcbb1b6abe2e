package ui5version

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"

	"github.com/nightconcept/fadp-go/internal/core/downloader"
	"github.com/nightconcept/fadp-go/internal/output"
)

// VersionDetail is one entry of version.json.
type VersionDetail struct {
	Version string `json:"version"`
	Support string `json:"support"`
	LTS     bool   `json:"lts"`
}

// PublicVersions maps a version name ("latest", "1.96", ...) to its details.
type PublicVersions map[string]VersionDetail

// Latest returns the version of the "latest" entry.
func (p PublicVersions) Latest() string {
	return p["latest"].Version
}

type neoApp struct {
	Routes []struct {
		Path   string `json:"path"`
		Target struct {
			Type    string `json:"type"`
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"target"`
	} `json:"routes"`
}

// SystemVersionProvider returns the UI5 version installed on a backend system.
type SystemVersionProvider interface {
	GetUI5Version(ctx context.Context) (string, error)
}

// Service fetches and caches public UI5 version metadata.
type Service struct {
	HTTP        *http.Client
	CDNURL      string
	NeoCDNURL   string
	SnapshotURL string

	public   PublicVersions
	released []string
}

// NewService creates a Service against the official CDNs.
func NewService(httpClient *http.Client) *Service {
	return &Service{
		HTTP:        httpClient,
		CDNURL:      DefaultCDNURL,
		NeoCDNURL:   NeoCDNURL,
		SnapshotURL: SnapshotCDNURL,
	}
}

// Reset drops the cached metadata.
func (s *Service) Reset() {
	s.public = nil
	s.released = nil
}

func (s *Service) load(ctx context.Context) error {
	if s.public != nil && s.released != nil {
		return nil
	}

	var public PublicVersions
	var app neoApp
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url := strings.TrimRight(s.NeoCDNURL, "/") + "/version.json"
		output.Debug("fetching public UI5 versions", "url", url)
		return downloader.FetchJSON(gctx, s.HTTP, url, &public)
	})
	g.Go(func() error {
		url := strings.TrimRight(s.CDNURL, "/") + "/neo-app.json"
		output.Debug("fetching released UI5 versions", "url", url)
		return downloader.FetchJSON(gctx, s.HTTP, url, &app)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load UI5 versions: %w", err)
	}

	s.public = public
	s.released = releasedVersions(app)
	return nil
}

// releasedVersions returns the distinct versions of neo-app.json, newest first.
func releasedVersions(app neoApp) []string {
	seen := make(map[string]bool)
	var parsed []*semver.Version
	for _, route := range app.Routes {
		raw := route.Target.Version
		if raw == "" || seen[raw] {
			continue
		}
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		seen[raw] = true
		parsed = append(parsed, v)
	}
	sort.Sort(sort.Reverse(semver.Collection(parsed)))

	versions := make([]string, 0, len(parsed))
	for _, v := range parsed {
		versions = append(versions, v.Original())
	}
	return versions
}

// GetPublicVersions returns the content of version.json.
func (s *Service) GetPublicVersions(ctx context.Context) (PublicVersions, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s.public, nil
}

// GetReleasedVersions returns all released versions, newest first.
func (s *Service) GetReleasedVersions(ctx context.Context) ([]string, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s.released, nil
}

// GetLatestVersion returns the latest public version.
func (s *Service) GetLatestVersion(ctx context.Context) (string, error) {
	if err := s.load(ctx); err != nil {
		return "", err
	}
	return s.public.Latest(), nil
}

// BaseURL returns the configured CDN serving version.
func (s *Service) BaseURL(version string) string {
	if IsSnapshot(version) {
		return s.SnapshotURL
	}
	return s.CDNURL
}

// GetSystemVersion reads the system's UI5 version. Values that do not look
// like a UI5 version yield "".
func (s *Service) GetSystemVersion(ctx context.Context, provider SystemVersionProvider) (string, error) {
	version, err := provider.GetUI5Version(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read the system UI5 version: %w", err)
	}
	return CheckSystemVersionPattern(version), nil
}

// GetVersionToBeUsed is GetVersionToBeUsed with the cached public metadata.
func (s *Service) GetVersionToBeUsed(ctx context.Context, version string, isCustomerBase bool) (string, error) {
	if err := s.load(ctx); err != nil {
		return "", err
	}
	return GetVersionToBeUsed(version, isCustomerBase, s.public.Latest(), s.released), nil
}

// GetRelevantVersions returns the labelled versions offered for a new project.
// Released versions below MinimumUI5Version or below the system version are
// left out. A snapshot system version is only offered outside the customer layer.
func (s *Service) GetRelevantVersions(ctx context.Context, systemVersion string, isCustomerBase bool) ([]string, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	latest := s.public.Latest()
	floor := semver.MustParse(MinimumUI5Version)

	var result []string
	system := CheckSystemVersionPattern(RemoveBracketsFromVersion(systemVersion))
	systemBase := ""
	if system != "" {
		if len(strings.Split(system, ".")) > 3 || IsSnapshot(system) {
			if !isCustomerBase {
				result = append(result, AddSnapshot(system, latest)+" "+SystemVersionLabel)
			}
		} else {
			systemBase = RemoveTimestampFromVersion(system)
			if v, err := semver.NewVersion(systemBase); err == nil && v.GreaterThan(floor) {
				floor = v
			}
			if !contains(s.released, systemBase) && !isCustomerBase {
				result = append(result, systemBase+" "+SystemVersionLabel)
			}
		}
	}

	for _, raw := range s.released {
		v, err := semver.NewVersion(raw)
		if err != nil || v.LessThan(floor) {
			continue
		}
		label := raw
		if raw == systemBase {
			label += " " + SystemVersionLabel
		}
		if raw == latest {
			label += " " + LatestLabel
		}
		result = append(result, label)
	}
	return result, nil
}
