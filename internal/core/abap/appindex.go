package abap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// AppInfo is one entry of the ui5_app_info_json response.
type AppInfo struct {
	ManifestURL string `json:"manifestUrl"`
	Manifest    string `json:"manifest"`
	URL         string `json:"url"`
}

// ManifestLocation returns the manifest URL, preferring manifestUrl.
func (a AppInfo) ManifestLocation() string {
	if a.ManifestURL != "" {
		return a.ManifestURL
	}
	return a.Manifest
}

// GetAppInfo returns the app index information keyed by application id.
func (p *Provider) GetAppInfo(ctx context.Context, appID string) (map[string]AppInfo, error) {
	body, err := p.Get(ctx, AppInfoPath, url.Values{"id": {appID}})
	if err != nil {
		return nil, err
	}
	info := make(map[string]AppInfo)
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse app info for '%s': %w", appID, err)
	}
	return info, nil
}

// IsManiFirstSupported reports whether the application can be loaded manifest first.
func (p *Provider) IsManiFirstSupported(ctx context.Context, appID string) (bool, error) {
	body, err := p.Get(ctx, ManiFirstSupportPath, url.Values{"id": {appID}})
	if err != nil {
		return false, err
	}
	var resp struct {
		IsManiFirstSupported bool `json:"isManiFirstSupported"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("failed to parse manifest first support for '%s': %w", appID, err)
	}
	return resp.IsManiFirstSupported, nil
}

// Search queries the app index with filter values and returns the requested fields of every hit.
func (p *Provider) Search(ctx context.Context, filter map[string]string, fields []string) ([]map[string]any, error) {
	query := url.Values{}
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		query.Set(k, filter[k])
	}
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}

	body, err := p.Get(ctx, AppIndexPath, query)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse app index search result: %w", err)
	}
	return resp.Results, nil
}
