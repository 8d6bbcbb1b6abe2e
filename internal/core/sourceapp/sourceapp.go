// Package sourceapp lists the applications of a system that can be adapted.
package sourceapp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nightconcept/fadp-go/internal/output"
)

// Application is a candidate base application for an adaptation project.
type Application struct {
	ID                       string   `json:"id"`
	Title                    string   `json:"title"`
	Ach                      string   `json:"ach"`
	RegistrationIDs          []string `json:"registrationIds"`
	FileType                 string   `json:"fileType"`
	BspURL                   string   `json:"bspUrl"`
	BspName                  string   `json:"bspName"`
	CloudDevAdaptationStatus string   `json:"cloudDevAdaptationStatus,omitempty"`
}

// Searcher queries an app index.
type Searcher interface {
	Search(ctx context.Context, filter map[string]string, fields []string) ([]map[string]any, error)
}

// SearchFields are the app index fields mapped onto Application.
var SearchFields = []string{
	"sap.app/id",
	"sap.app/title",
	"sap.app/ach",
	"sap.fiori/registrationIds",
	"sap.fiori/cloudDevAdaptationStatus",
	"fileType",
	"url",
	"repoName",
}

// AppsFilter selects UI5 applications.
var AppsFilter = map[string]string{
	"sap.ui/technology": "UI5",
	"sap.app/type":      "application",
	"fileType":          "appdescr",
}

// VariantsFilter selects existing app variants.
var VariantsFilter = map[string]string{
	"sap.ui/technology": "UI5",
	"sap.app/type":      "application",
	"fileType":          "appdescr_variant",
}

// CloudFilter selects applications released for adaptation on cloud systems.
var CloudFilter = map[string]string{
	"sap.ui/technology":                  "UI5",
	"sap.app/type":                       "application",
	"fileType":                           "appdescr",
	"sap.fiori/cloudDevAdaptationStatus": "released",
}

// FromIndexEntry maps one app index result onto an Application.
func FromIndexEntry(entry map[string]any) Application {
	str := func(key string) string {
		s, _ := entry[key].(string)
		return s
	}
	app := Application{
		ID:                       str("sap.app/id"),
		Title:                    str("sap.app/title"),
		Ach:                      str("sap.app/ach"),
		FileType:                 str("fileType"),
		BspURL:                   str("url"),
		BspName:                  str("repoName"),
		CloudDevAdaptationStatus: str("sap.fiori/cloudDevAdaptationStatus"),
	}
	switch ids := entry["sap.fiori/registrationIds"].(type) {
	case []any:
		for _, id := range ids {
			if s, ok := id.(string); ok {
				app.RegistrationIDs = append(app.RegistrationIDs, s)
			}
		}
	case string:
		if ids != "" {
			app.RegistrationIDs = []string{ids}
		}
	}
	return app
}

// LoadApps queries the app index and returns the sorted candidate applications.
// Cloud systems only list released applications. On-premise systems list
// applications and, outside the customer layer, app variants as well.
func LoadApps(ctx context.Context, searcher Searcher, isCustomerBase, isCloud bool) ([]Application, error) {
	filters := []map[string]string{AppsFilter}
	if isCloud {
		filters = []map[string]string{CloudFilter}
	} else if !isCustomerBase {
		filters = append(filters, VariantsFilter)
	}

	var entries []map[string]any
	for _, filter := range filters {
		output.Debug("searching app index", "fileType", filter["fileType"])
		result, err := searcher.Search(ctx, filter, SearchFields)
		if err != nil {
			return nil, fmt.Errorf("failed to load applications: %w", err)
		}
		entries = append(entries, result...)
	}

	seen := make(map[string]bool)
	apps := make([]Application, 0, len(entries))
	for _, entry := range entries {
		app := FromIndexEntry(entry)
		if app.ID == "" || seen[app.ID] {
			continue
		}
		seen[app.ID] = true
		apps = append(apps, app)
	}
	Sort(apps)
	return apps, nil
}

// Sort orders applications by title, then id. Untitled applications come last.
func Sort(apps []Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		a, b := apps[i], apps[j]
		if (a.Title == "") != (b.Title == "") {
			return a.Title != ""
		}
		ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
		if ta != tb {
			return ta < tb
		}
		return strings.ToLower(a.ID) < strings.ToLower(b.ID)
	})
}

// Filter keeps applications whose id or title contains term, ignoring case.
func Filter(apps []Application, term string) []Application {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return apps
	}
	var out []Application
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.ID), term) || strings.Contains(strings.ToLower(app.Title), term) {
			out = append(out, app)
		}
	}
	return out
}

// DisplayName renders an application for a choice list.
func (a Application) DisplayName() string {
	if a.Title == "" {
		return a.ID
	}
	return fmt.Sprintf("%s (%s)", a.Title, a.ID)
}
