package projectaccess

import (
	"path/filepath"
	"sort"

	"github.com/nightconcept/fadp-go/internal/core/manifest"
)

const defaultODataVersion = "2.0"

// Annotation is an annotation data source referenced by a service.
type Annotation struct {
	Name  string
	URI   string
	Local string
}

// ServiceSpec is an OData data source of an application.
type ServiceSpec struct {
	Name         string
	URI          string
	Local        string
	ODataVersion string
	Annotations  []Annotation
}

// GetMainService returns the name of the application's main data source:
// the OVP global filter model or the data source of the default model.
func GetMainService(m manifest.Manifest) string {
	if ovp := m.SapOvp(); ovp != nil {
		if name, ok := ovp["globalFilterModel"].(string); ok && name != "" {
			return name
		}
	}
	if model, ok := m.Models()[""].(map[string]any); ok {
		if ds, ok := model["dataSource"].(string); ok {
			return ds
		}
	}
	return ""
}

// GetServicesAndAnnotations lists the OData data sources of m with their
// annotations. Local paths are resolved against the folder of manifestPath.
func GetServicesAndAnnotations(manifestPath string, m manifest.Manifest) []ServiceSpec {
	dir := filepath.Dir(manifestPath)
	sources := m.DataSources()

	var services []ServiceSpec
	for name, raw := range sources {
		ds, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if t, ok := ds["type"].(string); ok && t != "OData" {
			continue
		}
		settings, _ := ds["settings"].(map[string]any)
		spec := ServiceSpec{
			Name:         name,
			URI:          str(ds["uri"]),
			Local:        localPath(dir, str(settings["localUri"])),
			ODataVersion: str(settings["odataVersion"]),
		}
		if spec.ODataVersion == "" {
			spec.ODataVersion = defaultODataVersion
		}
		annotations, _ := settings["annotations"].([]any)
		for _, a := range annotations {
			annoName, _ := a.(string)
			anno, ok := sources[annoName].(map[string]any)
			if !ok {
				continue
			}
			annoSettings, _ := anno["settings"].(map[string]any)
			spec.Annotations = append(spec.Annotations, Annotation{
				Name:  annoName,
				URI:   str(anno["uri"]),
				Local: localPath(dir, str(annoSettings["localUri"])),
			})
		}
		services = append(services, spec)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func localPath(dir, uri string) string {
	if uri == "" {
		return ""
	}
	return filepath.Join(dir, filepath.FromSlash(uri))
}
