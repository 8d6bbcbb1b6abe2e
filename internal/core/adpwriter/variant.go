package adpwriter

import (
	"fmt"
	"path/filepath"

	"github.com/nightconcept/fadp-go/internal/core/project"
	"github.com/nightconcept/fadp-go/internal/core/projectaccess"
	"github.com/nightconcept/fadp-go/internal/core/ui5version"
	"github.com/nightconcept/fadp-go/internal/core/validators"
)

// Change is one descriptor change of an app variant.
type Change map[string]any

// Variant is the content of manifest.appdescr_variant.
type Variant struct {
	FileName  string   `json:"fileName"`
	Layer     string   `json:"layer"`
	FileType  string   `json:"fileType"`
	Reference string   `json:"reference"`
	ID        string   `json:"id"`
	Namespace string   `json:"namespace"`
	Version   string   `json:"version"`
	Content   []Change `json:"content"`
}

// NewVariant builds the descriptor variant for cfg with its initial changes.
func NewVariant(cfg *project.Config) *Variant {
	content := []Change{
		{
			"changeType": "appdescr_ui5_addNewModelEnhanceWith",
			"content": map[string]any{
				"modelId":          "i18n",
				"bundleUrl":        i18nPath,
				"supportedLocales": []string{""},
				"fallbackLocale":   "",
			},
		},
		{
			"changeType": "appdescr_app_setTitle",
			"content":    map[string]any{},
			"texts": map[string]any{
				"i18n": i18nPath,
			},
		},
	}
	if cfg.IsCustomerBase() && cfg.App.FioriID != "" {
		content = append(content, Change{
			"changeType": "appdescr_fiori_setRegistrationIds",
			"content":    map[string]any{"registrationIds": []string{cfg.App.FioriID}},
		})
	}
	if cfg.IsCustomerBase() && cfg.App.Ach != "" {
		content = append(content, Change{
			"changeType": "appdescr_app_setAch",
			"content":    map[string]any{"ach": cfg.App.Ach},
		})
	}
	if v := minUI5Version(cfg); v != "" {
		content = append(content, Change{
			"changeType": "appdescr_ui5_setMinUI5Version",
			"content":    map[string]any{"minUI5Version": v},
		})
	}
	return &Variant{
		FileName:  "manifest",
		Layer:     string(cfg.App.Layer),
		FileType:  "appdescr_variant",
		Reference: cfg.App.Reference,
		ID:        cfg.App.ID,
		Namespace: cfg.VariantNamespace(),
		Version:   variantVersion,
		Content:   content,
	}
}

// minUI5Version raises the minimal UI5 version of the base app to the
// version chosen for the project. Snapshots leave it unchanged.
func minUI5Version(cfg *project.Config) string {
	chosen := ui5version.RemoveBracketsFromVersion(cfg.UI5.Version)
	if chosen == "" || ui5version.IsSnapshot(chosen) {
		return ""
	}
	chosen = ui5version.RemoveTimestampFromVersion(chosen)
	if cfg.UI5.MinVersion != "" && ui5version.IsFeatureSupportedVersion(chosen, cfg.UI5.MinVersion) {
		return ""
	}
	return chosen
}

// VariantPath returns the descriptor variant of the project at projectRoot.
func VariantPath(projectRoot string) string {
	return filepath.Join(projectRoot, webappDir, VariantFileName)
}

// ReadVariant reads the descriptor variant of the project at projectRoot.
func ReadVariant(projectRoot string) (*Variant, error) {
	var v Variant
	if err := projectaccess.ReadJSON(VariantPath(projectRoot), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// AddChange appends change to the content of the project's descriptor
// variant. A change identical to an existing one is rejected.
func AddChange(projectRoot string, change Change) error {
	changeType, _ := change["changeType"].(string)
	if changeType == "" {
		return fmt.Errorf("change has no changeType")
	}
	path := VariantPath(projectRoot)
	if !projectaccess.FileExists(path) {
		return fmt.Errorf("%s not found, %s is not an adaptation project", VariantFileName, projectRoot)
	}
	return projectaccess.UpdateJSON(path, func(doc map[string]any) error {
		content, _ := doc["content"].([]any)
		existing := make([]map[string]any, 0, len(content))
		for _, raw := range content {
			if c, ok := raw.(map[string]any); ok && c["changeType"] == changeType {
				existing = append(existing, map[string]any{"change": canonical(c)})
			}
		}
		if err := validators.HasContentDuplication(canonical(change), "change", existing); err != nil {
			return err
		}
		doc["content"] = append(content, map[string]any(change))
		return nil
	})
}
