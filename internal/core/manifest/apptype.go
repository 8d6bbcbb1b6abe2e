package manifest

// ApplicationType classifies an application for adaptation.
type ApplicationType string

const (
	FreeStyle        ApplicationType = "FreeStyle"
	FioriElements    ApplicationType = "FioriElements"
	FioriElementsOVP ApplicationType = "FioriElementsOVP"
	None             ApplicationType = ""
)

// GetApplicationType classifies m. An empty manifest has type None.
func GetApplicationType(m Manifest) ApplicationType {
	if len(m) == 0 {
		return None
	}
	if m["sap.ovp"] != nil {
		return FioriElementsOVP
	}
	if m["sap.ui.generic.app"] != nil || IsV4Application(m) {
		return FioriElements
	}
	if hasPrefixFold(m.StringAt("sap.app", "sourceTemplate", "id"), "ui5template.smarttemplate") {
		return FioriElements
	}
	return FreeStyle
}

// IsV4Application reports whether the app uses the sap.fe templates.
func IsV4Application(m Manifest) bool {
	for _, lib := range m.Libs() {
		if hasPrefixFold(lib, "sap.fe") {
			return true
		}
	}
	return false
}

// IsSupportedAppTypeForAdp reports whether an adaptation project can be based on t.
func IsSupportedAppTypeForAdp(t ApplicationType) bool {
	switch t {
	case FreeStyle, FioriElements, FioriElementsOVP:
		return true
	}
	return false
}

// IsSyncLoadedView reports whether the root view of a free style app is loaded synchronously.
func IsSyncLoadedView(m Manifest) bool {
	ui5 := m.SapUI5()
	if ui5 == nil {
		return false
	}
	switch root := ui5["rootView"].(type) {
	case map[string]any:
		async, ok := root["async"].(bool)
		return !ok || !async
	case string:
		return true
	}
	return false
}
