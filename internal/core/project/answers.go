package project

import "fmt"

// Names of the wizard answers read by NewConfigFromAnswers.
const (
	AnswerSystem           = "system"
	AnswerClient           = "client"
	AnswerUsername         = "username"
	AnswerPassword         = "password"
	AnswerApplication      = "application"
	AnswerUI5Version       = "ui5Version"
	AnswerProjectName      = "projectName"
	AnswerTitle            = "title"
	AnswerNamespace        = "namespace"
	AnswerTargetFolder     = "targetFolder"
	AnswerEnableTypeScript = "enableTypeScript"
)

// NewConfigFromAnswers builds a Config from the answers of the configuration
// and attributes prompts. Backend details that are not answers, such as the
// system URL, are filled in by the caller.
func NewConfigFromAnswers(answers map[string]any, layer Layer) *Config {
	str := func(key string) string {
		switch v := answers[key].(type) {
		case nil:
			return ""
		case string:
			return v
		default:
			return fmt.Sprint(v)
		}
	}
	ts, _ := answers[AnswerEnableTypeScript].(bool)

	namespace := str(AnswerNamespace)
	if namespace == "" {
		namespace = DefaultNamespace(str(AnswerProjectName), layer != Vendor)
	}
	return &Config{
		ProjectName:  str(AnswerProjectName),
		TargetFolder: str(AnswerTargetFolder),
		App: AppConfig{
			ID:        namespace,
			Reference: str(AnswerApplication),
			Layer:     layer,
			Title:     str(AnswerTitle),
		},
		Target: TargetConfig{
			System: str(AnswerSystem),
			Client: str(AnswerClient),
		},
		UI5:     UI5Config{Version: str(AnswerUI5Version)},
		Options: Options{TypeScript: ts},
	}
}
