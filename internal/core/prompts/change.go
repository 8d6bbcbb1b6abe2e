package prompts

import (
	"context"
	"encoding/json"

	"github.com/nightconcept/fadp-go/internal/core/i18n"
	"github.com/nightconcept/fadp-go/internal/core/validators"
)

// Names of the descriptor change answers.
const (
	AnswerChangeType    = "changeType"
	AnswerChangeContent = "content"
)

// ChangeTypes are the descriptor change types that can be added from the CLI.
var ChangeTypes = []string{
	"appdescr_app_addNewModel",
	"appdescr_app_addNewDataSource",
	"appdescr_app_changeDataSource",
	"appdescr_app_addAnnotationsToOData",
	"appdescr_app_addNewInbound",
	"appdescr_app_changeInbound",
	"appdescr_app_removeAllInboundsExceptOne",
	"appdescr_ui5_addLibraries",
	"appdescr_ui5_setMinUI5Version",
	"appdescr_ui5_addNewModelEnhanceWith",
	"appdescr_fiori_setRegistrationIds",
}

// ChangeQuestions asks for a descriptor change type and its JSON content.
// existing holds the changes of the variant; the same change type with the
// same content is only added once.
func ChangeQuestions(existing []map[string]any) []Question {
	return []Question{
		{
			Type:    List,
			Name:    AnswerChangeType,
			Message: i18n.T("prompts.changeType.message"),
			Choices: func(_ context.Context, _ Answers) ([]Choice, error) {
				choices := make([]Choice, 0, len(ChangeTypes))
				for _, t := range ChangeTypes {
					choices = append(choices, Choice{Name: t, Value: t})
				}
				return choices, nil
			},
		},
		{
			Type:    Editor,
			Name:    AnswerChangeContent,
			Message: i18n.T("prompts.changeContent.message"),
			Guide:   i18n.T("prompts.changeContent.guide"),
			Default: func(_ Answers) any { return "{}" },
			Validate: func(_ context.Context, value any, answers Answers) error {
				content := stringValue(value)
				if err := validators.ValidateJSON(content); err != nil {
					return err
				}
				var sameType []map[string]any
				for _, change := range existing {
					if change["changeType"] == answers.String(AnswerChangeType) {
						sameType = append(sameType, map[string]any{"content": canonicalJSON(change["content"])})
					}
				}
				return validators.HasContentDuplication(canonicalJSONString(content), "content", sameType)
			},
		},
	}
}

// canonicalJSON renders v compactly with sorted object keys.
func canonicalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func canonicalJSONString(s string) string {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return canonicalJSON(v)
}
