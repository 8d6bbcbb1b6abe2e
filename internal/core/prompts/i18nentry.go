package prompts

import (
	"context"

	"github.com/nightconcept/fadp-go/internal/core/i18n"
	"github.com/nightconcept/fadp-go/internal/core/validators"
)

// Names of the i18n entry answers.
const (
	AnswerI18nKey        = "key"
	AnswerI18nValue      = "value"
	AnswerI18nAnnotation = "annotation"
)

// TextTypes are the SAP text type annotations offered for new i18n entries.
var TextTypes = []Choice{
	{Name: "XFLD - Label", Value: "XFLD"},
	{Name: "XTIT - Title", Value: "XTIT"},
	{Name: "XBUT - Button", Value: "XBUT"},
	{Name: "XMSG - Message", Value: "XMSG"},
	{Name: "XTOL - Tooltip", Value: "XTOL"},
	{Name: "YINS - Instruction", Value: "YINS"},
}

// I18nEntryQuestions asks for one i18n key, its text and the text type.
// existing holds the keys already present in the target file.
func I18nEntryQuestions(existing []string) []Question {
	return []Question{
		{
			Type:    Input,
			Name:    AnswerI18nKey,
			Message: i18n.T("prompts.i18nKey.message"),
			Validate: func(_ context.Context, value any, _ Answers) error {
				key := stringValue(value)
				if err := validators.ValidateSpecialChars(key); err != nil {
					return err
				}
				return validators.ValidateDuplicate(append([]string{key}, existing...))
			},
		},
		{
			Type:    Input,
			Name:    AnswerI18nValue,
			Message: i18n.T("prompts.i18nValue.message"),
			Validate: func(_ context.Context, value any, _ Answers) error {
				return validators.ValidateEmptyString(stringValue(value))
			},
		},
		{
			Type:    List,
			Name:    AnswerI18nAnnotation,
			Message: i18n.T("prompts.i18nAnnotation.message"),
			Choices: func(_ context.Context, _ Answers) ([]Choice, error) {
				return TextTypes, nil
			},
			Default: func(_ Answers) any { return "XFLD" },
		},
	}
}
