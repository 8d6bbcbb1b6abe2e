package prompts

import (
	"context"
	"os"
	"path/filepath"

	"github.com/nightconcept/fadp-go/internal/core/i18n"
	"github.com/nightconcept/fadp-go/internal/core/project"
	"github.com/nightconcept/fadp-go/internal/core/ui5version"
	"github.com/nightconcept/fadp-go/internal/core/validators"
)

// AnswerConfirmUI5Version is the name of the confirmation asked for
// snapshot UI5 versions.
const AnswerConfirmUI5Version = "confirmUI5Version"

// AttributesOptions configures the project attributes questions.
type AttributesOptions struct {
	TargetFolder   string
	IsCustomerBase bool
	// DefaultTitle prefills the title, usually the base application's title.
	DefaultTitle string
	// UI5Version is the version chosen in the configuration questions.
	UI5Version func() string
}

// AttributesQuestions returns the projectName, title, namespace,
// targetFolder, enableTypeScript and confirmUI5Version questions.
func AttributesQuestions(opts AttributesOptions) []Question {
	return []Question{
		{
			Type:    Input,
			Name:    project.AnswerProjectName,
			Message: i18n.T("prompts.projectName.message"),
			Guide:   i18n.T("prompts.projectName.guide"),
			Default: func(_ Answers) any {
				return project.DefaultProjectName(func(name string) bool {
					_, err := os.Stat(filepath.Join(opts.TargetFolder, name))
					return err == nil
				})
			},
			Validate: func(_ context.Context, value any, _ Answers) error {
				return validators.ValidateProjectName(stringValue(value), opts.TargetFolder, opts.IsCustomerBase)
			},
		},
		{
			Type:    Input,
			Name:    project.AnswerTitle,
			Message: i18n.T("prompts.title.message"),
			Default: func(_ Answers) any { return opts.DefaultTitle },
			Validate: func(_ context.Context, value any, _ Answers) error {
				return validators.ValidateEmptyString(stringValue(value))
			},
		},
		{
			Type:    Input,
			Name:    project.AnswerNamespace,
			Message: i18n.T("prompts.namespace.message"),
			Guide:   i18n.T("prompts.namespace.guide"),
			// the customer namespace is always derived from the project name
			When: func(_ Answers) bool { return !opts.IsCustomerBase },
			Default: func(answers Answers) any {
				return project.DefaultNamespace(answers.String(project.AnswerProjectName), opts.IsCustomerBase)
			},
			Validate: func(_ context.Context, value any, answers Answers) error {
				return validators.ValidateNamespaceAdp(stringValue(value), answers.String(project.AnswerProjectName), opts.IsCustomerBase)
			},
		},
		{
			Type:    Input,
			Name:    project.AnswerTargetFolder,
			Message: i18n.T("prompts.targetFolder.message"),
			Default: func(_ Answers) any { return opts.TargetFolder },
			Validate: func(_ context.Context, value any, answers Answers) error {
				dir := stringValue(value)
				if err := validators.ValidateEmptyString(dir); err != nil {
					return err
				}
				return validators.ValidateDuplicateProjectName(answers.String(project.AnswerProjectName), dir)
			},
		},
		{
			Type:    Confirm,
			Name:    project.AnswerEnableTypeScript,
			Message: i18n.T("prompts.enableTypeScript.message"),
			Default: func(_ Answers) any { return false },
		},
		{
			Type:    Confirm,
			Name:    AnswerConfirmUI5Version,
			Message: i18n.T("prompts.confirmUI5Version.message"),
			When: func(_ Answers) bool {
				return opts.UI5Version != nil && ui5version.IsSnapshot(opts.UI5Version())
			},
			Default: func(_ Answers) any { return true },
			Validate: func(_ context.Context, value any, _ Answers) error {
				if confirmed, _ := value.(bool); !confirmed {
					return i18n.Error("prompts.confirmUI5Version.declined")
				}
				return nil
			},
		},
	}
}
