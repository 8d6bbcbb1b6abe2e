package generate

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/fadp-go/internal/cli/env"
	"github.com/nightconcept/fadp-go/internal/core/adpwriter"
	"github.com/nightconcept/fadp-go/internal/core/project"
	"github.com/nightconcept/fadp-go/internal/core/prompts"
	"github.com/nightconcept/fadp-go/internal/output"
)

// NewGenerateCommand creates the command that writes a new adaptation project.
func NewGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Create a new adaptation project interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "target-folder",
				Aliases: []string{"t"},
				Usage:   "folder the project folder is created in",
				Value:   ".",
			},
		},
		Action: generateAction,
	}
}

func generateAction(c *cli.Context) error {
	e, err := env.FromContext(c)
	if err != nil {
		return err
	}
	folder, err := filepath.Abs(c.String("target-folder"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error resolving target folder: %v", err), 1)
	}

	isCustomerBase := e.Config.IsCustomerBase()
	versions := e.Versions()
	prompter := env.NewPrompter()
	configPrompter := prompts.NewConfigPrompter(prompts.ConfigurationDeps{
		Endpoints:      e.Endpoints(),
		Versions:       versions,
		Connect:        e.Connect,
		IsCustomerBase: isCustomerBase,
	})

	answers, err := prompter.Ask(c.Context, configPrompter.Questions())
	if err != nil {
		return promptError(e, err)
	}

	defaultTitle := ""
	if app := configPrompter.Application(); app != nil {
		defaultTitle = app.Title
	}
	attributes, err := prompter.Ask(c.Context, prompts.AttributesQuestions(prompts.AttributesOptions{
		TargetFolder:   folder,
		IsCustomerBase: isCustomerBase,
		DefaultTitle:   defaultTitle,
		UI5Version:     func() string { return answers.String(project.AnswerUI5Version) },
	}))
	if err != nil {
		return promptError(e, err)
	}
	for k, v := range attributes {
		answers[k] = v
	}

	layer := project.CustomerBase
	if !isCustomerBase {
		layer = project.Vendor
	}
	cfg := project.NewConfigFromAnswers(answers, layer)
	configPrompter.Apply(cfg)

	version, err := versions.GetVersionToBeUsed(c.Context, cfg.UI5.Version, isCustomerBase)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error resolving UI5 version: %v", err), 1)
	}
	cfg.UI5.Version = version
	cfg.UI5.URL = versions.BaseURL(version)

	output.Debug("Generating adaptation project", "path", cfg.ProjectPath(), "reference", cfg.App.Reference, "ui5", version)
	if err := adpwriter.Generate(cfg.ProjectPath(), cfg); err != nil {
		return cli.Exit(fmt.Sprintf("Error generating project: %v", err), 1)
	}

	success := color.New(color.FgGreen).SprintFunc()
	_, _ = fmt.Fprintf(e.Out, "%s Created adaptation project %s for %s in %s\n",
		success("✓"), color.New(color.Bold).Sprint(cfg.App.ID), cfg.App.Reference, cfg.ProjectPath())
	return nil
}

func promptError(e *env.Env, err error) error {
	if errors.Is(err, prompts.ErrAborted) {
		_, _ = fmt.Fprintln(e.Out, "Generation cancelled.")
		return nil
	}
	return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
}
