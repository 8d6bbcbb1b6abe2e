package change

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/fadp-go/internal/cli/env"
	"github.com/nightconcept/fadp-go/internal/core/adpwriter"
	"github.com/nightconcept/fadp-go/internal/core/projectaccess"
	"github.com/nightconcept/fadp-go/internal/core/prompts"
	"github.com/nightconcept/fadp-go/internal/core/validators"
	"github.com/nightconcept/fadp-go/internal/output"
)

func projectFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "project",
		Aliases: []string{"p"},
		Usage:   "folder inside the adaptation project",
		Value:   ".",
	}
}

// NewChangeCommand creates the command managing descriptor changes of an
// adaptation project.
func NewChangeCommand() *cli.Command {
	return &cli.Command{
		Name:  "change",
		Usage: "Manage the descriptor changes of an adaptation project",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List the changes of manifest.appdescr_variant",
				Flags:   []cli.Flag{projectFlag()},
				Action:  listAction,
			},
			{
				Name:  "add",
				Usage: "Add a descriptor change; asks for it when --type is not given",
				Flags: []cli.Flag{
					projectFlag(),
					&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "change type, e.g. appdescr_ui5_addLibraries"},
					&cli.StringFlag{Name: "content", Aliases: []string{"c"}, Usage: "change content as JSON", Value: "{}"},
				},
				Action: addAction,
			},
		},
	}
}

func projectRoot(c *cli.Context) (string, error) {
	root, err := projectaccess.FindProjectRoot(c.String("project"), false)
	if err != nil {
		return "", cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	return root, nil
}

func listAction(c *cli.Context) error {
	e, err := env.FromContext(c)
	if err != nil {
		return err
	}
	root, err := projectRoot(c)
	if err != nil {
		return err
	}
	variant, err := adpwriter.ReadVariant(root)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error reading %s: %v", adpwriter.VariantFileName, err), 1)
	}
	if len(variant.Content) == 0 {
		output.Empty(e.Out, "No changes.")
		return nil
	}
	t := output.NewTable(e.Out, "#", "Change type", "Content")
	for i, ch := range variant.Content {
		content, _ := json.Marshal(ch["content"])
		t.AppendRow(table.Row{i + 1, ch["changeType"], string(content)})
	}
	t.Render()
	return nil
}

func addAction(c *cli.Context) error {
	e, err := env.FromContext(c)
	if err != nil {
		return err
	}
	root, err := projectRoot(c)
	if err != nil {
		return err
	}
	variant, err := adpwriter.ReadVariant(root)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error reading %s: %v", adpwriter.VariantFileName, err), 1)
	}

	changeType, content := c.String("type"), c.String("content")
	if changeType == "" {
		existing := make([]map[string]any, 0, len(variant.Content))
		for _, ch := range variant.Content {
			existing = append(existing, ch)
		}
		answers, err := env.NewPrompter().Ask(c.Context, prompts.ChangeQuestions(existing))
		if errors.Is(err, prompts.ErrAborted) {
			return nil
		}
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		changeType = answers.String(prompts.AnswerChangeType)
		content = answers.String(prompts.AnswerChangeContent)
	}
	if !slices.Contains(prompts.ChangeTypes, changeType) {
		return cli.Exit(fmt.Sprintf("Error: unsupported change type '%s'. Use one of: %s",
			changeType, strings.Join(prompts.ChangeTypes, ", ")), 1)
	}
	if err := validators.ValidateJSON(content); err != nil {
		return cli.Exit(fmt.Sprintf("Error: --content: %v", err), 1)
	}
	var parsed any
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&parsed); err != nil {
		return cli.Exit(fmt.Sprintf("Error: --content: %v", err), 1)
	}

	change := adpwriter.Change{"changeType": changeType, "content": parsed}
	if err := adpwriter.AddChange(root, change); err != nil {
		return cli.Exit(fmt.Sprintf("Error adding change: %v", err), 1)
	}
	_, _ = fmt.Fprintf(e.Out, "%s Added %s to %s\n", color.GreenString("✓"), changeType, variant.ID)
	return nil
}
