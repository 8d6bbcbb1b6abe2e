// Package i18ncmd implements "fadp i18n", which reads and extends i18n
// properties bundles.
package i18ncmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/fadp-go/internal/cli/env"
	"github.com/nightconcept/fadp-go/internal/core/projectaccess"
	"github.com/nightconcept/fadp-go/internal/core/prompts"
	"github.com/nightconcept/fadp-go/internal/core/validators"
	"github.com/nightconcept/fadp-go/internal/output"
)

// NewI18nCommand creates the i18n command.
func NewI18nCommand() *cli.Command {
	return &cli.Command{
		Name:  "i18n",
		Usage: "Read and extend i18n properties files",
		Subcommands: []*cli.Command{
			listCmd,
			addCmd,
		},
	}
}

var listCmd = &cli.Command{
	Name:      "list",
	Aliases:   []string{"ls"},
	Usage:     "List the entries of a properties file",
	ArgsUsage: "FILE",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("Error: 'i18n list' requires exactly one FILE.", 1)
		}
		e, err := env.FromContext(c)
		if err != nil {
			return err
		}
		entries, err := projectaccess.ReadPropertiesFile(c.Args().First())
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		if len(entries) == 0 {
			output.Empty(e.Out, "No entries.")
			return nil
		}
		t := output.NewTable(e.Out, "Key", "Value", "Annotation")
		for _, entry := range entries {
			t.AppendRow(table.Row{entry.Key, entry.Value, entry.Annotation})
		}
		t.Render()
		return nil
	},
}

var addCmd = &cli.Command{
	Name:      "add",
	Usage:     "Add entries to a properties file; asks for one entry when none is given",
	ArgsUsage: "FILE [key=value...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "annotation",
			Aliases: []string{"a"},
			Usage:   "text type written above each entry",
			Value:   "XFLD",
		},
		&cli.BoolFlag{
			Name:  "cap",
			Usage: "FILE is a CDS file; write to the i18n bundle CAP uses for it",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.Exit("Error: 'i18n add' requires a FILE.", 1)
		}
		e, err := env.FromContext(c)
		if err != nil {
			return err
		}
		target := c.Args().First()

		var entries []projectaccess.I18nEntry
		if c.NArg() > 1 {
			entries, err = parseEntries(c.Args().Tail(), c.String("annotation"))
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
		} else {
			entry, err := askEntry(c, target)
			if errors.Is(err, prompts.ErrAborted) {
				return nil
			}
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			entries = []projectaccess.I18nEntry{entry}
		}

		var written bool
		bundle := target
		if c.Bool("cap") {
			root, rootErr := projectaccess.FindProjectRoot(target, false)
			if rootErr != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", rootErr), 1)
			}
			bundle = projectaccess.GetCapI18nFolder(root, target)
			written, err = projectaccess.CreateCapI18nEntries(root, target, entries)
		} else {
			written, err = projectaccess.CreatePropertiesI18nEntries(target, entries)
		}
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		if !written {
			_, _ = fmt.Fprintln(e.Out, "All keys already exist, nothing written.")
			return nil
		}
		_, _ = fmt.Fprintf(e.Out, "%s Updated %s\n", color.GreenString("✓"), bundle)
		return nil
	},
}

// parseEntries turns key=value arguments into entries.
func parseEntries(args []string, annotation string) ([]projectaccess.I18nEntry, error) {
	entries := make([]projectaccess.I18nEntry, 0, len(args))
	keys := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("'%s' is not of the form key=value", arg)
		}
		if err := validators.ValidateSpecialChars(key); err != nil {
			return nil, fmt.Errorf("key '%s': %w", key, err)
		}
		keys = append(keys, key)
		entries = append(entries, projectaccess.I18nEntry{Key: key, Value: value, Annotation: annotation})
	}
	if err := validators.ValidateDuplicate(keys); err != nil {
		return nil, err
	}
	return entries, nil
}

func askEntry(c *cli.Context, target string) (projectaccess.I18nEntry, error) {
	var existing []string
	current, err := projectaccess.ReadPropertiesFile(target)
	switch {
	case err == nil:
		for _, entry := range current {
			existing = append(existing, entry.Key)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return projectaccess.I18nEntry{}, err
	}

	answers, err := env.NewPrompter().Ask(c.Context, prompts.I18nEntryQuestions(existing))
	if err != nil {
		return projectaccess.I18nEntry{}, err
	}
	return projectaccess.I18nEntry{
		Key:        answers.String(prompts.AnswerI18nKey),
		Value:      answers.String(prompts.AnswerI18nValue),
		Annotation: answers.String(prompts.AnswerI18nAnnotation),
	}, nil
}
