package ui5

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/fadp-go/internal/cli/env"
	"github.com/nightconcept/fadp-go/internal/core/ui5version"
	"github.com/nightconcept/fadp-go/internal/output"
)

// NewUI5Command creates the command with the UI5 version helpers.
func NewUI5Command() *cli.Command {
	return &cli.Command{
		Name:  "ui5",
		Usage: "Inspect the UI5 versions available for adaptation projects",
		Subcommands: []*cli.Command{
			versionsCmd,
			formatCmd,
		},
	}
}

var versionsCmd = &cli.Command{
	Name:  "versions",
	Usage: "List the UI5 versions a new project can use",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    env.SystemFlag,
			Aliases: []string{"s"},
			Usage:   "read the system version from this saved system or URL",
		},
		&cli.StringFlag{
			Name:  "system-version",
			Usage: "UI5 version of the target system",
		},
	},
	Action: func(c *cli.Context) error {
		e, err := env.FromContext(c)
		if err != nil {
			return err
		}
		versions := e.Versions()

		systemVersion := c.String("system-version")
		if name := c.String(env.SystemFlag); name != "" && systemVersion == "" {
			endpoint, err := e.Endpoint(c, name)
			if err != nil {
				return err
			}
			systemVersion, err = versions.GetSystemVersion(c.Context, endpoint.Provider(e.HTTP))
			if err != nil {
				output.Warn("Could not read the UI5 version of the system", "system", endpoint.DisplayName(), "error", err)
			}
		}

		relevant, err := versions.GetRelevantVersions(c.Context, systemVersion, e.Config.IsCustomerBase())
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error loading UI5 versions: %v", err), 1)
		}
		if len(relevant) == 0 {
			output.Empty(e.Out, "No UI5 versions available.")
			return nil
		}
		label := color.New(color.FgHiBlack).SprintFunc()
		for _, v := range relevant {
			plain := ui5version.RemoveBracketsFromVersion(v)
			if suffix := v[len(plain):]; suffix != "" {
				_, _ = fmt.Fprintf(e.Out, "%s%s\n", plain, label(suffix))
				continue
			}
			_, _ = fmt.Fprintln(e.Out, plain)
		}
		return nil
	},
}

var formatCmd = &cli.Command{
	Name:      "format",
	Usage:     "Show how fadp interprets a UI5 version string",
	ArgsUsage: "VERSION",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("Error: 'ui5 format' requires exactly one VERSION.", 1)
		}
		e, err := env.FromContext(c)
		if err != nil {
			return err
		}
		raw := c.Args().First()
		formatted := ui5version.GetFormattedVersion(raw)

		parsed := "invalid"
		if v, err := ui5version.ParseVersion(raw); err == nil {
			parsed = v.String()
		}
		output.KeyValues(e.Out,
			"Formatted", formatted,
			"Parsed", parsed,
			"Major.minor", ui5version.RemoveMicroPart(raw),
			"Snapshot", ui5version.IsSnapshot(raw),
			"CDN", e.Versions().BaseURL(formatted),
		)
		return nil
	},
}
