// Package projectcmd implements "fadp project", which inspects Fiori and
// adaptation projects on disk.
package projectcmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/fadp-go/internal/cli/env"
	"github.com/nightconcept/fadp-go/internal/core/adpwriter"
	"github.com/nightconcept/fadp-go/internal/core/projectaccess"
	"github.com/nightconcept/fadp-go/internal/core/xsapp"
	"github.com/nightconcept/fadp-go/internal/output"
)

// Runner runs the cds CLI for CAP projects. Tests replace it.
var Runner projectaccess.CommandRunner = projectaccess.ExecRunner{}

// NewProjectCommand creates the project command.
func NewProjectCommand() *cli.Command {
	return &cli.Command{
		Name:  "project",
		Usage: "Inspect the project in the current or given folder",
		Subcommands: []*cli.Command{
			infoCmd,
			servicesCmd,
			routesCmd,
		},
	}
}

func projectRoot(c *cli.Context) (string, error) {
	path := "."
	if c.NArg() > 0 {
		path = c.Args().First()
	}
	root, err := projectaccess.FindProjectRoot(path, false)
	if err != nil {
		return "", cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	return root, nil
}

func relative(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

var infoCmd = &cli.Command{
	Name:      "info",
	Usage:     "Show the project type and its applications",
	ArgsUsage: "[PATH]",
	Action: func(c *cli.Context) error {
		e, err := env.FromContext(c)
		if err != nil {
			return err
		}
		root, err := projectRoot(c)
		if err != nil {
			return err
		}
		projectType, err := projectaccess.GetProjectType(root)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error reading %s: %v", root, err), 1)
		}

		pairs := []any{"Root", root, "Type", projectType}
		if projectType.IsCapProject() {
			if info, err := projectaccess.GetCdsVersionInfo(c.Context, Runner, root); err != nil {
				output.Debug("cds version unavailable", "error", err)
			} else {
				pairs = append(pairs, "@sap/cds", info["@sap/cds"])
			}
		}
		if variant, err := adpwriter.ReadVariant(root); err == nil {
			pairs = append(pairs,
				"App variant", variant.ID,
				"Base application", variant.Reference,
				"Layer", variant.Layer,
				"Changes", len(variant.Content),
			)
		}
		output.KeyValues(e.Out, pairs...)

		apps, err := projectaccess.FindAllApps([]string{root})
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		if len(apps) == 0 {
			return nil
		}
		t := output.NewTable(e.Out, "App", "Path", "Language", "Main service", "i18n")
		for _, app := range apps {
			lang, err := projectaccess.GetAppProgrammingLanguage(app.AppRoot)
			if err != nil {
				output.Warn("Could not detect the programming language", "app", app.Manifest.ID(), "error", err)
			}
			i18n := projectaccess.GetI18nPropertiesPaths(app.ManifestPath, app.Manifest)
			t.AppendRow(table.Row{
				app.Manifest.ID(),
				relative(root, app.AppRoot),
				lang,
				projectaccess.GetMainService(app.Manifest),
				relative(root, i18n.SapApp),
			})
		}
		t.Render()
		return nil
	},
}

var servicesCmd = &cli.Command{
	Name:      "services",
	Usage:     "List the OData services of the project's applications",
	ArgsUsage: "[PATH]",
	Action: func(c *cli.Context) error {
		e, err := env.FromContext(c)
		if err != nil {
			return err
		}
		root, err := projectRoot(c)
		if err != nil {
			return err
		}
		apps, err := projectaccess.FindAllApps([]string{root})
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}

		t := output.NewTable(e.Out, "App", "Service", "URI", "OData", "Annotations")
		rows := 0
		for _, app := range apps {
			for _, svc := range projectaccess.GetServicesAndAnnotations(app.ManifestPath, app.Manifest) {
				names := make([]string, 0, len(svc.Annotations))
				for _, a := range svc.Annotations {
					names = append(names, a.Name)
				}
				t.AppendRow(table.Row{app.Manifest.ID(), svc.Name, svc.URI, svc.ODataVersion, strings.Join(names, ", ")})
				rows++
			}
		}

		projectType, err := projectaccess.GetProjectType(root)
		if err == nil && projectType.IsCapProject() {
			model, err := projectaccess.GetCapModelAndServices(c.Context, Runner, root)
			if err != nil {
				output.Warn("Could not compile the CAP model", "error", err)
			} else {
				for _, svc := range model.Services {
					t.AppendRow(table.Row{"(cap)", svc.Name, svc.URLPath, "4.0", ""})
					rows++
				}
			}
		}

		if rows == 0 {
			output.Empty(e.Out, "No OData services found.")
			return nil
		}
		t.Render()
		return nil
	},
}

var routesCmd = &cli.Command{
	Name:      "routes",
	Usage:     "Check the approuter routes in xs-app.json",
	ArgsUsage: "[PATH]",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "destination",
			Aliases: []string{"d"},
			Usage:   "known destination `NAME`, may be repeated",
		},
	},
	Action: func(c *cli.Context) error {
		e, err := env.FromContext(c)
		if err != nil {
			return err
		}
		root, err := projectRoot(c)
		if err != nil {
			return err
		}
		path := filepath.Join(root, xsapp.FileName)
		if !projectaccess.FileExists(path) {
			webapp, err := projectaccess.GetWebappPath(root)
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			path = filepath.Join(webapp, xsapp.FileName)
		}
		if !projectaccess.FileExists(path) {
			return cli.Exit(fmt.Sprintf("Error: no %s found in %s.", xsapp.FileName, root), 1)
		}
		app, err := xsapp.Load(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error reading %s: %v", path, err), 1)
		}

		t := output.NewTable(e.Out, "Source", "Target", "Destination", "Service", "Authentication")
		for _, r := range app.Routes {
			service := r.Service
			if r.LocalDir != "" {
				service = "localDir: " + r.LocalDir
			}
			t.AppendRow(table.Row{r.Source, r.Target, r.Destination, service, r.Authentication})
		}
		t.Render()

		problems := xsapp.ValidateRoutes(app, c.StringSlice("destination"))
		if len(problems) == 0 {
			_, _ = fmt.Fprintf(e.Out, "%s %s is valid\n", color.GreenString("✓"), relative(root, path))
			return nil
		}
		for _, p := range problems {
			_, _ = fmt.Fprintf(e.Out, "%s %s\n", color.RedString("✗"), p)
		}
		return cli.Exit(fmt.Sprintf("Error: %s has %d problem(s).", xsapp.FileName, len(problems)), 1)
	},
}
