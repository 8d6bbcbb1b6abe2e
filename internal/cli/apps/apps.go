package apps

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/fadp-go/internal/cli/env"
	"github.com/nightconcept/fadp-go/internal/core/sourceapp"
	"github.com/nightconcept/fadp-go/internal/output"
)

// AppsCmd lists the applications of a system that can be adapted.
var AppsCmd = &cli.Command{
	Name:  "apps",
	Usage: "List the applications of a system that can be adapted",
	Flags: append(env.BackendFlags(),
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "only list applications whose id or title contains `TERM`",
		},
	),
	Action: func(c *cli.Context) error {
		e, err := env.FromContext(c)
		if err != nil {
			return err
		}
		endpoint, provider, err := e.Backend(c)
		if err != nil {
			return err
		}

		isCloud, err := provider.IsAbapCloud(c.Context)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error connecting to %s: %v", endpoint.DisplayName(), err), 1)
		}
		apps, err := sourceapp.LoadApps(c.Context, provider, e.Config.IsCustomerBase(), isCloud)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		apps = sourceapp.Filter(apps, c.String("filter"))

		if len(apps) == 0 {
			output.Empty(e.Out, fmt.Sprintf("No applications found on %s.", endpoint.DisplayName()))
			return nil
		}
		t := output.NewTable(e.Out, "ID", "Title", "ACH", "Registration IDs", "Type")
		for _, app := range apps {
			t.AppendRow(table.Row{app.ID, app.Title, app.Ach, strings.Join(app.RegistrationIDs, ", "), app.FileType})
		}
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d applications", len(apps))})
		t.Render()
		return nil
	},
}
