package systems

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/fadp-go/internal/cli/env"
	"github.com/nightconcept/fadp-go/internal/core/system"
	"github.com/nightconcept/fadp-go/internal/core/validators"
	"github.com/nightconcept/fadp-go/internal/output"
)

// NewSystemsCommand creates the command managing saved backend systems.
func NewSystemsCommand() *cli.Command {
	return &cli.Command{
		Name:  "systems",
		Usage: "Manage the saved backend systems",
		Subcommands: []*cli.Command{
			listCmd,
			addCmd,
			removeCmd,
		},
	}
}

var listCmd = &cli.Command{
	Name:    "list",
	Aliases: []string{"ls"},
	Usage:   "List saved systems, or destinations in SAP Business Application Studio",
	Action: func(c *cli.Context) error {
		e, err := env.FromContext(c)
		if err != nil {
			return err
		}
		endpoints, err := e.Endpoints().GetEndpoints(c.Context)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error loading systems: %v", err), 1)
		}
		if len(endpoints) == 0 {
			output.Empty(e.Out, "No systems saved. Add one with 'fadp systems add'.")
			return nil
		}

		t := output.NewTable(e.Out, "Name", "URL", "Client", "Authentication", "User")
		for _, ep := range endpoints {
			url := ep.URL
			if ep.Destination {
				url = "destination"
			}
			t.AppendRow(table.Row{ep.Name, url, ep.Client, ep.Authentication, ep.Username})
		}
		t.Render()
		return nil
	},
}

var addCmd = &cli.Command{
	Name:      "add",
	Usage:     "Save a system",
	ArgsUsage: "NAME URL",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "client", Usage: "SAP client, defaults to the sap-client of URL"},
		&cli.StringFlag{
			Name:  "auth",
			Usage: fmt.Sprintf("authentication type: %s, %s or %s", system.AuthBasic, system.AuthReentrance, system.AuthNoAuthentication),
			Value: system.AuthBasic,
		},
		&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "user for basic authentication"},
		&cli.StringFlag{Name: "password", Usage: "password for basic authentication", EnvVars: []string{"FADP_PASSWORD"}},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 2 {
			return cli.Exit("Error: 'systems add' requires a NAME and a URL.", 1)
		}
		e, err := env.FromContext(c)
		if err != nil {
			return err
		}

		name := c.Args().Get(0)
		parsed, err := system.ParseSystemURL(c.Args().Get(1))
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		client := parsed.Client
		if c.IsSet("client") {
			client = c.String("client")
		}
		if client != "" {
			if err := validators.ValidateClient(client); err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
		}
		auth := c.String("auth")
		switch auth {
		case system.AuthBasic, system.AuthReentrance, system.AuthNoAuthentication:
		default:
			return cli.Exit(fmt.Sprintf("Error: unknown authentication type '%s'.", auth), 1)
		}

		endpoint := system.Endpoint{
			Name:           name,
			URL:            parsed.URL,
			Client:         client,
			Authentication: auth,
			Username:       c.String("username"),
			Password:       c.String("password"),
		}
		if err := e.Systems().Add(endpoint); err != nil {
			return cli.Exit(fmt.Sprintf("Error saving system '%s': %v", name, err), 1)
		}
		_, _ = fmt.Fprintf(e.Out, "%s Saved system %s\n", color.GreenString("✓"), endpoint.DisplayName())
		return nil
	},
}

var removeCmd = &cli.Command{
	Name:      "remove",
	Aliases:   []string{"rm"},
	Usage:     "Remove a saved system",
	ArgsUsage: "NAME",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("Error: 'systems remove' requires exactly one NAME.", 1)
		}
		e, err := env.FromContext(c)
		if err != nil {
			return err
		}
		name := c.Args().First()
		removed, err := e.Systems().Remove(name)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error removing system '%s': %v", name, err), 1)
		}
		if !removed {
			return cli.Exit(fmt.Sprintf("Error: system '%s' is not saved.", name), 1)
		}
		_, _ = fmt.Fprintf(e.Out, "%s Removed system %s\n", color.GreenString("✓"), name)
		return nil
	},
}
