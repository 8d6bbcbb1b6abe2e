// Package manifestcmd implements "fadp manifest", which inspects the
// manifest of a base application on a backend system.
package manifestcmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/fadp-go/internal/cli/env"
	"github.com/nightconcept/fadp-go/internal/core/manifest"
	"github.com/nightconcept/fadp-go/internal/output"
)

// NewManifestCommand creates the manifest command.
func NewManifestCommand() *cli.Command {
	return &cli.Command{
		Name:  "manifest",
		Usage: "Inspect the manifest of a base application",
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show the adaptation relevant parts of an application manifest",
				ArgsUsage: "APP_ID",
				Flags: append(env.BackendFlags(),
					&cli.BoolFlag{Name: "json", Usage: "print the complete manifest as JSON"},
				),
				Action: showAction,
			},
		},
	}
}

func showAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("Error: 'manifest show' requires exactly one APP_ID.", 1)
	}
	e, err := env.FromContext(c)
	if err != nil {
		return err
	}
	_, provider, err := e.Backend(c)
	if err != nil {
		return err
	}

	appID := c.Args().First()
	service := manifest.NewService(provider)
	if err := service.IsAppSupported(c.Context, appID); err != nil {
		if errors.Is(err, manifest.ErrAppNotSupported) || errors.Is(err, manifest.ErrManifestURLNotFound) {
			return cli.Exit(fmt.Sprintf("Error: %s: %v", appID, err), 1)
		}
		return cli.Exit(fmt.Sprintf("Error checking '%s': %v", appID, err), 1)
	}
	m, err := service.GetManifest(c.Context, appID)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	if c.Bool("json") {
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error encoding manifest: %v", err), 1)
		}
		_, _ = fmt.Fprintln(e.Out, string(data))
		return nil
	}

	appType := service.GetCachedApplicationType()
	supported := "yes"
	if !manifest.IsSupportedAppTypeForAdp(appType) {
		supported = "no"
	}
	output.KeyValues(e.Out,
		"ID", m.ID(),
		"Title", m.Title(),
		"Application type", appType,
		"Supported", supported,
		"ACH", service.GetCachedACH(),
		"Min UI5 version", m.MinUI5Version(),
		"Registration IDs", strings.Join(service.GetCachedRegistrationIDs(), ", "),
		"Inbound IDs", strings.Join(service.GetCachedInboundIDs(), ", "),
	)
	if appType == manifest.FreeStyle && manifest.IsSyncLoadedView(m) {
		output.Warn("The root view is loaded synchronously; some adaptations may not work", "app", appID)
	}
	return nil
}
