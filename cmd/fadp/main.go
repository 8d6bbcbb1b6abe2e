package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/fadp-go/internal/cli/apps"
	"github.com/nightconcept/fadp-go/internal/cli/change"
	"github.com/nightconcept/fadp-go/internal/cli/env"
	"github.com/nightconcept/fadp-go/internal/cli/generate"
	"github.com/nightconcept/fadp-go/internal/cli/i18ncmd"
	"github.com/nightconcept/fadp-go/internal/cli/manifestcmd"
	"github.com/nightconcept/fadp-go/internal/cli/projectcmd"
	"github.com/nightconcept/fadp-go/internal/cli/self"
	"github.com/nightconcept/fadp-go/internal/cli/systems"
	"github.com/nightconcept/fadp-go/internal/cli/ui5"
	"github.com/nightconcept/fadp-go/internal/core/config"
	"github.com/nightconcept/fadp-go/internal/output"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "v0.1.0"

func newApp() *cli.App {
	return &cli.App{
		Name:    "fadp",
		Usage:   "Create and inspect SAP Fiori adaptation projects",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  env.VerboseFlag,
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:    env.ConfigDirFlag,
				Usage:   "directory holding config.toml and systems.toml",
				EnvVars: []string{config.HomeEnvVar},
			},
		},
		Before: func(c *cli.Context) error {
			output.SetupLogging(c.Bool(env.VerboseFlag))
			return nil
		},
		Action: func(c *cli.Context) error {
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			generate.NewGenerateCommand(),
			apps.AppsCmd,
			systems.NewSystemsCommand(),
			ui5.NewUI5Command(),
			manifestcmd.NewManifestCommand(),
			projectcmd.NewProjectCommand(),
			i18ncmd.NewI18nCommand(),
			change.NewChangeCommand(),
			self.NewSelfCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
