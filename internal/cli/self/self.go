package self

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/fadp-go/internal/cli/env"
	"github.com/nightconcept/fadp-go/internal/core/prompts"
	"github.com/nightconcept/fadp-go/internal/output"
)

// DefaultRepository is the GitHub repository fadp releases are published to.
const DefaultRepository = "nightconcept/fadp-go"

const answerConfirmUpdate = "confirmUpdate"

// NewSelfCommand creates a new command for self-management.
func NewSelfCommand() *cli.Command {
	return &cli.Command{
		Name:  "self",
		Usage: "Manage the fadp binary itself",
		Subcommands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Update fadp to the latest release",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "update without asking for confirmation",
					},
					&cli.BoolFlag{
						Name:  "check",
						Usage: "only report whether an update is available",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "GitHub repository to update from as 'owner/repo'",
						Value: DefaultRepository,
					},
				},
				Action: updateAction,
			},
		},
	}
}

// parseRepository checks that slug has the form owner/repo.
func parseRepository(slug string) (string, error) {
	owner, repo, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", fmt.Errorf("invalid --source '%s', expected 'owner/repo'", slug)
	}
	return slug, nil
}

func updateAction(c *cli.Context) error {
	out := c.App.Writer
	current, err := semver.NewVersion(strings.TrimPrefix(c.App.Version, "v"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error parsing current version '%s': %v", c.App.Version, err), 1)
	}
	slug, err := parseRepository(c.String("source"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	output.Debug("Checking for updates", "current", current.String(), "source", slug)

	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error creating GitHub source: %v", err), 1)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to initialize updater: %v", err), 1)
	}

	latest, found, err := updater.DetectLatest(c.Context, selfupdate.ParseSlug(slug))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error detecting latest version: %v", err), 1)
	}
	if !found || !latest.GreaterThan(current.String()) {
		_, _ = fmt.Fprintf(out, "fadp %s is up to date.\n", c.App.Version)
		return nil
	}
	output.Debug("Latest release", "version", latest.Version(), "url", latest.URL, "asset", latest.AssetURL)

	_, _ = fmt.Fprintf(out, "New version available: %s (current: %s)\n",
		color.New(color.FgGreen, color.Bold).Sprint(latest.Version()), c.App.Version)
	if c.Bool("check") {
		return nil
	}

	if !c.Bool("yes") {
		answers, err := env.NewPrompter().Ask(c.Context, []prompts.Question{{
			Type:    prompts.Confirm,
			Name:    answerConfirmUpdate,
			Message: fmt.Sprintf("Update to %s?", latest.Version()),
			Default: func(_ prompts.Answers) any { return false },
		}})
		if err != nil && !errors.Is(err, prompts.ErrAborted) {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		if err != nil || !answers.Bool(answerConfirmUpdate) {
			_, _ = fmt.Fprintln(out, "Update cancelled.")
			return nil
		}
	}

	execPath, err := os.Executable()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Could not get executable path: %v", err), 1)
	}
	output.Debug("Replacing executable", "path", execPath)
	if err := updater.UpdateTo(c.Context, latest, execPath); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to update: %v", err), 1)
	}
	_, _ = fmt.Fprintf(out, "%s Updated fadp to %s\n", color.GreenString("✓"), latest.Version())
	return nil
}
