package change

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/fadp-go/internal/cli/clitest"
	"github.com/nightconcept/fadp-go/internal/cli/env"
	"github.com/nightconcept/fadp-go/internal/core/adpwriter"
	"github.com/nightconcept/fadp-go/internal/core/project"
	"github.com/nightconcept/fadp-go/internal/core/prompts"
)

func newProject(t *testing.T) string {
	t.Helper()
	cfg := &project.Config{
		ProjectName:  "app.variant1",
		TargetFolder: t.TempDir(),
		App: project.AppConfig{
			ID:        "customer.app.variant1",
			Reference: "my.sales.app",
			Layer:     project.CustomerBase,
			Title:     "Sales Variant",
		},
		Target: project.TargetConfig{URL: "https://s4h.example.com", Client: "100"},
		UI5:    project.UI5Config{Version: "1.120.4"},
	}
	require.NoError(t, adpwriter.Generate(cfg.ProjectPath(), cfg))
	return cfg.ProjectPath()
}

const addLibraries = `{"libraries": {"sap.suite.ui.commons": {"minVersion": "1.120.0"}}}`

func TestAdd_Flags(t *testing.T) {
	root := newProject(t)
	before, err := adpwriter.ReadVariant(root)
	require.NoError(t, err)

	out, err := clitest.Run(t, t.TempDir(), NewChangeCommand(),
		"change", "add", "--project", root, "--type", "appdescr_ui5_addLibraries", "--content", addLibraries)
	require.NoError(t, err)
	assert.Contains(t, out, "Added appdescr_ui5_addLibraries to customer.app.variant1")

	after, err := adpwriter.ReadVariant(root)
	require.NoError(t, err)
	require.Len(t, after.Content, len(before.Content)+1)
	last := after.Content[len(after.Content)-1]
	assert.Equal(t, "appdescr_ui5_addLibraries", last["changeType"])

	_, err = clitest.Run(t, t.TempDir(), NewChangeCommand(),
		"change", "add", "--project", root, "--type", "appdescr_ui5_addLibraries", "--content", addLibraries)
	assert.Error(t, err, "identical change must be rejected")
}

func TestAdd_InvalidContent(t *testing.T) {
	root := newProject(t)

	_, err := clitest.Run(t, t.TempDir(), NewChangeCommand(),
		"change", "add", "--project", root, "--type", "appdescr_ui5_addLibraries", "--content", "{libraries")
	assert.Error(t, err)
}

func TestAdd_UnsupportedType(t *testing.T) {
	root := newProject(t)
	before, err := adpwriter.ReadVariant(root)
	require.NoError(t, err)

	_, err = clitest.Run(t, t.TempDir(), NewChangeCommand(),
		"change", "add", "--project", root, "--type", "appdescr_app_setTitle", "--content", "{}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported change type")

	after, err := adpwriter.ReadVariant(root)
	require.NoError(t, err)
	assert.Len(t, after.Content, len(before.Content))
}

func TestAdd_Interactive(t *testing.T) {
	root := newProject(t)
	original := env.NewPrompter
	env.NewPrompter = func() prompts.Prompter {
		return prompts.StaticPrompter{Values: prompts.Answers{
			prompts.AnswerChangeType:    "appdescr_app_addNewModel",
			prompts.AnswerChangeContent: `{"model": {"orders": {"dataSource": "ordersService"}}}`,
		}}
	}
	t.Cleanup(func() { env.NewPrompter = original })

	_, err := clitest.Run(t, t.TempDir(), NewChangeCommand(), "change", "add", "--project", root)
	require.NoError(t, err)

	out, err := clitest.Run(t, t.TempDir(), NewChangeCommand(), "change", "list", "--project", root)
	require.NoError(t, err)
	assert.Contains(t, out, "appdescr_app_addNewModel")
	assert.Contains(t, out, "ordersService")
}

func TestList_NotAnAdaptationProject(t *testing.T) {
	_, err := clitest.Run(t, t.TempDir(), NewChangeCommand(), "change", "list", "--project", t.TempDir())
	assert.Error(t, err)
}
