package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_Commands(t *testing.T) {
	app := newApp()
	seen := map[string]bool{}
	for _, cmd := range app.Commands {
		assert.False(t, seen[cmd.Name], "duplicate command %s", cmd.Name)
		seen[cmd.Name] = true
	}
	for _, name := range []string{"generate", "apps", "systems", "ui5", "manifest", "project", "i18n", "change", "self"} {
		assert.True(t, seen[name], "missing command %s", name)
	}
}

func TestNewApp_Help(t *testing.T) {
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out

	require.NoError(t, app.Run([]string{"fadp", "--help"}))
	assert.Contains(t, out.String(), "adaptation projects")
}
