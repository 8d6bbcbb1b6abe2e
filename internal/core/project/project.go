// Package project describes the adaptation project that is generated.
package project

import (
	"fmt"
	"path/filepath"
)

// Layer is the flexibility layer of the app variant.
type Layer string

const (
	CustomerBase Layer = "CUSTOMER_BASE"
	Vendor       Layer = "VENDOR"
)

const customerPrefix = "customer."

// Config holds everything needed to write a new adaptation project.
type Config struct {
	ProjectName  string
	TargetFolder string
	App          AppConfig
	Target       TargetConfig
	UI5          UI5Config
	Options      Options
}

// AppConfig describes the app variant and its base application.
type AppConfig struct {
	ID        string // id of the app variant
	Reference string // id of the base application
	Layer     Layer
	Title     string
	AppType   string
	Ach       string
	FioriID   string
}

// TargetConfig is the backend system the variant is created for.
type TargetConfig struct {
	System      string
	URL         string
	Client      string
	Destination string
}

// UI5Config selects the UI5 runtime used for preview.
type UI5Config struct {
	Version    string
	MinVersion string
	URL        string
}

// Options holds optional generation features.
type Options struct {
	TypeScript bool
}

// IsCustomerBase reports whether the variant lives in the CUSTOMER_BASE layer.
func (c *Config) IsCustomerBase() bool {
	return c.App.Layer != Vendor
}

// ProjectPath returns the directory the project is written to.
func (c *Config) ProjectPath() string {
	return filepath.Join(c.TargetFolder, c.ProjectName)
}

// VariantNamespace returns the namespace of manifest.appdescr_variant.
func (c *Config) VariantNamespace() string {
	return fmt.Sprintf("apps/%s/appVariants/%s/", c.App.Reference, c.App.ID)
}

// Validate checks that the mandatory fields are set.
func (c *Config) Validate() error {
	switch {
	case c.ProjectName == "":
		return fmt.Errorf("project name is missing")
	case c.App.ID == "":
		return fmt.Errorf("app variant id is missing")
	case c.App.Reference == "":
		return fmt.Errorf("base application is missing")
	case c.Target.URL == "" && c.Target.Destination == "":
		return fmt.Errorf("target system is missing")
	}
	return nil
}

// DefaultNamespace derives the variant namespace from the project name.
func DefaultNamespace(projectName string, isCustomerBase bool) string {
	if isCustomerBase {
		return customerPrefix + projectName
	}
	return projectName
}

// DefaultProjectName returns the first "app.variant<N>" not in use according to exists.
func DefaultProjectName(exists func(name string) bool) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("app.variant%d", i)
		if !exists(name) {
			return name
		}
	}
}
