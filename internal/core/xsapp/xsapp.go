// Package xsapp reads the approuter configuration (xs-app.json) of an
// application and checks its routes.
package xsapp

import (
	"fmt"
	"regexp"

	"github.com/nightconcept/fadp-go/internal/core/projectaccess"
)

const FileName = "xs-app.json"

// Route is one entry of the routes array.
type Route struct {
	Source         string `json:"source"`
	Target         string `json:"target,omitempty"`
	Destination    string `json:"destination,omitempty"`
	Service        string `json:"service,omitempty"`
	LocalDir       string `json:"localDir,omitempty"`
	Endpoint       string `json:"endpoint,omitempty"`
	Authentication string `json:"authenticationType,omitempty"`
	CSRFProtection *bool  `json:"csrfProtection,omitempty"`
}

// App is the content of xs-app.json.
type App struct {
	WelcomeFile          string  `json:"welcomeFile,omitempty"`
	AuthenticationMethod string  `json:"authenticationMethod,omitempty"`
	Routes               []Route `json:"routes"`
}

// Load reads the xs-app.json at path.
func Load(path string) (*App, error) {
	var app App
	if err := projectaccess.ReadJSON(path, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// ValidateRoutes checks the routes of app against the known destination
// names and returns one message per problem.
func ValidateRoutes(app *App, destinations []string) []string {
	known := make(map[string]bool, len(destinations))
	for _, d := range destinations {
		known[d] = true
	}

	var messages []string
	for i, r := range app.Routes {
		if r.Source == "" {
			messages = append(messages, fmt.Sprintf("route %d has no source", i))
			continue
		}
		if _, err := regexp.Compile(r.Source); err != nil {
			messages = append(messages, fmt.Sprintf("route %q has an invalid source pattern: %v", r.Source, err))
		}
		switch {
		case r.Destination == "" && r.Service == "" && r.LocalDir == "":
			messages = append(messages, fmt.Sprintf("route %q has neither a destination nor a service", r.Source))
		case r.Destination != "" && len(known) > 0 && !known[r.Destination]:
			messages = append(messages, fmt.Sprintf("route %q uses unknown destination %q", r.Source, r.Destination))
		}
	}
	if app.WelcomeFile != "" && !welcomeFileRouted(app) {
		messages = append(messages, fmt.Sprintf("welcome file %q is not served by any route", app.WelcomeFile))
	}
	return messages
}

// welcomeFileRouted reports whether a route source matches the welcome file.
func welcomeFileRouted(app *App) bool {
	for _, r := range app.Routes {
		re, err := regexp.Compile(r.Source)
		if err != nil {
			continue
		}
		if re.MatchString(app.WelcomeFile) {
			return true
		}
	}
	return false
}
