package env

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/fadp-go/internal/core/abap"
	"github.com/nightconcept/fadp-go/internal/core/system"
	"github.com/nightconcept/fadp-go/internal/core/validators"
)

// Names of the backend flags.
const (
	SystemFlag   = "system"
	ClientFlag   = "client"
	UsernameFlag = "username"
	PasswordFlag = "password"
)

// BackendFlags select a backend system and its credentials.
func BackendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     SystemFlag,
			Aliases:  []string{"s"},
			Usage:    "saved system, destination or system URL",
			Required: true,
		},
		&cli.StringFlag{
			Name:  ClientFlag,
			Usage: "SAP client, overrides the client of the saved system",
		},
		&cli.StringFlag{
			Name:    UsernameFlag,
			Aliases: []string{"u"},
			Usage:   "user for basic authentication",
			EnvVars: []string{"FADP_USERNAME"},
		},
		&cli.StringFlag{
			Name:    PasswordFlag,
			Usage:   "password for basic authentication",
			EnvVars: []string{"FADP_PASSWORD"},
		},
	}
}

// Backend connects to the system selected by the backend flags.
func (e *Env) Backend(c *cli.Context) (*system.Endpoint, *abap.Provider, error) {
	endpoint, err := e.Endpoint(c, c.String(SystemFlag))
	if err != nil {
		return nil, nil, err
	}
	if client := c.String(ClientFlag); client != "" {
		if err := validators.ValidateClient(client); err != nil {
			return nil, nil, cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		endpoint.Client = client
	}
	if user := c.String(UsernameFlag); user != "" {
		endpoint.Username = user
		endpoint.Password = c.String(PasswordFlag)
	} else if password := c.String(PasswordFlag); password != "" {
		endpoint.Password = password
	}
	return endpoint, endpoint.Provider(e.HTTP), nil
}
