package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/radview/internal/api"
	"github.com/radview/internal/service"
)

// APICommand returns the CLI command for starting the API server
func APICommand() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Serve projection views over a local HTTP endpoint",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the API server",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := setup(c)
			if err != nil {
				return err
			}
			port := cfg.API.Port
			if c.IsSet("port") {
				port = c.Int("port")
			}

			p, err := loadProfile(cfg)
			if err != nil {
				return err
			}
			svc, err := service.FromProfile(p)
			if err != nil {
				return err
			}
			defer svc.Close()

			fmt.Printf("Serving radview API on port %d...\n", port)
			return api.NewServer(svc, port).Start()
		},
	}
}
