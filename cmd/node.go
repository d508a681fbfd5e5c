package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/radview/internal/storage"
)

// NodeCommand returns the CLI command for node identity helpers
func NodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "node",
		Usage: "Inspect the local node",
		Subcommands: []*cli.Command{
			{
				Name:  "nid",
				Usage: "Print the local node id",
				Action: func(c *cli.Context) error {
					svc, close, err := loadService(c)
					if err != nil {
						return err
					}
					defer close()

					fmt.Println(svc.NID())
					return nil
				},
			},
			{
				Name:      "rid",
				Usage:     "Print the repository id of a working copy",
				ArgsUsage: "[path]",
				Action: func(c *cli.Context) error {
					if _, err := setup(c); err != nil {
						return err
					}
					path := c.Args().First()
					if path == "" {
						wd, err := os.Getwd()
						if err != nil {
							return err
						}
						path = wd
					}
					rid, err := storage.RIDAt(path)
					if err != nil {
						return err
					}
					fmt.Println(rid)
					return nil
				},
			},
		},
	}
}
