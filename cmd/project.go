package cmd

import (
	"github.com/urfave/cli/v2"
)

// ProjectsCommand returns the CLI command for listing projects
func ProjectsCommand() *cli.Command {
	return &cli.Command{
		Name:  "projects",
		Usage: "List public seeded projects",
		Action: func(c *cli.Context) error {
			svc, close, err := loadService(c)
			if err != nil {
				return err
			}
			defer close()

			infos, err := svc.Projects()
			if err != nil {
				return err
			}
			return printJSON(infos)
		},
	}
}

// ProjectCommand returns the CLI command for showing one project
func ProjectCommand() *cli.Command {
	return &cli.Command{
		Name:      "project",
		Usage:     "Show a project overview",
		ArgsUsage: "<rid>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: radview project <rid>", 1)
			}
			svc, close, err := loadService(c)
			if err != nil {
				return err
			}
			defer close()

			info, err := svc.Project(c.Args().First())
			if err != nil {
				return err
			}
			return printJSON(info)
		},
	}
}
