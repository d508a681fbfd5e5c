package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/radview/cmd"
	"github.com/radview/internal/profile"
)

const (
	version = "0.1.0"
)

func main() {
	app := &cli.App{
		Name:    "radview",
		Usage:   "Project Radicle issues, patches and project data into JSON views",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
			},
		},
		Commands: []*cli.Command{
			cmd.NodeCommand(),
			cmd.ProjectsCommand(),
			cmd.ProjectCommand(),
			cmd.PatchesCommand(),
			cmd.PatchCommand(),
			cmd.IssuesCommand(),
			cmd.IssueCommand(),
			cmd.APICommand(),
			cmd.ConfigCommand(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		var hintErr *profile.HintError
		if errors.As(err, &hintErr) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hintErr.Hint)
		}
		os.Exit(1)
	}
}
