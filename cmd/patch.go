package cmd

import (
	"github.com/urfave/cli/v2"
)

// PatchesCommand returns the CLI command for listing a project's patches
func PatchesCommand() *cli.Command {
	return &cli.Command{
		Name:      "patches",
		Usage:     "List a project's patches, newest first",
		ArgsUsage: "<rid>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: radview patches <rid>", 1)
			}
			svc, close, err := loadService(c)
			if err != nil {
				return err
			}
			defer close()

			patches, err := svc.Patches(c.Args().First())
			if err != nil {
				return err
			}
			return printJSON(patches)
		},
	}
}

// PatchCommand returns the CLI command for showing one patch
func PatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "patch",
		Usage:     "Show a single patch",
		ArgsUsage: "<rid> <patch-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: radview patch <rid> <patch-id>", 1)
			}
			svc, close, err := loadService(c)
			if err != nil {
				return err
			}
			defer close()

			patch, err := svc.Patch(c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return err
			}
			return printJSON(patch)
		},
	}
}
