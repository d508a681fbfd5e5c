package cmd

import (
	"github.com/urfave/cli/v2"
)

// IssuesCommand returns the CLI command for listing a project's issues
func IssuesCommand() *cli.Command {
	return &cli.Command{
		Name:      "issues",
		Usage:     "List a project's issues, newest first",
		ArgsUsage: "<rid>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: radview issues <rid>", 1)
			}
			svc, close, err := loadService(c)
			if err != nil {
				return err
			}
			defer close()

			issues, err := svc.Issues(c.Args().First())
			if err != nil {
				return err
			}
			return printJSON(issues)
		},
	}
}

// IssueCommand returns the CLI command for showing one issue
func IssueCommand() *cli.Command {
	return &cli.Command{
		Name:      "issue",
		Usage:     "Show a single issue",
		ArgsUsage: "<rid> <issue-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: radview issue <rid> <issue-id>", 1)
			}
			svc, close, err := loadService(c)
			if err != nil {
				return err
			}
			defer close()

			issue, err := svc.Issue(c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return err
			}
			return printJSON(issue)
		},
	}
}
