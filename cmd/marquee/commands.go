package main

import "github.com/urfave/cli/v3"

func (r *runner) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "tui",
			Usage:  "Start the interactive browser (default)",
			Action: r.TUI,
		},
		{
			Name:  "login",
			Usage: "Sign in with email and password",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "email",
					Aliases: []string{"e"},
					Usage:   "Account email (prompted when omitted)",
				},
			},
			Action: r.Login,
		},
		{
			Name:  "register",
			Usage: "Create an account",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "first-name", Usage: "First name"},
				&cli.StringFlag{Name: "last-name", Usage: "Last name"},
				&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email"},
			},
			Action: r.Register,
		},
		{
			Name:   "logout",
			Usage:  "Sign out and forget the saved session",
			Action: r.Logout,
		},
		{
			Name:   "whoami",
			Usage:  "Show the signed-in account",
			Action: r.Whoami,
		},
		{
			Name:  "watchlist",
			Usage: "Manage the account watchlist",
			Commands: []*cli.Command{
				{
					Name:      "list",
					Usage:     "List watchlist entries",
					ArgsUsage: "<movie|tv>",
					Action:    r.WatchlistList,
				},
				{
					Name:      "add",
					Usage:     "Add a title to the watchlist",
					ArgsUsage: "<movie|tv> <id>",
					Action:    r.WatchlistAdd,
				},
				{
					Name:      "remove",
					Aliases:   []string{"rm"},
					Usage:     "Remove a title from the watchlist",
					ArgsUsage: "<movie|tv> <id>",
					Action:    r.WatchlistRemove,
				},
			},
		},
		{
			Name:  "config",
			Usage: "Configuration helpers",
			Commands: []*cli.Command{
				{
					Name:  "init",
					Usage: "Write a config file with default settings",
					Flags: []cli.Flag{
						&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing file"},
					},
					Action: r.ConfigInit,
				},
			},
		},
		{
			Name:   "version",
			Usage:  "Print the version",
			Action: r.PrintVersion,
		},
	}
}
