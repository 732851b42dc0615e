// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output the batch report as JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

// initCommand writes empty CSV templates
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create empty Mannschaften.csv and Spieler.csv templates",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory for the templates",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite existing templates",
			},
		},
		Action: r.Init,
	}
}

// importCommand converts the CSV tables into team files
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Build one team file per team from the team and player tables",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "teams",
				Usage: "Team table (defaults to import.teams_csv)",
			},
			&cli.StringFlag{
				Name:  "players",
				Usage: "Player table (defaults to import.players_csv)",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output directory (defaults to output.dir)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Reconcile and report without writing files",
			},
		}, jsonFlags()...),
		Action: r.Import,
	}
}

// teamCommand handles single team files
func teamCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "team",
		Usage: "Single team file operations",
		Commands: []*cli.Command{
			{
				Name:  "new",
				Usage: "Create a team file filled with placeholder players",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Team name, also the file name", Required: true},
					&cli.StringFlag{Name: "club", Usage: "Club name"},
					&cli.StringFlag{Name: "club-short", Usage: "Club short name"},
					&cli.StringFlag{Name: "league", Usage: "League (Liga)"},
					&cli.StringFlag{Name: "class", Usage: "League class (Spielklasse)"},
					&cli.StringFlag{Name: "district", Usage: "District (Bezirk)"},
					&cli.StringFlag{Name: "captain", Usage: "Captain (Spielführer)"},
					&cli.StringFlag{Name: "supervisor", Usage: "Supervisor (Betreuer)"},
					&cli.StringFlag{Name: "club-number", Usage: "Club number (Vereinsnummer)"},
					&cli.StringFlag{Name: "league-number", Usage: "League number (LV-Nummer)"},
					&cli.IntFlag{
						Name:    "players",
						Aliases: []string{"n"},
						Usage:   "Number of placeholder players",
						Value:   10,
					},
				},
				Action: r.TeamNew,
			},
			{
				Name:      "rename",
				Usage:     "Rewrite a team file under a new team name",
				ArgsUsage: "<file.ini> <new name>",
				Action:    r.TeamRename,
			},
			{
				Name:      "show",
				Usage:     "Print the metadata and players of a team file",
				ArgsUsage: "<file.ini>",
				Action:    r.TeamShow,
			},
			{
				Name:      "export",
				Usage:     "Export the players of a team file as CSV",
				ArgsUsage: "<file.ini>",
				Action:    r.TeamExport,
			},
		},
	}
}

// folderCommand handles folders of team files
func folderCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "folder",
		Usage: "Team folder operations",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "List the team files of a folder",
				ArgsUsage: "<dir>",
				Action:    r.FolderList,
			},
			{
				Name:      "correct",
				Usage:     "Rewrite every team file sorted, sanitized and re-encoded",
				ArgsUsage: "<dir>",
				Flags:     jsonFlags(),
				Action:    r.FolderCorrect,
			},
			{
				Name:      "export",
				Usage:     "Export all team files into one player and one team table",
				ArgsUsage: "<dir>",
				Flags:     jsonFlags(),
				Action:    r.FolderExport,
			},
		},
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file operations",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Destination of the configuration file",
						Value: defaultConfigPath,
					},
					&cli.BoolFlag{
						Name:  "from-current",
						Usage: "Write the configuration currently in effect instead of the defaults",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}

// browseCommand launches the interactive team browser
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Aliases:   []string{"tui"},
		Usage:     "Browse and correct a team folder interactively",
		ArgsUsage: "[dir]",
		Action:    r.Browse,
	}
}
