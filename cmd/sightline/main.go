package main

import (
	"os"

	"github.com/bytearena/sightline/common/utils"
	"github.com/urfave/cli"
)

func main() {
	app := makeapp()

	if err := app.Run(os.Args); err != nil {
		utils.FailWith(err)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "sightline"
	app.Usage = "Spectator A-value and occlusion evaluation"
	app.Version = utils.GetVersion()

	configFlag := cli.StringFlag{
		Name:   "config",
		Usage:  "Settings file (YAML or JSON)",
		EnvVar: "SIGHTLINE_CONFIG",
	}

	app.Commands = []cli.Command{
		{
			Name:    "evaluate",
			Aliases: []string{"e"},
			Usage:   "Evaluate every spectator of a venue",
			Flags: []cli.Flag{
				configFlag,
				cli.StringFlag{Name: "venue", Usage: "Venue file; required"},
				cli.BoolFlag{Name: "parallel", Usage: "Evaluate spectators in parallel"},
				cli.IntFlag{Name: "workers", Value: 0, Usage: "Number of parallel workers (0: one per CPU)"},
				cli.BoolFlag{Name: "json", Usage: "Print results as JSON"},
				cli.BoolFlag{Name: "dump", Usage: "Dump full results, including footprints"},
				cli.BoolFlag{Name: "no-progress", Usage: "Disable the progress bar"},
				cli.BoolFlag{Name: "debug", Usage: "Log evaluation events as JSON lines on stderr"},
			},
			Action: func(c *cli.Context) error {
				return evaluateAction(evaluateOptions{
					config:     c.String("config"),
					venue:      c.String("venue"),
					parallel:   c.Bool("parallel"),
					workers:    c.Int("workers"),
					json:       c.Bool("json"),
					dump:       c.Bool("dump"),
					noProgress: c.Bool("no-progress"),
					debug:      c.Bool("debug"),
				})
			},
		},
		{
			Name:    "serve",
			Aliases: []string{"s"},
			Usage:   "Serve the evaluation HTTP API",
			Flags: []cli.Flag{
				configFlag,
				cli.IntFlag{Name: "port", Value: 8080, Usage: "Port serving the API"},
				cli.StringSliceFlag{Name: "venue", Usage: "Venue files to preload"},
				cli.BoolFlag{Name: "debug", Usage: "Log evaluation events as JSON lines"},
			},
			Action: func(c *cli.Context) error {
				return serveAction(c.String("config"), c.Int("port"), c.StringSlice("venue"), c.Bool("debug"))
			},
		},
		{
			Name:  "config",
			Usage: "Operations on settings files",
			Subcommands: []cli.Command{
				{
					Name:      "init",
					Usage:     "Write the default settings",
					ArgsUsage: "<file>",
					Action: func(c *cli.Context) error {
						return configInitAction(c.Args().First())
					},
				},
				{
					Name:  "show",
					Usage: "Print the effective settings",
					Flags: []cli.Flag{configFlag},
					Action: func(c *cli.Context) error {
						return configShowAction(c.String("config"))
					},
				},
			},
		},
	}

	return app
}
