package scraper

import (
	"github.com/travigo/islandferry/pkg/config"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "scraper",
		Usage: "Builds the timetable document from the published ferry schedule page",
		Subcommands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "scrape the schedule page and write the JSON timetable",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "schedule page URL or local HTML file, overrides the config file",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "path to write the timetable to, overrides the config file",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"), c.IsSet("config"))
					if err != nil {
						return err
					}

					source := cfg.Scraper.Source
					if c.IsSet("url") {
						source = c.String("url")
					}

					output := cfg.Scraper.Output
					if c.IsSet("output") {
						output = c.String("output")
					}

					timeout, err := cfg.Schedule.Timeout()
					if err != nil {
						return err
					}

					_, err = Generate(c.Context, source, output, timeout)
					return err
				},
			},
		},
	}
}
