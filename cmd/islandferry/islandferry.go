package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/islandferry/pkg/api"
	"github.com/travigo/islandferry/pkg/board"
	"github.com/travigo/islandferry/pkg/config"
	"github.com/travigo/islandferry/pkg/scraper"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("ISLANDFERRY_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("ISLANDFERRY_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "islandferry",
		Description: "Toronto Island ferry schedule board, API and schedule generator",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultPath,
				Usage: "path to the YAML config file",
			},
		},

		Commands: []*cli.Command{
			api.RegisterCLI(),
			board.RegisterCLI(),
			scraper.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
