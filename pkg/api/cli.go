package api

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/travigo/islandferry/pkg/api/routes"
	"github.com/travigo/islandferry/pkg/board"
	"github.com/travigo/islandferry/pkg/config"
	"github.com/travigo/islandferry/pkg/redis_client"
	"github.com/travigo/islandferry/pkg/schedulesource"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Serves the ferry schedule page and JSON API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides the config file",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"), c.IsSet("config"))
					if err != nil {
						return err
					}

					if err := redis_client.Connect(c.Context); err != nil {
						if !errors.Is(err, redis_client.ErrNotConfigured) {
							return err
						}
						log.Info().Msg("Redis not configured, schedule will not be cached")
					}

					source, err := schedulesource.FromConfig(cfg.Schedule, redis_client.Client)
					if err != nil {
						return err
					}

					builder, err := board.FromConfig(cfg.Board)
					if err != nil {
						return err
					}

					listen := cfg.Server.Listen
					if c.IsSet("listen") {
						listen = c.String("listen")
					}

					log.Info().
						Str("listen", listen).
						Str("source", source.Name()).
						Str("timezone", cfg.Board.Timezone).
						Msg("Starting web api")

					return SetupServer(listen, &routes.Backend{
						Source:  source,
						Builder: builder,
					})
				},
			},
		},
	}
}
