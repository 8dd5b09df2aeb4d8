package board

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/travigo/islandferry/pkg/config"
	"github.com/travigo/islandferry/pkg/ferry"
	"github.com/travigo/islandferry/pkg/schedulesource"
	"github.com/urfave/cli/v2"
)

func atFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "at",
		Usage: "RFC3339 instant to evaluate the schedule at instead of now",
	}
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Inspects the ferry timetable from the command line",
		Subcommands: []*cli.Command{
			{
				Name:  "routes",
				Usage: "list the routes running today",
				Flags: []cli.Flag{atFlag()},
				Action: func(c *cli.Context) error {
					builder, document, now, err := loadFromCLI(c)
					if err != nil {
						return err
					}

					for _, route := range builder.Routes(now, document) {
						fmt.Fprintln(c.App.Writer, route.Label)
					}

					return nil
				},
			},
			{
				Name:  "show",
				Usage: "print today's departures for a route",
				Flags: []cli.Flag{
					atFlag(),
					&cli.StringFlag{
						Name:  "route",
						Usage: "route key as used by the web page",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "destination location, e.g. \"Centre Island\"",
					},
					&cli.StringFlag{
						Name:  "direction",
						Usage: "\"Departs City\" or \"Departs Island\"",
					},
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "dump the full board structures",
					},
				},
				Action: func(c *cli.Context) error {
					route, err := routeFromCLI(c)
					if err != nil {
						return err
					}

					builder, document, now, err := loadFromCLI(c)
					if err != nil {
						return err
					}

					boards := builder.Boards(now, document, route)

					if c.Bool("debug") {
						pretty.Fprintf(c.App.Writer, "%# v\n", boards)
						return nil
					}

					PrintBoards(c.App.Writer, route, boards)
					return nil
				},
			},
		},
	}
}

func routeFromCLI(c *cli.Context) (ferry.Route, error) {
	if c.IsSet("route") {
		return ferry.ParseRouteKey(c.String("route"))
	}

	if !c.IsSet("location") || !c.IsSet("direction") {
		return ferry.Route{}, errors.New("either --route or both --location and --direction must be given")
	}

	direction, err := ferry.ParseDirection(c.String("direction"))
	if err != nil {
		return ferry.Route{}, err
	}

	return ferry.Route{Location: c.String("location"), Direction: direction}, nil
}

func loadFromCLI(c *cli.Context) (*Builder, *ferry.Document, time.Time, error) {
	cfg, err := config.Load(c.String("config"), c.IsSet("config"))
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	now := time.Now()
	if c.IsSet("at") {
		now, err = time.Parse(time.RFC3339, c.String("at"))
		if err != nil {
			return nil, nil, time.Time{}, fmt.Errorf("--at: %w", err)
		}
	}

	builder, err := FromConfig(cfg.Board)
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	source, err := schedulesource.FromConfig(cfg.Schedule, nil)
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	document, err := source.Load(c.Context)
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	return builder, document, now, nil
}

// PrintBoards writes boards as plain text in the same order as the web page.
func PrintBoards(w io.Writer, route ferry.Route, boards []Board) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w, "Ferries within the next hour are highlighted")

	if len(boards) == 0 {
		fmt.Fprintf(w, "No ferries are scheduled for %s today.\n", route.Label())
		return
	}

	for _, board := range boards {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Remaining Schedule for %s today:\n", board.Location)

		for _, departure := range board.Upcoming {
			marker := " "
			if departure.Highlight {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %s\n", marker, departure.Display)
		}

		fmt.Fprintln(w, "  END OF THE DAY")

		for _, departure := range board.Past {
			fmt.Fprintf(w, "  %s\n", departure.Display)
		}
	}
}
