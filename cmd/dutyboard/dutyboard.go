package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/dutyboard/pkg/api"
	"github.com/travigo/dutyboard/pkg/board"
	"github.com/travigo/dutyboard/pkg/dataimporter"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("DUTYBOARD_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("DUTYBOARD_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	commands := []*cli.Command{
		api.RegisterCLI(),
		dataimporter.RegisterCLI(),
	}
	commands = append(commands, board.RegisterCLI()...)

	app := &cli.App{
		Name:        "dutyboard",
		Description: "Railway duty schedule lookups for the operations desk",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path of the configuration file, defaults to $DUTYBOARD_CONFIG or data/dutyboard.yaml",
			},
		},
		Commands: commands,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
