package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/dutyboard/pkg/board"
	"github.com/travigo/dutyboard/pkg/config"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Load the schedule and serve the query API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "listen target for the web server, overrides the configuration",
			},
		},
		Action: func(c *cli.Context) error {
			b, err := board.Open(config.Path(c.String("config")))
			if err != nil {
				return err
			}

			// A failed first load is not fatal, the data can be fixed and reloaded through the API
			if err := b.Load(c.Context); err != nil {
				log.Error().Err(err).Msg("Starting without a schedule database")
			}

			listen := b.Config.Listen
			if c.String("listen") != "" {
				listen = c.String("listen")
			}

			log.Info().Str("listen", listen).Msg("Starting API server")

			return SetupServer(listen, b)
		},
	}
}
