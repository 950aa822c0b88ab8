package dataimporter

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/dutyboard/pkg/config"
	"github.com/travigo/dutyboard/pkg/dataimporter/datasets"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Check the configured schedule datasets",
		Subcommands: []*cli.Command{
			{
				Name:  "dataset",
				Usage: "Parse a single dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(config.Path(c.String("config")))
					if err != nil {
						return err
					}

					dataSets, err := cfg.DataSets()
					if err != nil {
						return err
					}

					dataset, err := findDataSet(dataSets, c.String("id"))
					if err != nil {
						return err
					}

					if err := cfg.Loader().Check(dataset); err != nil {
						return err
					}

					log.Info().Str("dataset", dataset.Identifier).Str("format", string(dataset.ResolvedFormat())).Msg("Dataset parsed")

					return nil
				},
			},
			{
				Name:  "check",
				Usage: "Load every configured dataset into a database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "repeat-every",
						Usage: "Repeat the check every X (eg. 5m) until interrupted",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(config.Path(c.String("config")))
					if err != nil {
						return err
					}

					repeatEvery := c.String("repeat-every")
					if repeatEvery == "" {
						return check(c.Context, cfg)
					}

					repeatDuration, err := time.ParseDuration(repeatEvery)
					if err != nil {
						return err
					}

					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
					defer stop()

					for {
						startTime := time.Now()

						if err := check(ctx, cfg); err != nil {
							log.Error().Err(err).Msg("Dataset check failed")
						}

						executionDuration := time.Since(startTime)
						log.Info().Msgf("Operation took %s", executionDuration.String())

						select {
						case <-ctx.Done():
							return nil
						case <-time.After(repeatDuration - executionDuration):
						}
					}
				},
			},
		},
	}
}

func check(ctx context.Context, cfg *config.Config) error {
	dataSets, err := cfg.DataSets()
	if err != nil {
		return err
	}

	_, err = cfg.Loader().Load(ctx, dataSets)
	return err
}

func findDataSet(dataSets []datasets.DataSet, identifier string) (datasets.DataSet, error) {
	for _, dataset := range dataSets {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return datasets.DataSet{}, fmt.Errorf("dataset %s not configured", identifier)
}
