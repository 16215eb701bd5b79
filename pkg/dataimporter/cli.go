package dataimporter

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sysdevrun/transitchat/pkg/database"
	"github.com/sysdevrun/transitchat/pkg/dataimporter/datasets"
	"github.com/sysdevrun/transitchat/pkg/dataimporter/manager"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Download & convert GTFS Schedule datasets into the database",
		Subcommands: []*cli.Command{
			{
				Name:  "dataset",
				Usage: "Import a registered dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "repeat-every",
						Usage:    "Repeat this dataset import every X (e.g. 24h)",
						Required: false,
					},
				},
				Action: func(c *cli.Context) error {
					ctx := context.Background()

					db, err := database.Connect(ctx)
					if err != nil {
						return err
					}
					defer db.Close(ctx)

					repeatEvery := c.String("repeat-every")
					repeat := repeatEvery != ""
					var repeatDuration time.Duration
					if repeat {
						repeatDuration, err = time.ParseDuration(repeatEvery)
						if err != nil {
							return err
						}
					}

					dataset, err := datasets.GetDataSet(c.String("id"))
					if err != nil {
						return err
					}

					for {
						startTime := time.Now()

						if err := manager.ImportDataSet(ctx, db, &dataset); err != nil {
							return err
						}

						if !repeat {
							break
						}

						executionDuration := time.Since(startTime)
						log.Info().Msgf("Operation took %s", executionDuration.String())

						waitTime := repeatDuration - executionDuration
						if waitTime.Seconds() > 0 {
							time.Sleep(waitTime)
						}
					}

					return nil
				},
			},
			{
				Name:  "file",
				Usage: "Import a GTFS Schedule zip from the local filesystem",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "path",
						Usage:    "Path to the GTFS Schedule zip bundle",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					ctx := context.Background()

					db, err := database.Connect(ctx)
					if err != nil {
						return err
					}
					defer db.Close(ctx)

					return manager.ImportFile(ctx, db, c.String("path"))
				},
			},
			{
				Name:  "list",
				Usage: "List the registered datasets",
				Action: func(c *cli.Context) error {
					for _, dataset := range datasets.GetRegisteredDataSets() {
						log.Info().
							Str("id", dataset.Identifier).
							Str("provider", dataset.Provider.Name).
							Str("source", dataset.Source).
							Msg("Registered dataset")
					}

					return nil
				},
			},
		},
	}
}
