package api

import (
	"context"

	"github.com/sysdevrun/transitchat/pkg/assistant"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					ctx := context.Background()

					stack, err := assistant.NewStack(ctx)
					if err != nil {
						return err
					}
					defer stack.Close(ctx)

					return SetupServer(c.String("listen"), stack)
				},
			},
		},
	}
}
