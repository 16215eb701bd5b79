package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "assistant",
		Usage: "Ask the transit assistant from the terminal",
		Subcommands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "run one question through the assistant",
				ArgsUsage: "<question>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "dump the full exchange after answering",
					},
				},
				Action: func(c *cli.Context) error {
					question := c.Args().First()
					if question == "" {
						return errors.New("a question is required")
					}

					ctx := context.Background()

					stack, err := NewStack(ctx)
					if err != nil {
						return err
					}
					defer stack.Close(ctx)

					exchange, answer, err := stack.Assistant.RunExchange(ctx, NewExchange(), question)
					if err != nil {
						return err
					}

					fmt.Println(SpeakableText(answer))

					if c.Bool("debug") {
						pretty.Println(exchange)
					}

					return nil
				},
			},
		},
	}
}
