package main

import (
	"context"
	"fmt"

	"github.com/tdex-network/tdex-settlement/internal/core/ports"
	"github.com/urfave/cli/v2"
)

var webhookCmd = cli.Command{
	Name:  "webhook",
	Usage: "manage the webhooks notified of exchange events",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "add a webhook registered for some event",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "endpoint",
					Usage:    "the endpoint where to notify the webhook",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "secret",
					Usage: "the eventual secret to authenticate requests",
				},
				&cli.StringFlag{
					Name:  "topic",
					Usage: "FILL, CANCEL, CANCEL_UP_TO, EXCHANGE_STATUS or * for any",
					Value: ports.AnyTopic,
				},
			},
			Action: addWebhookAction,
		},
		{
			Name:  "list",
			Usage: "list the webhooks registered for some event",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "topic",
					Usage: "the topic to filter hooks by, all hooks are listed if omitted",
				},
			},
			Action: listWebhooksAction,
		},
		{
			Name:  "remove",
			Usage: "remove a webhook",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Usage:    "the id of the webhook to remove",
					Required: true,
				},
			},
			Action: removeWebhookAction,
		},
	},
}

type webhookInfo struct {
	Id       string `json:"id"`
	Topic    string `json:"topic"`
	Endpoint string `json:"endpoint"`
	Secured  bool   `json:"is_secured"`
}

func addWebhookAction(ctx *cli.Context) error {
	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	id, err := svcs.pubsub.AddWebhook(
		context.Background(),
		ctx.String("topic"), ctx.String("endpoint"), ctx.String("secret"),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "hook id:", id)
	return nil
}

func listWebhooksAction(ctx *cli.Context) error {
	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	hooks, err := svcs.pubsub.ListWebhooks(
		context.Background(), ctx.String("topic"),
	)
	if err != nil {
		return err
	}

	list := make([]webhookInfo, 0, len(hooks))
	for _, h := range hooks {
		list = append(list, webhookInfo{
			Id:       h.Id(),
			Topic:    h.Topic(),
			Endpoint: h.NotifyAt(),
			Secured:  h.IsSecured(),
		})
	}
	return printJSON(ctx, map[string]interface{}{"webhooks": list})
}

func removeWebhookAction(ctx *cli.Context) error {
	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svcs.pubsub.RemoveWebhook(
		context.Background(), ctx.String("id"),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "hook removed")
	return nil
}
