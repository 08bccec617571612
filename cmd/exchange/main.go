package main

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := newApp()

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = version
	app.Name = "exchange"
	app.Usage = "Command line interface to settle signed orders against the local exchange ledger"
	app.Commands = append(
		app.Commands,
		&hashCmd,
		&statusCmd,
		&signCmd,
		&fillCmd,
		&cancelCmd,
		&cancelUpToCmd,
		&presignCmd,
		&approveValidatorCmd,
		&mintCmd,
		&mintNftCmd,
		&balanceCmd,
		&ownerCmd,
		&webhookCmd,
	)
	return app
}

func printJSON(ctx *cli.Context, resp interface{}) error {
	b, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return fmt.Errorf("unable to encode response: %w", err)
	}
	fmt.Fprintln(ctx.App.Writer, string(b))
	return nil
}

func fatal(err error) {
	log.Errorf("[exchange] %v", err)
	os.Exit(1)
}
