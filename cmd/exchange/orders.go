package main

import (
	"context"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/pkg/mathutil"
	"github.com/urfave/cli/v2"
)

var callerFlag = &cli.StringFlag{
	Name:     "caller",
	Usage:    "the address on behalf of which the command is executed",
	Required: true,
}

var signatureFlag = &cli.StringFlag{
	Name:  "signature",
	Usage: "the hex encoded signature of the order, trailed by its type",
}

var hashCmd = cli.Command{
	Name:   "hash",
	Usage:  "print the hash of an order",
	Flags:  []cli.Flag{orderFlag},
	Action: hashAction,
}

var statusCmd = cli.Command{
	Name:   "status",
	Usage:  "print the status of an order",
	Flags:  []cli.Flag{orderFlag, signatureFlag},
	Action: statusAction,
}

var fillCmd = cli.Command{
	Name:  "fill",
	Usage: "fill an order up to the given amount of taker asset",
	Flags: []cli.Flag{
		callerFlag,
		orderFlag,
		signatureFlag,
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "the amount of taker asset to fill",
			Required: true,
		},
	},
	Action: fillAction,
}

var cancelCmd = cli.Command{
	Name:   "cancel",
	Usage:  "cancel an order",
	Flags:  []cli.Flag{callerFlag, orderFlag},
	Action: cancelAction,
}

var cancelUpToCmd = cli.Command{
	Name:  "cancel-up-to",
	Usage: "cancel all orders of the caller with salt lower or equal to the given one",
	Flags: []cli.Flag{
		callerFlag,
		&cli.StringFlag{
			Name:     "salt",
			Usage:    "the highest salt to cancel",
			Required: true,
		},
	},
	Action: cancelUpToAction,
}

func hashAction(ctx *cli.Context) error {
	order, err := readOrder(ctx.String("order"))
	if err != nil {
		return err
	}

	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	return printJSON(ctx, map[string]string{
		"order_hash": svcs.exchange.GetOrderHash(*order).Hex(),
	})
}

func statusAction(ctx *cli.Context) error {
	order, err := readOrder(ctx.String("order"))
	if err != nil {
		return err
	}
	signature, err := decodeSignature(ctx.String("signature"))
	if err != nil {
		return err
	}

	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	info, err := svcs.exchange.GetOrderInfo(context.Background(), *order, signature)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]string{
		"order_hash":                info.Hash.Hex(),
		"status":                    info.Status.String(),
		"taker_asset_filled_amount": mathutil.ToString(info.TakerAssetFilledAmount),
	})
}

func fillAction(ctx *cli.Context) error {
	caller, err := parseAddress(ctx.String("caller"))
	if err != nil {
		return err
	}
	order, err := readOrder(ctx.String("order"))
	if err != nil {
		return err
	}
	signature, err := decodeSignature(ctx.String("signature"))
	if err != nil {
		return err
	}
	amount, err := parseAmount(ctx.String("amount"))
	if err != nil {
		return err
	}

	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	results, status, err := svcs.exchange.FillOrder(
		context.Background(), caller, *order, amount, signature,
	)
	if err != nil {
		return err
	}

	return printJSON(ctx, fillResultsInfo(status, results))
}

func cancelAction(ctx *cli.Context) error {
	caller, err := parseAddress(ctx.String("caller"))
	if err != nil {
		return err
	}
	order, err := readOrder(ctx.String("order"))
	if err != nil {
		return err
	}

	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	_, status, err := svcs.exchange.CancelOrder(
		context.Background(), caller, *order,
	)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]string{
		"order_hash": svcs.exchange.GetOrderHash(*order).Hex(),
		"status":     status.String(),
	})
}

func cancelUpToAction(ctx *cli.Context) error {
	caller, err := parseAddress(ctx.String("caller"))
	if err != nil {
		return err
	}
	salt, err := parseAmount(ctx.String("salt"))
	if err != nil {
		return err
	}

	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	epoch, err := svcs.exchange.CancelOrdersUpTo(
		context.Background(), caller, salt,
	)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]string{
		"maker": caller.Hex(),
		"epoch": mathutil.ToString(epoch),
	})
}

func fillResultsInfo(
	status domain.ExchangeStatus, results *domain.FillResults,
) map[string]string {
	return map[string]string{
		"status":                    status.String(),
		"maker_asset_filled_amount": mathutil.ToString(results.MakerAssetFilledAmount),
		"taker_asset_filled_amount": mathutil.ToString(results.TakerAssetFilledAmount),
		"maker_fee_paid":            mathutil.ToString(results.MakerFeePaid),
		"taker_fee_paid":            mathutil.ToString(results.TakerFeePaid),
	}
}

func decodeSignature(str string) ([]byte, error) {
	if len(str) <= 0 {
		return nil, nil
	}
	return hexutil.Decode(str)
}
