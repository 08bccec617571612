package main

import (
	"context"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/pkg/mathutil"
	"github.com/urfave/cli/v2"
)

var tokenFlag = &cli.StringFlag{
	Name:     "token",
	Usage:    "the address of the token",
	Required: true,
}

var ownerFlag = &cli.StringFlag{
	Name:     "owner",
	Usage:    "the address of the owner",
	Required: true,
}

var tokenIDFlag = &cli.StringFlag{
	Name:     "id",
	Usage:    "the id of the non fungible token",
	Required: true,
}

var mintCmd = cli.Command{
	Name:  "mint",
	Usage: "credit an amount of fungible token to an owner",
	Flags: []cli.Flag{
		tokenFlag,
		ownerFlag,
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "the amount to credit",
			Required: true,
		},
	},
	Action: mintAction,
}

var mintNftCmd = cli.Command{
	Name:   "mint-nft",
	Usage:  "assign a new non fungible token to an owner",
	Flags:  []cli.Flag{tokenFlag, tokenIDFlag, ownerFlag},
	Action: mintNftAction,
}

var balanceCmd = cli.Command{
	Name:   "balance",
	Usage:  "print the fungible token balance of an owner",
	Flags:  []cli.Flag{tokenFlag, ownerFlag},
	Action: balanceAction,
}

var ownerCmd = cli.Command{
	Name:   "owner",
	Usage:  "print the owner of a non fungible token",
	Flags:  []cli.Flag{tokenFlag, tokenIDFlag},
	Action: ownerAction,
}

func mintAction(ctx *cli.Context) error {
	token, err := parseAddress(ctx.String("token"))
	if err != nil {
		return err
	}
	owner, err := parseAddress(ctx.String("owner"))
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

	balance, err := svcs.assets.Mint(context.Background(), token, owner, amount)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]string{
		"asset_data": hexutil.Encode(domain.EncodeERC20AssetData(token)),
		"balance":    mathutil.ToString(balance),
	})
}

func mintNftAction(ctx *cli.Context) error {
	token, err := parseAddress(ctx.String("token"))
	if err != nil {
		return err
	}
	owner, err := parseAddress(ctx.String("owner"))
	if err != nil {
		return err
	}
	tokenID, err := parseAmount(ctx.String("id"))
	if err != nil {
		return err
	}

	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svcs.assets.MintNonFungible(
		context.Background(), token, tokenID, owner,
	); err != nil {
		return err
	}

	return printJSON(ctx, map[string]string{
		"asset_data": hexutil.Encode(domain.EncodeERC721AssetData(token, tokenID)),
		"owner":      owner.Hex(),
	})
}

func balanceAction(ctx *cli.Context) error {
	token, err := parseAddress(ctx.String("token"))
	if err != nil {
		return err
	}
	owner, err := parseAddress(ctx.String("owner"))
	if err != nil {
		return err
	}

	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	balance, err := svcs.assets.GetBalance(context.Background(), token, owner)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]string{
		"balance": mathutil.ToString(balance),
	})
}

func ownerAction(ctx *cli.Context) error {
	token, err := parseAddress(ctx.String("token"))
	if err != nil {
		return err
	}
	tokenID, err := parseAmount(ctx.String("id"))
	if err != nil {
		return err
	}

	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	owner, err := svcs.assets.GetOwner(context.Background(), token, tokenID)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]string{
		"owner": owner.Hex(),
	})
}
