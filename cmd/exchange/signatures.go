package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tdex-network/tdex-settlement/internal/core/application/signature"
	"github.com/urfave/cli/v2"
)

var signCmd = cli.Command{
	Name:  "sign",
	Usage: "sign an order with a private key",
	Flags: []cli.Flag{
		orderFlag,
		&cli.StringFlag{
			Name:     "key",
			Usage:    "the hex encoded private key of the signer",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "type",
			Usage: "the signature type, either eip712 or ethsign",
			Value: "eip712",
		},
	},
	Action: signAction,
}

var presignCmd = cli.Command{
	Name:  "presign",
	Usage: "mark a hash as approved by a signer",
	Flags: []cli.Flag{
		callerFlag,
		&cli.StringFlag{
			Name:     "hash",
			Usage:    "the hash to approve",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "signer",
			Usage:    "the signer approving the hash",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "signature",
			Usage: "signature of the hash by the signer, required if caller is not the signer",
		},
	},
	Action: presignAction,
}

var approveValidatorCmd = cli.Command{
	Name:  "approve-validator",
	Usage: "approve or revoke a signature validator for the caller",
	Flags: []cli.Flag{
		callerFlag,
		&cli.StringFlag{
			Name:     "validator",
			Usage:    "the address of the validator",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "revoke",
			Usage: "revoke the approval instead of granting it",
		},
	},
	Action: approveValidatorAction,
}

func signAction(ctx *cli.Context) error {
	order, err := readOrder(ctx.String("order"))
	if err != nil {
		return err
	}
	keyBytes, err := hexutil.Decode(ctx.String("key"))
	if err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}
	if len(keyBytes) != btcec.PrivKeyBytesLen {
		return fmt.Errorf("invalid private key length")
	}
	key, _ := btcec.PrivKeyFromBytes(keyBytes)

	var sigType signature.SignatureType
	switch strings.ToLower(ctx.String("type")) {
	case "eip712":
		sigType = signature.SignatureTypeEIP712
	case "ethsign":
		sigType = signature.SignatureTypeEthSign
	default:
		return fmt.Errorf("unknown signature type %s", ctx.String("type"))
	}

	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	hash := svcs.exchange.GetOrderHash(*order)
	sig, err := signature.Sign(key, hash, sigType)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]string{
		"order_hash": hash.Hex(),
		"signer":     signature.PubkeyToAddress(key.PubKey()).Hex(),
		"signature":  hexutil.Encode(sig),
	})
}

func presignAction(ctx *cli.Context) error {
	caller, err := parseAddress(ctx.String("caller"))
	if err != nil {
		return err
	}
	signer, err := parseAddress(ctx.String("signer"))
	if err != nil {
		return err
	}
	hashBytes, err := hexutil.Decode(ctx.String("hash"))
	if err != nil || len(hashBytes) != common.HashLength {
		return fmt.Errorf("invalid hash")
	}
	sig, err := decodeSignature(ctx.String("signature"))
	if err != nil {
		return err
	}

	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svcs.exchange.PreSign(
		context.Background(), caller, common.BytesToHash(hashBytes), signer, sig,
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "hash pre-signed")
	return nil
}

func approveValidatorAction(ctx *cli.Context) error {
	caller, err := parseAddress(ctx.String("caller"))
	if err != nil {
		return err
	}
	validator, err := parseAddress(ctx.String("validator"))
	if err != nil {
		return err
	}
	approval := !ctx.Bool("revoke")

	svcs, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svcs.exchange.SetSignatureValidatorApproval(
		context.Background(), caller, validator, approval,
	); err != nil {
		return err
	}

	if approval {
		fmt.Fprintln(ctx.App.Writer, "validator approved")
		return nil
	}
	fmt.Fprintln(ctx.App.Writer, "validator revoked")
	return nil
}
