package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/pkg/mathutil"
	"github.com/urfave/cli/v2"
)

var orderFlag = &cli.StringFlag{
	Name:     "order",
	Usage:    "path of the JSON file containing the order",
	Required: true,
}

// orderJSON is the JSON representation of an order. Addresses and asset
// data are 0x prefixed hex strings, amounts are base 10 strings.
type orderJSON struct {
	MakerAddress          string `json:"makerAddress"`
	TakerAddress          string `json:"takerAddress"`
	FeeRecipientAddress   string `json:"feeRecipientAddress"`
	SenderAddress         string `json:"senderAddress"`
	MakerAssetAmount      string `json:"makerAssetAmount"`
	TakerAssetAmount      string `json:"takerAssetAmount"`
	MakerFee              string `json:"makerFee"`
	TakerFee              string `json:"takerFee"`
	ExpirationTimeSeconds string `json:"expirationTimeSeconds"`
	Salt                  string `json:"salt"`
	MakerAssetData        string `json:"makerAssetData"`
	TakerAssetData        string `json:"takerAssetData"`
}

func readOrder(path string) (*domain.Order, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading order file: %w", err)
	}
	return parseOrder(buf)
}

func parseOrder(buf []byte) (*domain.Order, error) {
	o := orderJSON{}
	if err := json.Unmarshal(buf, &o); err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	order := &domain.Order{}

	addresses := []struct {
		name  string
		value string
		dst   *common.Address
	}{
		{"makerAddress", o.MakerAddress, &order.MakerAddress},
		{"takerAddress", o.TakerAddress, &order.TakerAddress},
		{"feeRecipientAddress", o.FeeRecipientAddress, &order.FeeRecipientAddress},
		{"senderAddress", o.SenderAddress, &order.SenderAddress},
	}
	for _, a := range addresses {
		addr, err := parseAddress(a.value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", a.name, err)
		}
		*a.dst = addr
	}

	amounts := []struct {
		name  string
		value string
		dst   *uint256.Int
	}{
		{"makerAssetAmount", o.MakerAssetAmount, &order.MakerAssetAmount},
		{"takerAssetAmount", o.TakerAssetAmount, &order.TakerAssetAmount},
		{"makerFee", o.MakerFee, &order.MakerFee},
		{"takerFee", o.TakerFee, &order.TakerFee},
		{"expirationTimeSeconds", o.ExpirationTimeSeconds, &order.ExpirationTimeSeconds},
		{"salt", o.Salt, &order.Salt},
	}
	for _, a := range amounts {
		amount, err := parseAmount(a.value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", a.name, err)
		}
		a.dst.Set(amount)
	}

	makerAssetData, err := hexutil.Decode(o.MakerAssetData)
	if err != nil {
		return nil, fmt.Errorf("invalid makerAssetData: %w", err)
	}
	takerAssetData, err := hexutil.Decode(o.TakerAssetData)
	if err != nil {
		return nil, fmt.Errorf("invalid takerAssetData: %w", err)
	}
	order.MakerAssetData = makerAssetData
	order.TakerAssetData = takerAssetData

	return order, nil
}

// parseAddress accepts an empty string as the zero address.
func parseAddress(str string) (common.Address, error) {
	if len(str) <= 0 {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(str) {
		return common.Address{}, fmt.Errorf("%s is not a valid address", str)
	}
	return common.HexToAddress(str), nil
}

// parseAmount accepts an empty string as zero.
func parseAmount(str string) (*uint256.Int, error) {
	if len(str) <= 0 {
		return new(uint256.Int), nil
	}
	return mathutil.FromString(str)
}
