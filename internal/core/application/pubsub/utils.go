package pubsub

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/pkg/mathutil"
)

func getEventPayload(event domain.Event) (map[string]interface{}, error) {
	switch e := event.(type) {
	case domain.FillEvent:
		return getFillPayload(e), nil
	case domain.CancelEvent:
		return map[string]interface{}{
			"event":         e.Topic(),
			"maker":         e.MakerAddress.Hex(),
			"fee_recipient": e.FeeRecipientAddress.Hex(),
			"maker_asset":   hexutil.Encode(e.MakerAssetData),
			"taker_asset":   hexutil.Encode(e.TakerAssetData),
			"order_hash":    e.OrderHash.Hex(),
		}, nil
	case domain.CancelUpToEvent:
		return map[string]interface{}{
			"event":       e.Topic(),
			"maker":       e.MakerAddress.Hex(),
			"order_epoch": mathutil.ToString(e.OrderEpoch),
		}, nil
	case domain.ExchangeStatusEvent:
		return map[string]interface{}{
			"event":      e.Topic(),
			"code":       uint8(e.Status),
			"status":     e.Status.String(),
			"order_hash": e.OrderHash.Hex(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown event type %T", event)
	}
}

func getFillPayload(e domain.FillEvent) map[string]interface{} {
	results := e.FillResults
	return map[string]interface{}{
		"event":         e.Topic(),
		"maker":         e.MakerAddress.Hex(),
		"taker":         e.TakerAddress.Hex(),
		"fee_recipient": e.FeeRecipientAddress.Hex(),
		"maker_asset":   hexutil.Encode(e.MakerAssetData),
		"taker_asset":   hexutil.Encode(e.TakerAssetData),
		"order_hash":    e.OrderHash.Hex(),
		"fill_results": map[string]string{
			"maker_filled":   mathutil.ToString(results.MakerAssetFilledAmount),
			"taker_filled":   mathutil.ToString(results.TakerAssetFilledAmount),
			"maker_fee_paid": mathutil.ToString(results.MakerFeePaid),
			"taker_fee_paid": mathutil.ToString(results.TakerFeePaid),
		},
		"price": getPricePayload(
			results.MakerAssetFilledAmount, results.TakerAssetFilledAmount,
		),
	}
}

// getPricePayload returns the price of the fill expressed as units of taker
// asset per unit of maker asset, and the reverse.
func getPricePayload(makerFilled, takerFilled *uint256.Int) map[string]string {
	if makerFilled == nil || takerFilled == nil ||
		makerFilled.IsZero() || takerFilled.IsZero() {
		return map[string]string{}
	}
	maker := decimal.NewFromBigInt(makerFilled.ToBig(), 0)
	taker := decimal.NewFromBigInt(takerFilled.ToBig(), 0)
	return map[string]string{
		"maker_price": taker.Div(maker).String(),
		"taker_price": maker.Div(taker).String(),
	}
}
