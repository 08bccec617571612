package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/tdex-network/tdex-settlement/pkg/mathutil"
)

// FillResults are the amounts moved by a single fill.
type FillResults struct {
	MakerAssetFilledAmount *uint256.Int
	TakerAssetFilledAmount *uint256.Int
	MakerFeePaid           *uint256.Int
	TakerFeePaid           *uint256.Int
}

// NewEmptyFillResults returns zeroed fill results.
func NewEmptyFillResults() *FillResults {
	return &FillResults{
		MakerAssetFilledAmount: new(uint256.Int),
		TakerAssetFilledAmount: new(uint256.Int),
		MakerFeePaid:           new(uint256.Int),
		TakerFeePaid:           new(uint256.Int),
	}
}

// IsEmpty returns whether nothing has been filled.
func (r *FillResults) IsEmpty() bool {
	return r.TakerAssetFilledAmount == nil || r.TakerAssetFilledAmount.IsZero()
}

// CalculateFillResults computes the amounts to settle for filling an order
// that was already filled by filledAmount units of taker asset, when the
// taker requests to fill requestedAmount units.
//
// The taker amount is bounded by what's left to fill, maker amount and fees
// are proportional to it. A soft ROUNDING_ERROR_TOO_LARGE status is returned
// if the truncation of the maker amount exceeds 0.1%, while a taker
// mismatch or any arithmetic overflow/underflow is a hard error.
func CalculateFillResults(
	order Order, filledAmount, requestedAmount *uint256.Int,
	taker common.Address,
) (ExchangeStatus, *FillResults, error) {
	if order.IsTakerRestricted() && order.TakerAddress != taker {
		return 0, nil, ErrInvalidTaker
	}
	if requestedAmount.IsZero() {
		return 0, nil, ErrInvalidTakerAmount
	}

	remainingAmount, err := mathutil.Sub(&order.TakerAssetAmount, filledAmount)
	if err != nil {
		return 0, nil, err
	}
	takerFilledAmount := mathutil.Min(requestedAmount, remainingAmount)

	isRoundingErr, err := mathutil.IsRoundingError(
		takerFilledAmount, &order.TakerAssetAmount, &order.MakerAssetAmount,
	)
	if err != nil {
		return 0, nil, err
	}
	if isRoundingErr {
		return StatusRoundingErrorTooLarge, NewEmptyFillResults(), nil
	}

	makerFilledAmount, err := mathutil.GetPartialAmount(
		takerFilledAmount, &order.TakerAssetAmount, &order.MakerAssetAmount,
	)
	if err != nil {
		return 0, nil, err
	}
	makerFeePaid, err := mathutil.GetPartialAmount(
		takerFilledAmount, &order.TakerAssetAmount, &order.MakerFee,
	)
	if err != nil {
		return 0, nil, err
	}
	takerFeePaid, err := mathutil.GetPartialAmount(
		takerFilledAmount, &order.TakerAssetAmount, &order.TakerFee,
	)
	if err != nil {
		return 0, nil, err
	}

	return StatusSuccess, &FillResults{
		MakerAssetFilledAmount: makerFilledAmount,
		TakerAssetFilledAmount: takerFilledAmount,
		MakerFeePaid:           makerFeePaid,
		TakerFeePaid:           takerFeePaid,
	}, nil
}
