package domain

import (
	"time"

	"github.com/holiman/uint256"
)

// OrderState is the snapshot of the ledger entries relative to an order.
type OrderState struct {
	FilledAmount *uint256.Int
	Cancelled    bool
	MakerEpoch   *uint256.Int
}

// OrderInfo is the result of an order status evaluation.
type OrderInfo struct {
	Status                 OrderStatus
	Hash                   OrderHash
	TakerAssetFilledAmount *uint256.Int
}

// SignatureCheck lazily validates the signature of an order.
type SignatureCheck func() (bool, error)

// GetOrderInfo computes the current status of an order.
//
// The checks are evaluated in this exact order and the first one matching
// determines the reported status: amounts, signature, expiration, full fill,
// explicit cancellation, epoch cancellation.
//
// The signature is checked only when the order has never been filled:
// a previous fill is proof that the order was authentic, therefore a
// signature that later became invalid (ie. a revoked validator) does not
// prevent further fills.
func GetOrderInfo(
	order Order, hash OrderHash, state OrderState, now time.Time,
	checkSignature SignatureCheck,
) (*OrderInfo, error) {
	filled := state.FilledAmount
	if filled == nil {
		filled = new(uint256.Int)
	}
	info := &OrderInfo{
		Hash:                   hash,
		TakerAssetFilledAmount: filled.Clone(),
	}

	if !order.HasValidAmounts() {
		info.Status = OrderStatusInvalid
		return info, nil
	}

	if filled.IsZero() {
		ok, err := checkSignature()
		if err != nil {
			return nil, err
		}
		if !ok {
			info.Status = OrderStatusSignatureInvalid
			return info, nil
		}
	}

	if IsExpired(order, now) {
		info.Status = OrderStatusExpired
		return info, nil
	}

	if !filled.Lt(&order.TakerAssetAmount) {
		info.Status = OrderStatusFullyFilled
		return info, nil
	}

	if state.Cancelled {
		info.Status = OrderStatusCancelled
		return info, nil
	}

	if state.MakerEpoch != nil && order.Salt.Lt(state.MakerEpoch) {
		info.Status = OrderStatusCancelled
		return info, nil
	}

	info.Status = OrderStatusFillable
	return info, nil
}

// IsExpired returns whether the given time is equal or after the order
// expiration time.
func IsExpired(order Order, now time.Time) bool {
	return !unixTime(now).Lt(&order.ExpirationTimeSeconds)
}

func unixTime(t time.Time) *uint256.Int {
	secs := t.Unix()
	if secs < 0 {
		return new(uint256.Int)
	}
	return uint256.NewInt(uint64(secs))
}
