package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/tdex-network/tdex-settlement/pkg/mathutil"
)

// Ledger enforces the invariants of the persisted order state on top of a
// LedgerRepository: filled amounts only grow, the cancel flag is one-way and
// maker epochs strictly increase.
type Ledger struct {
	repo LedgerRepository
}

// NewLedger ...
func NewLedger(repo LedgerRepository) Ledger {
	return Ledger{repo}
}

// GetOrderState returns the ledger snapshot of the given order.
func (l Ledger) GetOrderState(
	ctx context.Context, hash OrderHash, maker common.Address,
) (*OrderState, error) {
	filled, err := l.repo.GetFilledAmount(ctx, hash)
	if err != nil {
		return nil, err
	}
	cancelled, err := l.repo.IsCancelled(ctx, hash)
	if err != nil {
		return nil, err
	}
	epoch, err := l.repo.GetMakerEpoch(ctx, maker)
	if err != nil {
		return nil, err
	}
	return &OrderState{
		FilledAmount: filled,
		Cancelled:    cancelled,
		MakerEpoch:   epoch,
	}, nil
}

// RecordFill adds amount to the filled amount of the order and returns the
// updated total.
func (l Ledger) RecordFill(
	ctx context.Context, hash OrderHash, amount *uint256.Int,
) (*uint256.Int, error) {
	filled, err := l.repo.GetFilledAmount(ctx, hash)
	if err != nil {
		return nil, err
	}
	newFilled, err := mathutil.Add(filled, amount)
	if err != nil {
		return nil, err
	}
	if err := l.repo.SetFilledAmount(ctx, hash, newFilled); err != nil {
		return nil, err
	}
	return newFilled, nil
}

// RecordCancel flags the order as cancelled.
func (l Ledger) RecordCancel(ctx context.Context, hash OrderHash) error {
	return l.repo.SetCancelled(ctx, hash)
}

// BumpEpoch sets the epoch of maker to newEpoch, which must be strictly
// greater than the current one.
func (l Ledger) BumpEpoch(
	ctx context.Context, maker common.Address, newEpoch *uint256.Int,
) error {
	epoch, err := l.repo.GetMakerEpoch(ctx, maker)
	if err != nil {
		return err
	}
	if !newEpoch.Gt(epoch) {
		return ErrInvalidNewEpoch
	}
	return l.repo.SetMakerEpoch(ctx, maker, newEpoch)
}
