package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type ledgerRepositoryImpl struct {
	store *badgerhold.Store
}

func newLedgerRepositoryImpl(store *badgerhold.Store) domain.LedgerRepository {
	return ledgerRepositoryImpl{store}
}

func (r ledgerRepositoryImpl) GetFilledAmount(
	ctx context.Context, hash domain.OrderHash,
) (*uint256.Int, error) {
	amount := new(uint256.Int)
	err := withTx(ctx, r.store, false, func(tx *badger.Txn) error {
		var rec filledAmount
		if err := r.store.TxGet(tx, hash.Hex(), &rec); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return nil
			}
			return err
		}
		amount = decodeAmount(rec.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amount, nil
}

func (r ledgerRepositoryImpl) SetFilledAmount(
	ctx context.Context, hash domain.OrderHash, amount *uint256.Int,
) error {
	return withTx(ctx, r.store, true, func(tx *badger.Txn) error {
		return r.store.TxUpsert(tx, hash.Hex(), filledAmount{
			OrderHash: hash.Hex(),
			Amount:    encodeAmount(amount),
		})
	})
}

func (r ledgerRepositoryImpl) IsCancelled(
	ctx context.Context, hash domain.OrderHash,
) (bool, error) {
	cancelled := false
	err := withTx(ctx, r.store, false, func(tx *badger.Txn) error {
		var rec cancelledOrder
		if err := r.store.TxGet(tx, hash.Hex(), &rec); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return nil
			}
			return err
		}
		cancelled = true
		return nil
	})
	return cancelled, err
}

func (r ledgerRepositoryImpl) SetCancelled(
	ctx context.Context, hash domain.OrderHash,
) error {
	return withTx(ctx, r.store, true, func(tx *badger.Txn) error {
		return r.store.TxUpsert(
			tx, hash.Hex(), cancelledOrder{OrderHash: hash.Hex()},
		)
	})
}

func (r ledgerRepositoryImpl) GetMakerEpoch(
	ctx context.Context, maker common.Address,
) (*uint256.Int, error) {
	epoch := new(uint256.Int)
	err := withTx(ctx, r.store, false, func(tx *badger.Txn) error {
		var rec makerEpoch
		if err := r.store.TxGet(tx, maker.Hex(), &rec); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return nil
			}
			return err
		}
		epoch = decodeAmount(rec.Epoch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return epoch, nil
}

func (r ledgerRepositoryImpl) SetMakerEpoch(
	ctx context.Context, maker common.Address, epoch *uint256.Int,
) error {
	return withTx(ctx, r.store, true, func(tx *badger.Txn) error {
		return r.store.TxUpsert(tx, maker.Hex(), makerEpoch{
			Maker: maker.Hex(),
			Epoch: encodeAmount(epoch),
		})
	})
}
