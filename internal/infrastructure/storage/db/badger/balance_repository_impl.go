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

type balanceRepositoryImpl struct {
	store *badgerhold.Store
}

func newBalanceRepositoryImpl(store *badgerhold.Store) domain.BalanceRepository {
	return balanceRepositoryImpl{store}
}

func (r balanceRepositoryImpl) GetBalance(
	ctx context.Context, token, owner common.Address,
) (*uint256.Int, error) {
	balance := new(uint256.Int)
	err := withTx(ctx, r.store, false, func(tx *badger.Txn) error {
		var rec tokenBalance
		key := pairKey(token.Hex(), owner.Hex())
		if err := r.store.TxGet(tx, key, &rec); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return nil
			}
			return err
		}
		balance = decodeAmount(rec.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

func (r balanceRepositoryImpl) SetBalance(
	ctx context.Context, token, owner common.Address, amount *uint256.Int,
) error {
	return withTx(ctx, r.store, true, func(tx *badger.Txn) error {
		key := pairKey(token.Hex(), owner.Hex())
		return r.store.TxUpsert(tx, key, tokenBalance{
			Token:  token.Hex(),
			Owner:  owner.Hex(),
			Amount: encodeAmount(amount),
		})
	})
}

func (r balanceRepositoryImpl) GetOwner(
	ctx context.Context, token common.Address, tokenID *uint256.Int,
) (common.Address, error) {
	var owner common.Address
	err := withTx(ctx, r.store, false, func(tx *badger.Txn) error {
		var rec tokenOwner
		key := pairKey(token.Hex(), tokenIDKey(tokenID))
		if err := r.store.TxGet(tx, key, &rec); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return nil
			}
			return err
		}
		owner = common.HexToAddress(rec.Owner)
		return nil
	})
	return owner, err
}

func (r balanceRepositoryImpl) SetOwner(
	ctx context.Context, token common.Address, tokenID *uint256.Int,
	owner common.Address,
) error {
	return withTx(ctx, r.store, true, func(tx *badger.Txn) error {
		key := pairKey(token.Hex(), tokenIDKey(tokenID))
		return r.store.TxUpsert(tx, key, tokenOwner{
			Token:   token.Hex(),
			TokenID: tokenIDKey(tokenID),
			Owner:   owner.Hex(),
		})
	})
}
