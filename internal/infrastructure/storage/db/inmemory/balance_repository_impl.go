package inmemory

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
)

type balanceKey struct {
	token common.Address
	owner common.Address
}

type ownerKey struct {
	token   common.Address
	tokenID [32]byte
}

type balanceStore struct {
	balances map[balanceKey]*uint256.Int
	owners   map[ownerKey]common.Address
}

func newBalanceStore() *balanceStore {
	return &balanceStore{
		balances: make(map[balanceKey]*uint256.Int),
		owners:   make(map[ownerKey]common.Address),
	}
}

type balanceRepositoryImpl struct {
	store *store
}

func newBalanceRepositoryImpl(s *store) domain.BalanceRepository {
	return &balanceRepositoryImpl{s}
}

func (r *balanceRepositoryImpl) GetBalance(
	ctx context.Context, token, owner common.Address,
) (*uint256.Int, error) {
	_, unlock := r.store.lockFor(ctx)
	defer unlock()

	if balance, ok := r.store.balances.balances[balanceKey{token, owner}]; ok {
		return balance.Clone(), nil
	}
	return new(uint256.Int), nil
}

func (r *balanceRepositoryImpl) SetBalance(
	ctx context.Context, token, owner common.Address, amount *uint256.Int,
) error {
	tx, unlock := r.store.lockFor(ctx)
	defer unlock()

	key := balanceKey{token, owner}
	balances := r.store.balances.balances
	if tx != nil {
		prev, existed := balances[key]
		tx.record(func() {
			if existed {
				balances[key] = prev
				return
			}
			delete(balances, key)
		})
	}
	balances[key] = amount.Clone()
	return nil
}

func (r *balanceRepositoryImpl) GetOwner(
	ctx context.Context, token common.Address, tokenID *uint256.Int,
) (common.Address, error) {
	_, unlock := r.store.lockFor(ctx)
	defer unlock()

	return r.store.balances.owners[ownerKey{token, tokenID.Bytes32()}], nil
}

func (r *balanceRepositoryImpl) SetOwner(
	ctx context.Context, token common.Address, tokenID *uint256.Int,
	owner common.Address,
) error {
	tx, unlock := r.store.lockFor(ctx)
	defer unlock()

	key := ownerKey{token, tokenID.Bytes32()}
	owners := r.store.balances.owners
	if tx != nil {
		prev, existed := owners[key]
		tx.record(func() {
			if existed {
				owners[key] = prev
				return
			}
			delete(owners, key)
		})
	}
	owners[key] = owner
	return nil
}
