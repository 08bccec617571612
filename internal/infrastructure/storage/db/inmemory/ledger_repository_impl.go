package inmemory

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
)

type ledgerStore struct {
	filled    map[domain.OrderHash]*uint256.Int
	cancelled map[domain.OrderHash]bool
	epochs    map[common.Address]*uint256.Int
}

func newLedgerStore() *ledgerStore {
	return &ledgerStore{
		filled:    make(map[domain.OrderHash]*uint256.Int),
		cancelled: make(map[domain.OrderHash]bool),
		epochs:    make(map[common.Address]*uint256.Int),
	}
}

// ledgerRepositoryImpl represents an in memory storage
type ledgerRepositoryImpl struct {
	store *store
}

// newLedgerRepositoryImpl returns a new empty ledgerRepositoryImpl
func newLedgerRepositoryImpl(s *store) domain.LedgerRepository {
	return &ledgerRepositoryImpl{s}
}

func (r *ledgerRepositoryImpl) GetFilledAmount(
	ctx context.Context, hash domain.OrderHash,
) (*uint256.Int, error) {
	_, unlock := r.store.lockFor(ctx)
	defer unlock()

	if amount, ok := r.store.ledger.filled[hash]; ok {
		return amount.Clone(), nil
	}
	return new(uint256.Int), nil
}

func (r *ledgerRepositoryImpl) SetFilledAmount(
	ctx context.Context, hash domain.OrderHash, amount *uint256.Int,
) error {
	tx, unlock := r.store.lockFor(ctx)
	defer unlock()

	filled := r.store.ledger.filled
	if tx != nil {
		prev, existed := filled[hash]
		tx.record(func() {
			if existed {
				filled[hash] = prev
				return
			}
			delete(filled, hash)
		})
	}
	filled[hash] = amount.Clone()
	return nil
}

func (r *ledgerRepositoryImpl) IsCancelled(
	ctx context.Context, hash domain.OrderHash,
) (bool, error) {
	_, unlock := r.store.lockFor(ctx)
	defer unlock()

	return r.store.ledger.cancelled[hash], nil
}

func (r *ledgerRepositoryImpl) SetCancelled(
	ctx context.Context, hash domain.OrderHash,
) error {
	tx, unlock := r.store.lockFor(ctx)
	defer unlock()

	cancelled := r.store.ledger.cancelled
	if tx != nil && !cancelled[hash] {
		tx.record(func() { delete(cancelled, hash) })
	}
	cancelled[hash] = true
	return nil
}

func (r *ledgerRepositoryImpl) GetMakerEpoch(
	ctx context.Context, maker common.Address,
) (*uint256.Int, error) {
	_, unlock := r.store.lockFor(ctx)
	defer unlock()

	if epoch, ok := r.store.ledger.epochs[maker]; ok {
		return epoch.Clone(), nil
	}
	return new(uint256.Int), nil
}

func (r *ledgerRepositoryImpl) SetMakerEpoch(
	ctx context.Context, maker common.Address, epoch *uint256.Int,
) error {
	tx, unlock := r.store.lockFor(ctx)
	defer unlock()

	epochs := r.store.ledger.epochs
	if tx != nil {
		prev, existed := epochs[maker]
		tx.record(func() {
			if existed {
				epochs[maker] = prev
				return
			}
			delete(epochs, maker)
		})
	}
	epochs[maker] = epoch.Clone()
	return nil
}
