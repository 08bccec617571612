package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
)

type contextKey string

const txContextKey contextKey = "tx"

// transaction journals the effects of the writes made within it so that
// they can be reverted.
type transaction struct {
	undo []func()
}

func (t *transaction) record(undo func()) {
	t.undo = append(t.undo, undo)
}

func (t *transaction) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

// store is the shared state of all repositories. The lock is held for the
// entire duration of a transaction, or of a single repository call when
// made outside of any.
type store struct {
	lock *sync.Mutex

	ledger     *ledgerStore
	signatures *signatureStore
	balances   *balanceStore
}

// lockFor acquires the store lock unless ctx carries a transaction, which
// already holds it, and returns the transaction, if any, along with the
// function to release the lock.
func (s *store) lockFor(ctx context.Context) (*transaction, func()) {
	if tx, ok := ctx.Value(txContextKey).(*transaction); ok {
		return tx, func() {}
	}
	s.lock.Lock()
	return nil, s.lock.Unlock
}

type RepoManager struct {
	store *store

	ledgerRepository    domain.LedgerRepository
	signatureRepository domain.SignatureRepository
	balanceRepository   domain.BalanceRepository
}

func NewRepoManager() ports.RepoManager {
	s := &store{
		lock:       &sync.Mutex{},
		ledger:     newLedgerStore(),
		signatures: newSignatureStore(),
		balances:   newBalanceStore(),
	}

	return &RepoManager{
		store:               s,
		ledgerRepository:    newLedgerRepositoryImpl(s),
		signatureRepository: newSignatureRepositoryImpl(s),
		balanceRepository:   newBalanceRepositoryImpl(s),
	}
}

func (r *RepoManager) LedgerRepository() domain.LedgerRepository {
	return r.ledgerRepository
}

func (r *RepoManager) SignatureRepository() domain.SignatureRepository {
	return r.signatureRepository
}

func (r *RepoManager) BalanceRepository() domain.BalanceRepository {
	return r.balanceRepository
}

func (r *RepoManager) Close() {}

// RunTransaction runs handler holding the store lock. If the handler fails
// or panics every write it made is reverted. If ctx already carries a
// transaction the handler joins it.
func (r *RepoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (res interface{}, err error) {
	if _, ok := ctx.Value(txContextKey).(*transaction); ok {
		return handler(ctx)
	}

	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	tx := &transaction{}

	defer func() {
		if rec := recover(); rec != nil {
			res = nil
			err = fmt.Errorf("recovered: %v", rec)
		}
		if err != nil {
			tx.rollback()
		}
	}()

	res, err = handler(context.WithValue(ctx, txContextKey, tx))
	if err != nil {
		return nil, err
	}
	if readOnly && len(tx.undo) > 0 {
		return nil, ErrReadOnlyTx
	}
	return res, nil
}
