package dbbadger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const maxConflictRetries = 5

type contextKey string

const txContextKey contextKey = "tx"

type repoManager struct {
	store *badgerhold.Store

	ledgerRepository    domain.LedgerRepository
	signatureRepository domain.SignatureRepository
	balanceRepository   domain.BalanceRepository
}

// NewRepoManager opens (or creates if not exists) the badger store in the
// given directory. If the directory is empty the store is kept in memory.
// All repositories share the same store so that a single transaction can
// span all of them.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	store, err := createDb(baseDbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening exchange db: %w", err)
	}

	return &repoManager{
		store:               store,
		ledgerRepository:    newLedgerRepositoryImpl(store),
		signatureRepository: newSignatureRepositoryImpl(store),
		balanceRepository:   newBalanceRepositoryImpl(store),
	}, nil
}

func (r *repoManager) LedgerRepository() domain.LedgerRepository {
	return r.ledgerRepository
}

func (r *repoManager) SignatureRepository() domain.SignatureRepository {
	return r.signatureRepository
}

func (r *repoManager) BalanceRepository() domain.BalanceRepository {
	return r.balanceRepository
}

func (r *repoManager) Close() {
	if err := r.store.Close(); err != nil {
		log.WithError(err).Warn("failed to close exchange db")
	}
}

// RunTransaction runs handler within a badger transaction committed only if
// the handler succeeds. If ctx already carries a transaction the handler
// joins it. Conflicting commits are retried up to maxConflictRetries times.
func (r *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	if _, ok := ctx.Value(txContextKey).(*badger.Txn); ok {
		return handler(ctx)
	}

	for i := 0; ; i++ {
		res, err := r.runTransaction(ctx, readOnly, handler)
		if err != nil {
			if errors.Is(err, badger.ErrConflict) && i < maxConflictRetries {
				log.Debugf("db transaction conflict, retrying (%d)", i+1)
				continue
			}
			return nil, err
		}
		return res, nil
	}
}

func (r *repoManager) runTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (res interface{}, err error) {
	tx := r.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	// panicking returns an error that causes the tx to be discarded
	defer func() {
		if rec := recover(); rec != nil {
			res = nil
			err = fmt.Errorf("recovered: %v", rec)
		}
	}()

	res, err = handler(context.WithValue(ctx, txContextKey, tx))
	if err != nil {
		return nil, err
	}

	if !readOnly {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// withTx runs fn within the transaction carried by ctx, if any, otherwise
// in a dedicated one.
func withTx(
	ctx context.Context, store *badgerhold.Store, update bool,
	fn func(tx *badger.Txn) error,
) error {
	if tx, ok := ctx.Value(txContextKey).(*badger.Txn); ok {
		return fn(tx)
	}
	if update {
		return store.Badger().Update(fn)
	}
	return store.Badger().View(fn)
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
