package ports

import (
	"context"

	"github.com/tdex-network/tdex-settlement/internal/core/domain"
)

// RepoManager interface defines the methods to access the repositories of
// the exchange ledger and to run atomic transitions against them.
type RepoManager interface {
	LedgerRepository() domain.LedgerRepository
	SignatureRepository() domain.SignatureRepository
	BalanceRepository() domain.BalanceRepository

	// RunTransaction executes handler within a single transaction: every
	// repository call made with the ctx given to the handler joins it. The
	// transaction is committed only if the handler returns no error, otherwise
	// every effect is discarded. A panicking handler is treated as a failure.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)

	Close()
}
