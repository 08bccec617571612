package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepositoryImplementations(t *testing.T) {
	repositories := createRepoManagers(t)

	for i := range repositories {
		repo := repositories[i]

		t.Run(repo.Name, func(t *testing.T) {
			t.Parallel()

			t.Run("testFilledAmount", func(t *testing.T) {
				t.Parallel()
				testFilledAmount(t, repo)
			})

			t.Run("testCancelled", func(t *testing.T) {
				t.Parallel()
				testCancelled(t, repo)
			})

			t.Run("testMakerEpoch", func(t *testing.T) {
				t.Parallel()
				testMakerEpoch(t, repo)
			})

			t.Run("testLedger_rollback", func(t *testing.T) {
				t.Parallel()
				testLedgerRollback(t, repo)
			})

			t.Run("testLedger_panic", func(t *testing.T) {
				t.Parallel()
				testLedgerPanic(t, repo)
			})
		})
	}
}

func testFilledAmount(t *testing.T, repo repoManager) {
	ledger := repo.DBManager.LedgerRepository()
	hash := randomHash()

	iAmount, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return ledger.GetFilledAmount(ctx, hash)
	})
	require.NoError(t, err)
	require.True(t, iAmount.(*uint256.Int).IsZero())

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, ledger.SetFilledAmount(ctx, hash, uint256.NewInt(42))
	})
	require.NoError(t, err)

	iAmount, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return ledger.GetFilledAmount(ctx, hash)
	})
	require.NoError(t, err)
	require.Equal(t, uint64(42), iAmount.(*uint256.Int).Uint64())

	// Calls made outside of any transaction are supported as well.
	amount, err := ledger.GetFilledAmount(context.Background(), hash)
	require.NoError(t, err)
	require.Equal(t, uint64(42), amount.Uint64())
}

func testCancelled(t *testing.T, repo repoManager) {
	ledger := repo.DBManager.LedgerRepository()
	hash := randomHash()

	cancelled, err := ledger.IsCancelled(context.Background(), hash)
	require.NoError(t, err)
	require.False(t, cancelled)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, ledger.SetCancelled(ctx, hash)
	})
	require.NoError(t, err)

	iCancelled, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return ledger.IsCancelled(ctx, hash)
	})
	require.NoError(t, err)
	require.True(t, iCancelled.(bool))
}

func testMakerEpoch(t *testing.T, repo repoManager) {
	ledger := repo.DBManager.LedgerRepository()
	maker := randomAddress()

	epoch, err := ledger.GetMakerEpoch(context.Background(), maker)
	require.NoError(t, err)
	require.True(t, epoch.IsZero())

	maxEpoch := new(uint256.Int).SetAllOne()
	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, ledger.SetMakerEpoch(ctx, maker, maxEpoch)
	})
	require.NoError(t, err)

	epoch, err = ledger.GetMakerEpoch(context.Background(), maker)
	require.NoError(t, err)
	require.True(t, epoch.Eq(maxEpoch))
}

func testLedgerRollback(t *testing.T, repo repoManager) {
	ledger := repo.DBManager.LedgerRepository()
	hash := randomHash()
	maker := randomAddress()
	expectedErr := errors.New("something went wrong")

	_, err := repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, ledger.SetFilledAmount(ctx, hash, uint256.NewInt(10))
	})
	require.NoError(t, err)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		if err := ledger.SetFilledAmount(ctx, hash, uint256.NewInt(20)); err != nil {
			return nil, err
		}
		if err := ledger.SetCancelled(ctx, hash); err != nil {
			return nil, err
		}
		if err := ledger.SetMakerEpoch(ctx, maker, uint256.NewInt(5)); err != nil {
			return nil, err
		}
		return nil, expectedErr
	})
	require.EqualError(t, err, expectedErr.Error())

	amount, err := ledger.GetFilledAmount(context.Background(), hash)
	require.NoError(t, err)
	require.Equal(t, uint64(10), amount.Uint64())

	cancelled, err := ledger.IsCancelled(context.Background(), hash)
	require.NoError(t, err)
	require.False(t, cancelled)

	epoch, err := ledger.GetMakerEpoch(context.Background(), maker)
	require.NoError(t, err)
	require.True(t, epoch.IsZero())
}

func testLedgerPanic(t *testing.T, repo repoManager) {
	ledger := repo.DBManager.LedgerRepository()
	hash := randomHash()

	_, err := repo.write(func(ctx context.Context) (interface{}, error) {
		if err := ledger.SetCancelled(ctx, hash); err != nil {
			return nil, err
		}
		panic("boom")
	})
	require.Error(t, err)

	cancelled, err := ledger.IsCancelled(context.Background(), hash)
	require.NoError(t, err)
	require.False(t, cancelled)
}
