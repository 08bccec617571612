package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestBalanceRepositoryImplementations(t *testing.T) {
	repositories := createRepoManagers(t)

	for i := range repositories {
		repo := repositories[i]

		t.Run(repo.Name, func(t *testing.T) {
			t.Parallel()

			t.Run("testBalance", func(t *testing.T) {
				t.Parallel()
				testBalance(t, repo)
			})

			t.Run("testOwner", func(t *testing.T) {
				t.Parallel()
				testOwner(t, repo)
			})

			t.Run("testBalance_rollback", func(t *testing.T) {
				t.Parallel()
				testBalanceRollback(t, repo)
			})
		})
	}
}

func testBalance(t *testing.T, repo repoManager) {
	balances := repo.DBManager.BalanceRepository()
	token := randomAddress()
	owner := randomAddress()

	balance, err := balances.GetBalance(context.Background(), token, owner)
	require.NoError(t, err)
	require.True(t, balance.IsZero())

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, balances.SetBalance(ctx, token, owner, uint256.NewInt(100))
	})
	require.NoError(t, err)

	balance, err = balances.GetBalance(context.Background(), token, owner)
	require.NoError(t, err)
	require.Equal(t, uint64(100), balance.Uint64())

	balance, err = balances.GetBalance(context.Background(), randomAddress(), owner)
	require.NoError(t, err)
	require.True(t, balance.IsZero())
}

func testOwner(t *testing.T, repo repoManager) {
	balances := repo.DBManager.BalanceRepository()
	token := randomAddress()
	owner := randomAddress()
	tokenID := uint256.NewInt(7)

	current, err := balances.GetOwner(context.Background(), token, tokenID)
	require.NoError(t, err)
	require.Equal(t, common.Address{}, current)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, balances.SetOwner(ctx, token, tokenID, owner)
	})
	require.NoError(t, err)

	current, err = balances.GetOwner(context.Background(), token, uint256.NewInt(7))
	require.NoError(t, err)
	require.Equal(t, owner, current)

	current, err = balances.GetOwner(context.Background(), token, uint256.NewInt(8))
	require.NoError(t, err)
	require.Equal(t, common.Address{}, current)
}

func testBalanceRollback(t *testing.T, repo repoManager) {
	balances := repo.DBManager.BalanceRepository()
	token := randomAddress()
	from := randomAddress()
	to := randomAddress()
	expectedErr := errors.New("transfer failed")

	_, err := repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, balances.SetBalance(ctx, token, from, uint256.NewInt(10))
	})
	require.NoError(t, err)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		if err := balances.SetBalance(ctx, token, from, uint256.NewInt(0)); err != nil {
			return nil, err
		}
		if err := balances.SetBalance(ctx, token, to, uint256.NewInt(10)); err != nil {
			return nil, err
		}
		return nil, expectedErr
	})
	require.EqualError(t, err, expectedErr.Error())

	balance, err := balances.GetBalance(context.Background(), token, from)
	require.NoError(t, err)
	require.Equal(t, uint64(10), balance.Uint64())

	balance, err = balances.GetBalance(context.Background(), token, to)
	require.NoError(t, err)
	require.True(t, balance.IsZero())
}
