package db_test

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
	dbbadger "github.com/tdex-network/tdex-settlement/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-settlement/internal/infrastructure/storage/db/inmemory"
)

type repoManager struct {
	Name      string
	DBManager ports.RepoManager
}

func (r repoManager) read(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.DBManager.RunTransaction(context.Background(), true, query)
}

func (r repoManager) write(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.DBManager.RunTransaction(context.Background(), false, query)
}

func createRepoManagers(t *testing.T) []repoManager {
	inmemoryDBManager := inmemory.NewRepoManager()
	badgerDBManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		inmemoryDBManager.Close()
		badgerDBManager.Close()
	})

	return []repoManager{
		{
			Name:      "badger",
			DBManager: badgerDBManager,
		},
		{
			Name:      "inmemory",
			DBManager: inmemoryDBManager,
		},
	}
}

func randomAddress() common.Address {
	return common.BytesToAddress(randomBytes(common.AddressLength))
}

func randomHash() common.Hash {
	return common.BytesToHash(randomBytes(common.HashLength))
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	//nolint
	rand.Read(b)
	return b
}
