package config_test

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-settlement/internal/config"
)

func TestInitConfig(t *testing.T) {
	datadir := t.TempDir()
	t.Setenv("TDEX_SETTLEMENT_DATADIR", datadir)
	t.Setenv("TDEX_SETTLEMENT_EXCHANGE_ADDRESS", "0x1dc4c1cefef38a777b15aa20260a54e584b16c48")
	t.Setenv("TDEX_SETTLEMENT_FEE_ASSET_DATA", "0x01e41d2489571d322189246dafa5ebde1f4699f498")

	err := config.InitConfig()
	require.NoError(t, err)

	require.Equal(t, datadir, config.GetDatadir())
	require.Equal(t, 4, config.GetInt(config.LogLevelKey))
	require.Equal(t, config.DBBadger, config.GetString(config.DBTypeKey))
	require.Equal(
		t,
		common.HexToAddress("0x1dc4c1cefef38a777b15aa20260a54e584b16c48"),
		config.GetExchangeAddress(),
	)
	require.Len(t, config.GetFeeAssetData(), 21)
	require.DirExists(t, filepath.Join(datadir, config.DbLocation))
	require.DirExists(t, filepath.Join(datadir, config.WebhooksLocation))
}

func TestInitConfigFails(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid db type", "TDEX_SETTLEMENT_DB_TYPE", "postgres"},
		{"invalid exchange address", "TDEX_SETTLEMENT_EXCHANGE_ADDRESS", "exchange"},
		{"invalid fee asset", "TDEX_SETTLEMENT_FEE_ASSET_DATA", "0xzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TDEX_SETTLEMENT_DATADIR", t.TempDir())
			t.Setenv(tt.key, tt.value)

			err := config.InitConfig()
			require.Error(t, err)
		})
	}
}
