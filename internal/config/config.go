package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of
	// the exchange
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// ExchangeAddressKey is the verifying address of the exchange, bound into
	// every order hash
	ExchangeAddressKey = "EXCHANGE_ADDRESS"
	// FeeAssetDataKey is the hex encoded descriptor of the asset used to pay
	// maker and taker fees
	FeeAssetDataKey = "FEE_ASSET_DATA"
	// NoWebhooksKey disables the notification of events to webhooks
	NoWebhooksKey = "NO_WEBHOOKS"
	// EnableStatsKey enables the collection of exchange statistics, printed
	// when the exchange is closed
	EnableStatsKey = "ENABLE_STATS"

	DbLocation       = "db"
	WebhooksLocation = "webhooks"

	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("tdex-settlement", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("TDEX_SETTLEMENT")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(ExchangeAddressKey, common.Address{}.Hex())
	vip.SetDefault(NoWebhooksKey, false)
	vip.SetDefault(EnableStatsKey, false)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

// Set overrides the value of the given key. It must be called after
// InitConfig.
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

func GetWebhooksDbDir() string {
	return filepath.Join(GetDatadir(), WebhooksLocation)
}

func GetExchangeAddress() common.Address {
	return common.HexToAddress(GetString(ExchangeAddressKey))
}

func GetFeeAssetData() []byte {
	feeAssetData := GetString(FeeAssetDataKey)
	if len(feeAssetData) <= 0 {
		return nil
	}
	buf, _ := hexutil.Decode(feeAssetData)
	return buf
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"%s must be one of %s, %s", DBTypeKey, DBBadger, DBInMemory,
		)
	}

	if !common.IsHexAddress(GetString(ExchangeAddressKey)) {
		return fmt.Errorf("%s must be a hex encoded address", ExchangeAddressKey)
	}

	if feeAssetData := GetString(FeeAssetDataKey); len(feeAssetData) > 0 {
		if _, err := hexutil.Decode(feeAssetData); err != nil {
			return fmt.Errorf("%s must be 0x prefixed hex: %s", FeeAssetDataKey, err)
		}
	}

	return nil
}

func initDatadir() error {
	if GetString(DBTypeKey) != DBBadger {
		return nil
	}
	if err := makeDirectoryIfNotExists(GetDbDir()); err != nil {
		return err
	}
	if !GetBool(NoWebhooksKey) {
		if err := makeDirectoryIfNotExists(GetWebhooksDbDir()); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
