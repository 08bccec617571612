package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-settlement/internal/config"
	"github.com/tdex-network/tdex-settlement/internal/core/application/assetproxy"
	"github.com/tdex-network/tdex-settlement/internal/core/application/exchange"
	"github.com/tdex-network/tdex-settlement/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-settlement/internal/core/application/signature"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
	webhookpubsub "github.com/tdex-network/tdex-settlement/internal/infrastructure/pubsub"
	dbbadger "github.com/tdex-network/tdex-settlement/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-settlement/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/tdex-settlement/pkg/stats"
)

type services struct {
	exchange *exchange.Service
	assets   *assetproxy.Service
	pubsub   *pubsub.Service
}

// getServices loads the configuration and wires the exchange services
// together. The returned cleanup function must be called to release the
// underlying stores.
func getServices() (*services, func(), error) {
	if err := config.InitConfig(); err != nil {
		return nil, nil, err
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repoManager, err := newRepoManager()
	if err != nil {
		return nil, nil, err
	}

	var ps ports.PubSub
	if !config.GetBool(config.NoWebhooksKey) {
		dbDir := ""
		if config.GetString(config.DBTypeKey) == config.DBBadger {
			dbDir = config.GetWebhooksDbDir()
		}
		ps, err = webhookpubsub.NewService(dbDir, nil)
		if err != nil {
			repoManager.Close()
			return nil, nil, err
		}
	}
	pubsubSvc := pubsub.NewService(ps)

	cleanup := func() {
		pubsubSvc.Close()
		repoManager.Close()
	}

	signatureSvc, err := signature.NewService(repoManager)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	assetSvc, err := assetproxy.NewDefaultService(repoManager)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var collector *stats.Collector
	if config.GetBool(config.EnableStatsKey) {
		collector = stats.NewCollector()
	}

	exchangeSvc, err := exchange.NewService(
		repoManager, assetSvc, signatureSvc, pubsubSvc, exchange.Config{
			ExchangeAddress: config.GetExchangeAddress(),
			FeeAssetData:    config.GetFeeAssetData(),
			Stats:           collector,
		},
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &services{
			exchange: exchangeSvc,
			assets:   assetSvc,
			pubsub:   pubsubSvc,
		}, func() {
			// Closes the pubsub and prints the collected statistics.
			exchangeSvc.Close()
			repoManager.Close()
		}, nil
}

func newRepoManager() (ports.RepoManager, error) {
	switch dbType := config.GetString(config.DBTypeKey); dbType {
	case config.DBBadger:
		return dbbadger.NewRepoManager(config.GetDbDir(), nil)
	case config.DBInMemory:
		return inmemory.NewRepoManager(), nil
	default:
		return nil, fmt.Errorf("unknown db type %s", dbType)
	}
}
