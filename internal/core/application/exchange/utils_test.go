package exchange_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-settlement/internal/core/application/assetproxy"
	"github.com/tdex-network/tdex-settlement/internal/core/application/exchange"
	"github.com/tdex-network/tdex-settlement/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-settlement/internal/core/application/signature"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
	dbbadger "github.com/tdex-network/tdex-settlement/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-settlement/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/tdex-settlement/pkg/stats"
	"github.com/thanhpk/randstr"
)

var (
	ctx             = context.Background()
	exchangeAddress = common.HexToAddress("0x1dc4c1cefef38a777b15aa20260a54e584b16c48")
	expiration      = uint64(1700000000)
	beforeExpiry    = time.Unix(int64(expiration)-1000, 0)
)

type repoManagerFactory struct {
	name string
	new  func(t *testing.T) ports.RepoManager
}

var repoManagerFactories = []repoManagerFactory{
	{
		name: "badger",
		new: func(t *testing.T) ports.RepoManager {
			repoManager, err := dbbadger.NewRepoManager("", nil)
			require.NoError(t, err)
			t.Cleanup(repoManager.Close)
			return repoManager
		},
	},
	{
		name: "inmemory",
		new: func(t *testing.T) ports.RepoManager {
			return inmemory.NewRepoManager()
		},
	},
}

// testEnv is an exchange with a maker and a taker holding enough tokens to
// fully settle the order returned by newOrder.
type testEnv struct {
	svc         *exchange.Service
	assets      *assetproxy.Service
	signatures  *signature.Service
	repoManager ports.RepoManager
	stats       *stats.Collector
	events      *eventRecorder

	clock *testClock

	makerKey     *btcec.PrivateKey
	maker        common.Address
	taker        common.Address
	feeRecipient common.Address
	makerToken   common.Address
	takerToken   common.Address
	feeToken     common.Address
}

func newTestEnv(t *testing.T, repoManager ports.RepoManager) *testEnv {
	return newTestEnvWithPubSub(t, repoManager, nil)
}

// newTestEnvWithPubSub is like newTestEnv, but events are published to ps
// instead of the default recorder.
func newTestEnvWithPubSub(
	t *testing.T, repoManager ports.RepoManager, ps ports.PubSub,
) *testEnv {
	makerKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	env := &testEnv{
		repoManager:  repoManager,
		stats:        stats.NewCollector(),
		events:       &eventRecorder{},
		clock:        &testClock{now: beforeExpiry},
		makerKey:     makerKey,
		maker:        signature.PubkeyToAddress(makerKey.PubKey()),
		taker:        randomAddress(),
		feeRecipient: randomAddress(),
		makerToken:   randomAddress(),
		takerToken:   randomAddress(),
		feeToken:     randomAddress(),
	}

	if ps == nil {
		ps = env.events
	}

	env.assets, err = assetproxy.NewDefaultService(repoManager)
	require.NoError(t, err)
	env.signatures, err = signature.NewService(repoManager)
	require.NoError(t, err)

	env.svc, err = exchange.NewService(
		repoManager, env.assets, env.signatures, pubsub.NewService(ps),
		exchange.Config{
			ExchangeAddress: exchangeAddress,
			FeeAssetData:    domain.EncodeERC20AssetData(env.feeToken),
			Clock:           env.clock.Now,
			Stats:           env.stats,
		},
	)
	require.NoError(t, err)

	env.mint(t, env.makerToken, env.maker, 100)
	env.mint(t, env.feeToken, env.maker, 10)
	env.mint(t, env.takerToken, env.taker, 50)
	env.mint(t, env.feeToken, env.taker, 4)
	return env
}

// newOrder returns an order selling 100 maker tokens for 50 taker tokens,
// with fees 10 and 4.
func (e *testEnv) newOrder() domain.Order {
	return domain.Order{
		MakerAddress:          e.maker,
		FeeRecipientAddress:   e.feeRecipient,
		MakerAssetAmount:      *uint256.NewInt(100),
		TakerAssetAmount:      *uint256.NewInt(50),
		MakerFee:              *uint256.NewInt(10),
		TakerFee:              *uint256.NewInt(4),
		ExpirationTimeSeconds: *uint256.NewInt(expiration),
		Salt:                  *uint256.NewInt(42),
		MakerAssetData:        domain.EncodeERC20AssetData(e.makerToken),
		TakerAssetData:        domain.EncodeERC20AssetData(e.takerToken),
	}
}

func (e *testEnv) sign(t *testing.T, order domain.Order) []byte {
	sig, err := signature.Sign(
		e.makerKey, e.svc.GetOrderHash(order), signature.SignatureTypeEIP712,
	)
	require.NoError(t, err)
	return sig
}

func (e *testEnv) mint(
	t *testing.T, token, owner common.Address, amount uint64,
) {
	_, err := e.assets.Mint(ctx, token, owner, uint256.NewInt(amount))
	require.NoError(t, err)
}

func (e *testEnv) requireBalance(
	t *testing.T, token, owner common.Address, expected uint64,
) {
	balance, err := e.assets.GetBalance(ctx, token, owner)
	require.NoError(t, err)
	require.Equal(t, expected, balance.Uint64())
}

func (e *testEnv) requireOrderInfo(
	t *testing.T, order domain.Order, sig []byte,
	expectedStatus domain.OrderStatus, expectedFilled uint64,
) {
	info, err := e.svc.GetOrderInfo(ctx, order, sig)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, info.Status)
	require.Equal(t, expectedFilled, info.TakerAssetFilledAmount.Uint64())
}

type testClock struct {
	lock sync.Mutex
	now  time.Time
}

func (c *testClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *testClock) Set(now time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = now
}

// eventRecorder is a ports.PubSub keeping track of the published topics.
type eventRecorder struct {
	lock   sync.Mutex
	topics []string
}

func (r *eventRecorder) Subscribe(_, _, _ string) (string, error) {
	return "", nil
}

func (r *eventRecorder) Unsubscribe(_, _ string) error {
	return nil
}

func (r *eventRecorder) ListSubscriptionsForTopic(_ string) []ports.Subscription {
	return nil
}

func (r *eventRecorder) Close() error {
	return nil
}

func (r *eventRecorder) Publish(topic string, _ string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.topics = append(r.topics, topic)
	return nil
}

func (r *eventRecorder) Topics() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string{}, r.topics...)
}

// blockingPubSub holds the publication of fill events until release is
// closed. started is closed as soon as the first fill event is published.
type blockingPubSub struct {
	eventRecorder
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newBlockingPubSub() *blockingPubSub {
	return &blockingPubSub{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (p *blockingPubSub) Publish(topic string, message string) error {
	if topic == domain.FillTopic {
		p.once.Do(func() { close(p.started) })
		<-p.release
	}
	return p.eventRecorder.Publish(topic, message)
}

func randomAddress() common.Address {
	return common.HexToAddress(randstr.Hex(2 * common.AddressLength))
}
