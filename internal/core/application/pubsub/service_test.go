package pubsub_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-settlement/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
)

var (
	ctx       = context.Background()
	maker     = common.HexToAddress("0x5409ed021d9299bf6814279a6a1411a7e866a631")
	taker     = common.HexToAddress("0x6ecbe1db9ef729cbe972c83fb886247691fb6beb")
	orderHash = common.HexToHash("0xadc7524d823783f90ba5a4f590e42b7e9756136315fa4b4c3d14ef7ee9377fa7")
)

func TestPublishEvents(t *testing.T) {
	fillEvent := domain.FillEvent{
		MakerAddress:        maker,
		TakerAddress:        taker,
		FeeRecipientAddress: taker,
		MakerAssetData:      []byte{0x01, 0xaa},
		TakerAssetData:      []byte{0x01, 0xbb},
		OrderHash:           orderHash,
		FillResults: domain.FillResults{
			MakerAssetFilledAmount: uint256.NewInt(50),
			TakerAssetFilledAmount: uint256.NewInt(25),
			MakerFeePaid:           uint256.NewInt(5),
			TakerFeePaid:           uint256.NewInt(2),
		},
	}
	cancelUpToEvent := domain.CancelUpToEvent{
		MakerAddress: maker,
		OrderEpoch:   uint256.NewInt(11),
	}
	statusEvent := domain.ExchangeStatusEvent{
		Status:    domain.StatusOrderExpired,
		OrderHash: orderHash,
	}

	messages := make(map[string]map[string]interface{})
	pubsubMock := &mockPubSub{}
	pubsubMock.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			payload := make(map[string]interface{})
			err := json.Unmarshal([]byte(args.String(1)), &payload)
			require.NoError(t, err)
			messages[args.String(0)] = payload
		}).
		Return(nil)

	svc := pubsub.NewService(pubsubMock)
	svc.PublishEvents([]domain.Event{fillEvent, cancelUpToEvent, statusEvent})
	pubsubMock.AssertNumberOfCalls(t, "Publish", 3)

	fill := messages[domain.FillTopic]
	require.NotNil(t, fill)
	require.Equal(t, domain.FillTopic, fill["event"])
	require.Equal(t, maker.Hex(), fill["maker"])
	require.Equal(t, taker.Hex(), fill["taker"])
	require.Equal(t, "0x01aa", fill["maker_asset"])
	require.Equal(t, orderHash.Hex(), fill["order_hash"])
	require.Equal(t, map[string]interface{}{
		"maker_filled":   "50",
		"taker_filled":   "25",
		"maker_fee_paid": "5",
		"taker_fee_paid": "2",
	}, fill["fill_results"])
	require.Equal(t, map[string]interface{}{
		"maker_price": "0.5",
		"taker_price": "2",
	}, fill["price"])

	cancelUpTo := messages[domain.CancelUpToTopic]
	require.NotNil(t, cancelUpTo)
	require.Equal(t, "11", cancelUpTo["order_epoch"])

	status := messages[domain.ExchangeStatusTopic]
	require.NotNil(t, status)
	require.Equal(t, "ORDER_EXPIRED", status["status"])
	require.Equal(t, float64(domain.StatusOrderExpired), status["code"])
}

func TestPublishFailureIsNotPropagated(t *testing.T) {
	pubsubMock := &mockPubSub{}
	pubsubMock.On("Publish", domain.CancelTopic, mock.Anything).
		Return(errors.New("endpoint unreachable"))

	svc := pubsub.NewService(pubsubMock)
	require.NotPanics(t, func() {
		svc.PublishEvents([]domain.Event{domain.CancelEvent{
			MakerAddress: maker,
			OrderHash:    orderHash,
		}})
	})
	pubsubMock.AssertExpectations(t)
}

func TestWebhooks(t *testing.T) {
	t.Run("with_pubsub", func(t *testing.T) {
		pubsubMock := &mockPubSub{}
		pubsubMock.On("Subscribe", domain.FillTopic, "http://localhost", "").
			Return("id", nil)
		pubsubMock.On("Unsubscribe", ports.UnspecifiedTopic, "id").Return(nil)
		pubsubMock.On("ListSubscriptionsForTopic", domain.FillTopic).
			Return([]ports.Subscription{})

		svc := pubsub.NewService(pubsubMock)

		id, err := svc.AddWebhook(ctx, domain.FillTopic, "http://localhost", "")
		require.NoError(t, err)
		require.Equal(t, "id", id)

		_, err = svc.AddWebhook(ctx, "TRADE_SETTLED", "http://localhost", "")
		require.Error(t, err)

		hooks, err := svc.ListWebhooks(ctx, domain.FillTopic)
		require.NoError(t, err)
		require.Empty(t, hooks)

		err = svc.RemoveWebhook(ctx, id)
		require.NoError(t, err)
		pubsubMock.AssertExpectations(t)
	})

	t.Run("without_pubsub", func(t *testing.T) {
		svc := pubsub.NewService(nil)

		_, err := svc.AddWebhook(ctx, domain.FillTopic, "http://localhost", "")
		require.Error(t, err)
		err = svc.RemoveWebhook(ctx, "id")
		require.Error(t, err)
		hooks, err := svc.ListWebhooks(ctx, domain.FillTopic)
		require.NoError(t, err)
		require.Nil(t, hooks)

		require.NotPanics(t, func() {
			svc.PublishEvents([]domain.Event{domain.CancelEvent{}})
			svc.Close()
		})
	})
}

type mockPubSub struct {
	mock.Mock
}

func (m *mockPubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	args := m.Called(topic, endpoint, secret)
	return args.String(0), args.Error(1)
}

func (m *mockPubSub) Unsubscribe(topic, id string) error {
	args := m.Called(topic, id)
	return args.Error(0)
}

func (m *mockPubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	args := m.Called(topic)

	var res []ports.Subscription
	if a := args.Get(0); a != nil {
		res = a.([]ports.Subscription)
	}
	return res
}

func (m *mockPubSub) Publish(topic string, message string) error {
	args := m.Called(topic, message)
	return args.Error(0)
}

func (m *mockPubSub) Close() error {
	args := m.Called()
	return args.Error(0)
}
