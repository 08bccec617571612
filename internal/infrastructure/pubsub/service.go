package pubsub

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
	"github.com/tdex-network/tdex-settlement/pkg/circuitbreaker"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"
)

const (
	requestTimeout = 15 * time.Second
	// maxRequestsPerSecond caps the outgoing webhook requests, shared among
	// all subscriptions.
	maxRequestsPerSecond = 100
)

type service struct {
	store      *store
	httpClient *client
	cb         *gobreaker.CircuitBreaker
	limiter    ratelimit.Limiter

	// ctx is cancelled on Close to abort the pending deliveries.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewService returns a webhook based pubsub whose subscriptions are
// persisted in the given directory, or in memory if it's empty.
func NewService(dbDir string, logger badger.Logger) (ports.PubSub, error) {
	s, err := newStore(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening webhooks db: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &service{
		store:      s,
		httpClient: newHTTPClient(requestTimeout),
		cb:         circuitbreaker.NewCircuitBreaker("webhooks"),
		limiter:    ratelimit.New(maxRequestsPerSecond),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}
	return ws.store.add(sub)
}

func (ws *service) Unsubscribe(_, id string) error {
	return ws.store.remove(id)
}

func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	subs, err := ws.listSubscriptionsForTopic(topic)
	if err != nil {
		log.WithError(err).Warnf("failed to list webhooks for topic %s", topic)
		return nil
	}
	return subs.toPortable()
}

func (ws *service) Publish(topic string, message string) error {
	subs, err := ws.listSubscriptionsForTopic(topic)
	if err != nil {
		return err
	}

	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error { return ws.doRequest(sub, message) })
	}
	return eg.Wait()
}

func (ws *service) Close() error {
	ws.cancel()
	return ws.store.close()
}

func (ws *service) listSubscriptionsForTopic(topic string) (subscriptions, error) {
	subs, err := ws.store.get(topic)
	if err != nil {
		return nil, err
	}
	if topic != ports.AnyTopic && topic != ports.UnspecifiedTopic {
		subsForAnyTopic, err := ws.store.get(ports.AnyTopic)
		if err != nil {
			return nil, err
		}
		subs = append(subs, subsForAnyTopic...)
	}
	return subs, nil
}

func (ws *service) doRequest(sub Subscription, payload string) error {
	ws.limiter.Take()

	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{}
		if sub.IsSecured() {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
				IssuedAt: time.Now().Unix(),
				Subject:  sub.Event,
			})
			tokenString, err := token.SignedString([]byte(sub.Secret))
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		return nil, ws.httpClient.post(ws.ctx, sub.Endpoint, payload, headers)
	})
	if err != nil {
		return fmt.Errorf("webhook %s: %w", sub.ID, err)
	}
	return nil
}
