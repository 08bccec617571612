package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-settlement/internal/core/domain"
	"github.com/tdex-network/tdex-settlement/internal/core/ports"
)

var supportedTopics = map[string]struct{}{
	domain.FillTopic:           {},
	domain.CancelTopic:         {},
	domain.CancelUpToTopic:     {},
	domain.ExchangeStatusTopic: {},
	ports.AnyTopic:             {},
}

// Service turns exchange events into JSON messages and publishes them to
// the subscribers of the relative topic.
type Service struct {
	pubsub ports.PubSub
}

// NewService returns a new pubsub service. A nil pubsub is accepted and
// makes the service log events without notifying anyone.
func NewService(pubsub ports.PubSub) *Service {
	return &Service{pubsub}
}

func (s *Service) AddWebhook(
	_ context.Context, topic, endpoint, secret string,
) (string, error) {
	if s.pubsub == nil {
		return "", fmt.Errorf("pubsub is not enabled")
	}
	if _, ok := supportedTopics[topic]; !ok {
		return "", fmt.Errorf("invalid webhook topic %s", topic)
	}
	return s.pubsub.Subscribe(topic, endpoint, secret)
}

func (s *Service) RemoveWebhook(_ context.Context, id string) error {
	if s.pubsub == nil {
		return fmt.Errorf("pubsub is not enabled")
	}
	return s.pubsub.Unsubscribe(ports.UnspecifiedTopic, id)
}

func (s *Service) ListWebhooks(
	_ context.Context, topic string,
) ([]ports.Subscription, error) {
	if s.pubsub == nil {
		return nil, nil
	}
	return s.pubsub.ListSubscriptionsForTopic(topic), nil
}

// PublishEvents notifies the given events. It must be called only once the
// transition that produced them has been committed. Publishing failures are
// logged and never affect the committed state.
func (s *Service) PublishEvents(events []domain.Event) {
	for _, event := range events {
		if err := s.publishEvent(event); err != nil {
			log.WithError(err).Warnf("failed to publish %s event", event.Topic())
		}
	}
}

func (s *Service) publishEvent(event domain.Event) error {
	payload, err := getEventPayload(event)
	if err != nil {
		return err
	}
	message, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	log.WithField("topic", event.Topic()).Debug(string(message))

	if s.pubsub == nil {
		return nil
	}
	return s.pubsub.Publish(event.Topic(), string(message))
}

func (s *Service) Close() {
	if s.pubsub == nil {
		return
	}
	if err := s.pubsub.Close(); err != nil {
		log.WithError(err).Warn("failed to close pubsub")
	}
}
