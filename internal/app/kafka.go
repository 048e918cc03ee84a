package app

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"getmystuff-courier/internal/apperr"
	"getmystuff-courier/internal/config"
	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/logx"
	"getmystuff-courier/internal/metrics"
	"getmystuff-courier/internal/service/notifications"
	"getmystuff-courier/internal/service/trips"
	"getmystuff-courier/internal/transport/kafka"
)

var (
	newProducer = kafka.NewProducer
	newConsumer = kafka.NewConsumer
)

type publisherOut struct {
	dig.Out

	Publisher trips.EventPublisher
	Producer  *kafka.Producer
}

// notificationIngest emits consumed events into the feed. Redelivered events
// are already there and count as handled.
func notificationIngest(svc *notifications.Service) kafka.HandleFunc {
	return func(ctx context.Context, n domain.Notification) error {
		if _, err := svc.Emit(ctx, n); err != nil && !errors.Is(err, apperr.ErrConflict) {
			return err
		}
		return nil
	}
}

// newTripPublisher returns a retrying Kafka publisher, or a no-op one when
// brokers are not configured.
func newTripPublisher(cfg *config.Config, logger logx.Logger, m *metrics.Set) (publisherOut, error) {
	p, err := newProducer(logger, cfg.Kafka.Brokers, cfg.Kafka.TripsTopic)
	if err != nil {
		return publisherOut{}, err
	}
	if p == nil {
		logger.Info("kafka not configured, trip events disabled")
		return publisherOut{Publisher: trips.NopPublisher{}}, nil
	}
	pub := kafka.NewRetryingPublisher(p, logger, m.PublishRetries, kafka.RetryConfig{
		MaxAttempts: cfg.Publish.MaxAttempts,
		BaseDelay:   cfg.Publish.BaseDelay,
		MaxDelay:    cfg.Publish.MaxDelay,
	})
	return publisherOut{Publisher: pub, Producer: p}, nil
}

func newNotificationConsumer(cfg *config.Config, logger logx.Logger, svc *notifications.Service) (*kafka.Consumer, error) {
	return newConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, notificationIngest(svc))
}

func registerKafka(container *dig.Container) error {
	return provideAll(container,
		newTripPublisher,
		newNotificationConsumer,
	)
}
