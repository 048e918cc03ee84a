package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"

	"getmystuff-courier/internal/logx"
	"getmystuff-courier/internal/service/trips"
)

var newSyncProducer = sarama.NewSyncProducer

// Producer publishes trip events to a Kafka topic.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   logx.Logger
}

// NewProducer creates a Producer. It returns nil without error when Kafka is not configured.
func NewProducer(logger logx.Logger, brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	// retries are handled by RetryingPublisher
	cfg.Producer.Retry.Max = 0

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Producer{producer: p, topic: topic, logger: logger}, nil
}

// PublishTripPosted sends a trip.posted event keyed by trip id.
func (p *Producer) PublishTripPosted(ctx context.Context, e trips.PostedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(FromPostedEvent(e))
	if err != nil {
		return Permanent(fmt.Errorf("encode trip event: %w", err))
	}
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.TripID),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		return err
	}
	p.logger.Debug("trip event published",
		logx.String("trip_id", string(e.TripID)),
		logx.Int("partition", int(partition)),
		logx.Any("offset", offset),
	)
	return nil
}

// Close closes the underlying producer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
