package engagement

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-client/internal/config"
	"storefront-client/internal/models"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// KafkaSink publishes engagement events to Kafka. Click, dwell, cart and wishlist signals
// all reach it through the reporter's event mirror.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewKafkaSink creates a sync producer for cfg.KafkaTopicEngagement
func NewKafkaSink(cfg *config.Config, logger *zap.Logger) (*KafkaSink, error) {
	logger.Info("🔌 Creating Kafka producer",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopicEngagement),
	)

	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, newSaramaConfig(cfg))
	if err != nil {
		logger.Error("❌ Failed to create Kafka producer",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewKafkaSinkWithProducer(producer, cfg.KafkaTopicEngagement, logger), nil
}

// NewKafkaSinkWithProducer wraps an existing producer.
func NewKafkaSinkWithProducer(producer sarama.SyncProducer, topic string, logger *zap.Logger) *KafkaSink {
	return &KafkaSink{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

func newSaramaConfig(cfg *config.Config) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.KafkaClientID
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.Retry.Max = cfg.KafkaRetries
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Version = sarama.V2_8_0_0

	switch cfg.KafkaAcks {
	case "0":
		saramaConfig.Producer.RequiredAcks = sarama.NoResponse
	case "all":
		saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	default:
		saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	}

	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.ReadTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second

	return saramaConfig
}

// Publish sends one event keyed by product id so a product's signals stay ordered per partition.
func (s *KafkaSink) Publish(ctx context.Context, event models.EngagementEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal engagement event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(event.ProductID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(event.EventType)},
			{Key: []byte("event-id"), Value: []byte(event.EventID)},
			{Key: []byte("timestamp"), Value: []byte(event.OccurredAt)},
		},
	}

	partition, offset, err := s.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish %s to Kafka: %w", event.EventType, err)
	}

	s.logger.Debug("Engagement event published to Kafka",
		zap.String("topic", s.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
		zap.String("event-type", event.EventType),
		zap.String("pid", event.ProductID),
	)
	return nil
}

// Close closes the Kafka producer
func (s *KafkaSink) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}
