package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"storefront-client/internal/config"
	"storefront-client/internal/models"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKafkaSink_PublishesEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var event models.EngagementEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.EventType != models.EventAddToCart || event.ProductID != "P1" || event.UserID != "U9" {
			return fmt.Errorf("unexpected event %+v", event)
		}
		return nil
	})

	sink := NewKafkaSinkWithProducer(producer, "storefront.engagement", zap.NewNop())
	err := sink.Publish(context.Background(), models.EngagementEvent{
		EventType:  models.EventAddToCart,
		EventID:    "e-1",
		ProductID:  "P1",
		UserID:     "U9",
		OccurredAt: "2024-03-09T19:05:07Z",
	})

	require.NoError(t, err)
	require.NoError(t, sink.Close())
}

func TestKafkaSink_ProducerFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	sink := NewKafkaSinkWithProducer(producer, "storefront.engagement", zap.NewNop())
	err := sink.Publish(context.Background(), models.EngagementEvent{EventType: models.EventClick, ProductID: "P1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	require.NoError(t, sink.Close())
}

func TestKafkaSink_CancelledContextSkipsSend(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	sink := NewKafkaSinkWithProducer(producer, "storefront.engagement", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sink.Publish(ctx, models.EngagementEvent{EventType: models.EventClick, ProductID: "P1"})
	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, sink.Close())
}

func TestNewSaramaConfig_Acks(t *testing.T) {
	tests := []struct {
		acks     string
		expected sarama.RequiredAcks
	}{
		{acks: "0", expected: sarama.NoResponse},
		{acks: "1", expected: sarama.WaitForLocal},
		{acks: "all", expected: sarama.WaitForAll},
		{acks: "", expected: sarama.WaitForLocal},
	}

	for _, tt := range tests {
		t.Run("acks="+tt.acks, func(t *testing.T) {
			cfg := newSaramaConfig(&config.Config{KafkaAcks: tt.acks, KafkaClientID: "storefront", KafkaRetries: 3})
			assert.Equal(t, tt.expected, cfg.Producer.RequiredAcks)
			assert.True(t, cfg.Producer.Return.Successes)
			assert.Equal(t, 3, cfg.Producer.Retry.Max)
			assert.Equal(t, "storefront", cfg.ClientID)
		})
	}
}
