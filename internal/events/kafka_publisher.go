package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"inventory-catalog/internal/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer   sarama.SyncProducer
	logger     *zap.Logger
	topic      string
	maxRetries int
	baseDelay  time.Duration
}

// NewKafkaEventPublisher creates a publisher backed by a sarama sync producer
func NewKafkaEventPublisher(cfg *config.InventoryConfig, logger *zap.Logger) (*KafkaEventPublisher, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = cfg.KafkaClientID
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Retry.Max = cfg.KafkaRetries
	saramaCfg.Producer.Idempotent = true
	saramaCfg.Net.MaxOpenRequests = 1

	switch cfg.KafkaAcks {
	case "0":
		saramaCfg.Producer.RequiredAcks = sarama.NoResponse
		saramaCfg.Producer.Idempotent = false
	case "1":
		saramaCfg.Producer.RequiredAcks = sarama.WaitForLocal
		saramaCfg.Producer.Idempotent = false
	default:
		saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	}

	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewKafkaEventPublisherWithProducer(producer, cfg.KafkaTopicItems, logger), nil
}

// NewKafkaEventPublisherWithProducer wires an existing producer
func NewKafkaEventPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *zap.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer:   producer,
		logger:     logger,
		topic:      topic,
		maxRetries: 3,
		baseDelay:  100 * time.Millisecond,
	}
}

// Publish sends the event as JSON, retrying with exponential backoff
func (p *KafkaEventPublisher) Publish(ctx context.Context, event interface{}) error {
	eventType := EventType(event)
	if eventType == "Unknown" {
		return fmt.Errorf("unknown event type: %T", event)
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(partitionKey(event)),
		Value: sarama.ByteEncoder(eventJSON),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(eventType)},
			{Key: []byte("event-id"), Value: []byte(uuid.New().String())},
			{Key: []byte("timestamp"), Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}

	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled: %w", err)
		}

		partition, offset, err := p.producer.SendMessage(message)
		if err == nil {
			p.logger.Info("Event published to Kafka",
				zap.String("topic", p.topic),
				zap.Int32("partition", partition),
				zap.Int64("offset", offset),
				zap.String("event-type", eventType),
				zap.Int("attempt", attempt+1),
			)
			return nil
		}

		p.logger.Warn("Failed to publish event to Kafka, retrying",
			zap.String("topic", p.topic),
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", p.maxRetries),
		)

		if attempt < p.maxRetries-1 {
			delay := p.baseDelay * time.Duration(1<<uint(attempt)) // 100ms, 200ms, 400ms
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled during backoff: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("failed to publish event to Kafka after %d attempts", p.maxRetries)
}

// Close closes the Kafka producer
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// partitionKey keeps every event of one item on the same partition
func partitionKey(event interface{}) string {
	switch e := event.(type) {
	case ItemCreatedEvent:
		return strconv.FormatInt(e.Item.ID, 10)
	case ItemUpdatedEvent:
		return strconv.FormatInt(e.Item.ID, 10)
	case ItemDeletedEvent:
		return strconv.FormatInt(e.ItemID, 10)
	}
	return ""
}
