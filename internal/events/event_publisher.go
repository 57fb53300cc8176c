package events

import (
	"context"
	"sync"
	"time"

	"inventory-catalog/internal/domain"

	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing item change events
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

type ItemCreatedEvent struct {
	Item       domain.Item `json:"item"`
	OccurredAt time.Time   `json:"occurred_at"`
}

type ItemUpdatedEvent struct {
	Item       domain.Item `json:"item"`
	OccurredAt time.Time   `json:"occurred_at"`
}

type ItemDeletedEvent struct {
	ItemID     int64     `json:"item_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DefaultRecentEvents is how many events the in-memory publisher keeps
const DefaultRecentEvents = 256

// InMemoryEventPublisher is used when Kafka is disabled. It logs every event and
// keeps only the most recent ones in a fixed-size ring.
type InMemoryEventPublisher struct {
	mu     sync.Mutex
	logger *zap.Logger
	ring   []interface{}
	next   int
	size   int
}

func NewEventPublisher(logger *zap.Logger) *InMemoryEventPublisher {
	return NewEventPublisherWithCapacity(logger, DefaultRecentEvents)
}

// NewEventPublisherWithCapacity keeps at most capacity events; values below 1 mean 1
func NewEventPublisherWithCapacity(logger *zap.Logger, capacity int) *InMemoryEventPublisher {
	if capacity < 1 {
		capacity = 1
	}
	return &InMemoryEventPublisher{
		logger: logger,
		ring:   make([]interface{}, capacity),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	p.ring[p.next] = event
	p.next = (p.next + 1) % len(p.ring)
	if p.size < len(p.ring) {
		p.size++
	}
	p.mu.Unlock()

	p.logger.Info("Event published (in-memory)", zap.String("event-type", EventType(event)))
	return nil
}

// Events returns the retained events, oldest first
func (p *InMemoryEventPublisher) Events() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]interface{}, 0, p.size)
	oldest := (p.next - p.size + len(p.ring)) % len(p.ring)
	for i := 0; i < p.size; i++ {
		out = append(out, p.ring[(oldest+i)%len(p.ring)])
	}
	return out
}

// EventType returns the event type as string
func EventType(event interface{}) string {
	switch event.(type) {
	case ItemCreatedEvent:
		return "ItemCreated"
	case ItemUpdatedEvent:
		return "ItemUpdated"
	case ItemDeletedEvent:
		return "ItemDeleted"
	default:
		return "Unknown"
	}
}
