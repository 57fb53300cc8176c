package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryEventPublisher_RetentionIsBounded(t *testing.T) {
	publisher := NewEventPublisherWithCapacity(zap.NewNop(), 4)
	ctx := context.Background()

	for i := int64(1); i <= 10000; i++ {
		require.NoError(t, publisher.Publish(ctx, ItemDeletedEvent{ItemID: i}))
	}

	recorded := publisher.Events()
	require.Len(t, recorded, 4)
	for i, event := range recorded {
		deleted, ok := event.(ItemDeletedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(9997+i), deleted.ItemID)
	}
}

func TestInMemoryEventPublisher_DefaultCapacity(t *testing.T) {
	publisher := NewEventPublisher(zap.NewNop())
	ctx := context.Background()

	for i := 0; i < DefaultRecentEvents*3; i++ {
		require.NoError(t, publisher.Publish(ctx, ItemCreatedEvent{}))
	}

	assert.Len(t, publisher.Events(), DefaultRecentEvents)
}

func TestInMemoryEventPublisher_CapacityBelowOneKeepsLatest(t *testing.T) {
	publisher := NewEventPublisherWithCapacity(zap.NewNop(), 0)
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, ItemCreatedEvent{}))
	require.NoError(t, publisher.Publish(ctx, ItemDeletedEvent{ItemID: 3}))

	recorded := publisher.Events()
	require.Len(t, recorded, 1)
	assert.Equal(t, "ItemDeleted", EventType(recorded[0]))
}

func TestInMemoryEventPublisher_PartiallyFilledKeepsOrder(t *testing.T) {
	publisher := NewEventPublisherWithCapacity(zap.NewNop(), 8)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		require.NoError(t, publisher.Publish(ctx, ItemDeletedEvent{ItemID: i}))
	}

	recorded := publisher.Events()
	require.Len(t, recorded, 3)
	assert.Equal(t, int64(1), recorded[0].(ItemDeletedEvent).ItemID)
	assert.Equal(t, int64(3), recorded[2].(ItemDeletedEvent).ItemID)
}
