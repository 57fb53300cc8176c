package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	c := NewInMemoryCache()
	ctx := context.Background()

	_, err := c.Get(ctx, "item:1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "item:1", []byte("value"), time.Minute))
	got, err := c.Get(ctx, "item:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	require.NoError(t, c.Delete(ctx, "item:1"))
	_, err = c.Get(ctx, "item:1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInMemoryCache_Expiration(t *testing.T) {
	c := NewInMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "item:2", []byte("value"), 50*time.Millisecond))
	time.Sleep(80 * time.Millisecond)

	_, err := c.Get(ctx, "item:2")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestJSONHelpers(t *testing.T) {
	c := NewInMemoryCache()
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}

	require.NoError(t, SetJSON(ctx, c, "k", payload{Name: "Widget"}, TTL(60)))

	var out payload
	require.NoError(t, GetJSON(ctx, c, "k", &out))
	assert.Equal(t, "Widget", out.Name)
}
