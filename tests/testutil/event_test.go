package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestEvent(t *testing.T) {
	evt := NewTestEvent("catalog.product.created")

	assert.Equal(t, "catalog.product.created", evt.EventType())
	assert.NotEqual(t, uuid.Nil, evt.EventID())
	assert.NotEqual(t, uuid.Nil, evt.AggregateID())
	assert.Equal(t, "TestAggregate", evt.AggregateType())
	assert.False(t, evt.OccurredAt().IsZero())
}

func TestMockEventHandler(t *testing.T) {
	t.Run("records handled events", func(t *testing.T) {
		handler := NewMockEventHandler("ordering.order.placed")

		assert.Equal(t, []string{"ordering.order.placed"}, handler.EventTypes())

		evt := NewTestEvent("ordering.order.placed")
		require.NoError(t, handler.Handle(context.Background(), evt))

		assert.Equal(t, 1, handler.HandledCount())
		assert.Equal(t, evt.EventID(), handler.Handled()[0].EventID())
	})

	t.Run("wildcard handler has no event types", func(t *testing.T) {
		assert.Empty(t, NewMockEventHandler().EventTypes())
	})

	t.Run("returns the configured error", func(t *testing.T) {
		handler := NewMockEventHandler()
		handler.SetError(errors.New("boom"))

		err := handler.Handle(context.Background(), NewTestEvent("x"))
		assert.EqualError(t, err, "boom")
		assert.Equal(t, 1, handler.HandledCount())
	})
}
