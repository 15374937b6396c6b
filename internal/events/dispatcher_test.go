package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcherDeliversByType(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var created, assigned []Event
	dispatcher.Subscribe(EventIncidentCreated, func(_ context.Context, event Event) error {
		created = append(created, event)
		return nil
	})
	dispatcher.Subscribe(EventIncidentAssigned, func(_ context.Context, event Event) error {
		assigned = append(assigned, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventIncidentCreated, IncidentID: "INC-1"})
	require.NoError(t, err)

	require.Len(t, created, 1)
	assert.Equal(t, "INC-1", created[0].IncidentID)
	assert.Empty(t, assigned)
}

func TestInMemoryDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var secondCalled bool
	dispatcher.Subscribe(EventIncidentCommentAdded, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	dispatcher.Subscribe(EventIncidentCommentAdded, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventIncidentCommentAdded})
	require.NoError(t, err)
	assert.True(t, secondCalled)
}

func TestInMemoryDispatcherNoSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	err := dispatcher.Publish(context.Background(), Event{Type: EventIncidentStatusChanged})
	assert.NoError(t, err)
}
