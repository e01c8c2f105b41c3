package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var first, second []Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, event Event) error {
		first = append(first, event)
		return nil
	})
	d.Subscribe(EventTicketCreated, func(_ context.Context, event Event) error {
		second = append(second, event)
		return nil
	})
	d.Subscribe(EventCommentAdded, func(_ context.Context, event Event) error {
		t.Fatal("unrelated handler invoked")
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "evt-1", Type: EventTicketCreated, TicketID: 7})
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	require.EqualValues(t, 7, first[0].TicketID)
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	var delivered bool
	d.Subscribe(EventTicketAssigned, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventTicketAssigned, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketAssigned}))
	require.True(t, delivered)
}
