package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var seen []int64
	dispatcher.Subscribe(EventAuthLogin, func(_ context.Context, event Event) error {
		seen = append(seen, event.UserID)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		Type:      EventAuthLogin,
		UserID:    7,
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, []int64{7}, seen)

	// unrelated event types are not delivered
	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventAuthLogout, UserID: 8}))
	require.Equal(t, []int64{7}, seen)
}

func TestDispatcherContinuesPastFailingHandler(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var delivered bool
	dispatcher.Subscribe(EventAuthLogoutAll, func(context.Context, Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventAuthLogoutAll, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventAuthLogoutAll}))
	require.True(t, delivered)
}
