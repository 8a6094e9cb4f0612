package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "warden/pkg/platform/audit"
	"warden/pkg/platform/audit/store/memory"
	"warden/pkg/requestcontext"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	event := audit.NewEvent(audit.EventRoleGranted)
	event.GuildID = "555"
	event.UserID = "1001"

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.Recent(context.Background(), "555", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventRoleGranted), events[0].Action)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for range 10 {
		err := pub.Emit(context.Background(), audit.Event{GuildID: "555", UserID: "1001", Action: string(audit.EventRoleGranted)})
		require.NoError(t, err)
	}

	require.NoError(t, pub.Close())

	events, err := store.ListByGuild(context.Background(), "555", 100)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_EmitAfterClose(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(1))
	require.NoError(t, pub.Close())
	require.NoError(t, pub.Close())

	err := pub.Emit(context.Background(), audit.Event{Action: string(audit.EventRoleGranted)})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestPublisher_ConcurrentEmitDoesNotPanic(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pub.Emit(context.Background(), audit.Event{GuildID: "555", UserID: "1001", Action: string(audit.EventRoleGranted)})
			if err != nil {
				assert.True(t, errors.Is(err, ErrBufferFull))
			}
		}()
	}
	wg.Wait()
	require.NoError(t, pub.Close())
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore())
	defer pub.Close()

	before := time.Now()
	require.NoError(t, pub.Emit(context.Background(), audit.Event{GuildID: "555", UserID: "1001", Action: string(audit.EventRoleGranted)}))
	after := time.Now()

	events, err := pub.Recent(context.Background(), "555", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.Before(before))
	assert.False(t, events[0].Timestamp.After(after))
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore())
	defer pub.Close()

	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), audit.Event{GuildID: "555", UserID: "1001", Action: string(audit.EventRoleGranted), Timestamp: customTime}))

	events, err := pub.Recent(context.Background(), "555", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_UsesInvocationTime(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore())
	defer pub.Close()

	pinned := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), pinned)
	require.NoError(t, pub.Emit(ctx, audit.Event{GuildID: "555", UserID: "1001", Action: string(audit.EventRoleGranted)}))

	events, err := pub.Recent(context.Background(), "555", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, pinned, events[0].Timestamp)
}

func TestPublisher_MultipleEventsKeepOrder(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore())
	defer pub.Close()

	actions := []audit.AuditEvent{audit.EventScreeningCompleted, audit.EventRoleGranted, audit.EventRoleRemoved}
	for _, action := range actions {
		require.NoError(t, pub.Emit(context.Background(), audit.Event{GuildID: "555", UserID: "1001", Action: string(action)}))
	}

	result, err := pub.Recent(context.Background(), "555", 10)
	require.NoError(t, err)
	require.Len(t, result, 3)
	for i, action := range actions {
		assert.Equal(t, string(action), result[i].Action)
	}
}
