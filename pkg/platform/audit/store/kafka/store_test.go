package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "warden/pkg/platform/audit"
	"warden/pkg/platform/sentinel"
)

type recordingProducer struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (p *recordingProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		p.records = append(p.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: p.err})
	}
	return results
}

func (p *recordingProducer) Close() { p.closed = true }

func TestStoreAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes JSON keyed by guild", func(t *testing.T) {
		producer := &recordingProducer{}
		store := NewWithProducer(producer, "warden.audit")

		event := audit.NewEvent(audit.EventRoleGranted)
		event.GuildID = "555"
		event.UserID = "1001"
		event.RoleID = "77"
		event.RunID = "run-1"
		event.Timestamp = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

		require.NoError(t, store.Append(ctx, event))
		require.Len(t, producer.records, 1)

		rec := producer.records[0]
		assert.Equal(t, "warden.audit", rec.Topic)
		assert.Equal(t, []byte("555"), rec.Key)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Value, &body))
		assert.Equal(t, "role_granted", body["action"])
		assert.Equal(t, "moderation", body["category"])
		assert.Equal(t, "1001", body["user_id"])
		assert.Equal(t, "2024-05-01T10:00:00Z", body["timestamp"])
		assert.NotEmpty(t, body["id"])
		assert.NotContains(t, body, "actor_id")
	})

	t.Run("producer failure is returned", func(t *testing.T) {
		producer := &recordingProducer{err: errors.New("broker down")}
		store := NewWithProducer(producer, "warden.audit")

		err := store.Append(ctx, audit.Event{Action: "role_granted"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broker down")
	})

	t.Run("listing is unsupported", func(t *testing.T) {
		store := NewWithProducer(&recordingProducer{}, "warden.audit")
		_, err := store.ListByGuild(ctx, "555", 10)
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})

	t.Run("close closes the producer", func(t *testing.T) {
		producer := &recordingProducer{}
		NewWithProducer(producer, "t").Close()
		assert.True(t, producer.closed)
	})
}

func TestNewRequiresBrokers(t *testing.T) {
	_, err := New(nil, "warden.audit")
	assert.Error(t, err)
}
