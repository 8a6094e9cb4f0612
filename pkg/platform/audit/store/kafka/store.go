// Package kafka ships audit events to a Kafka-compatible broker. The topic is the
// system of record; this store cannot list events back.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "warden/pkg/platform/audit"
	"warden/pkg/platform/sentinel"
)

// Producer is the slice of *kgo.Client the store needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Store implements audit.Store on top of a franz-go producer.
type Store struct {
	producer Producer
	topic    string
}

// New dials the brokers. The client connects lazily, so an unreachable broker shows
// up on the first Append rather than here.
func New(brokers []string, topic string) (*Store, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka audit store requires at least one broker")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(50*time.Millisecond),
		kgo.RecordRetries(1),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return NewWithProducer(client, topic), nil
}

// NewWithProducer wraps an existing producer, used by tests.
func NewWithProducer(p Producer, topic string) *Store {
	return &Store{producer: p, topic: topic}
}

// payload is the JSON published for every event.
type payload struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
	GuildID   string `json:"guild_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	RoleID    string `json:"role_id,omitempty"`
	Action    string `json:"action"`
	Outcome   string `json:"outcome,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RunID     string `json:"run_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
}

func encode(event audit.Event) ([]byte, error) {
	return json.Marshal(payload{
		ID:        uuid.NewString(),
		Category:  string(event.Category),
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
		GuildID:   event.GuildID,
		UserID:    event.UserID,
		RoleID:    event.RoleID,
		Action:    event.Action,
		Outcome:   event.Outcome,
		Reason:    event.Reason,
		RunID:     event.RunID,
		RequestID: event.RequestID,
		ActorID:   event.ActorID,
	})
}

// Append produces one record keyed by guild so a guild's events stay ordered.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	value, err := encode(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	record := &kgo.Record{Topic: s.topic, Key: []byte(event.GuildID), Value: value}
	if err := s.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// ListByGuild is unsupported; consumers read the topic directly.
func (s *Store) ListByGuild(_ context.Context, _ string, _ int) ([]audit.Event, error) {
	return nil, fmt.Errorf("kafka audit store is write-only: %w", sentinel.ErrUnavailable)
}

// Close flushes and closes the producer.
func (s *Store) Close() {
	s.producer.Close()
}
