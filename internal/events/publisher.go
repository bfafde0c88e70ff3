package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	// TopicContentEvents carries every content lifecycle event.
	TopicContentEvents = "content-events"

	sourceName    = "content-service"
	schemaVersion = "1.0"
)

// Content event types.
const (
	EventContentCreated    = "content.created"
	EventContentUpdated    = "content.updated"
	EventContentDeleted    = "content.deleted"
	EventContentDownloaded = "content.downloaded"
)

// Event is the envelope published for every content lifecycle change.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope around the given payload.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Source:    sourceName,
		Version:   schemaVersion,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// EventPublisher abstracts the transport behind event publishing so services
// do not care whether Kafka is configured.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// watermillPublisher publishes envelopes through any watermill publisher.
type watermillPublisher struct {
	publisher message.Publisher
	topic     string
}

func (p *watermillPublisher) Publish(_ context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", event.Type)
	msg.Metadata.Set("source", event.Source)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}

// NewKafkaEventPublisher publishes content events to Kafka. Used when
// KAFKA_BROKERS is configured.
func NewKafkaEventPublisher(brokers []string, logger *slog.Logger) (EventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &watermillPublisher{publisher: publisher, topic: TopicContentEvents}, nil
}

// NewGoChannelEventPublisher publishes through an in-process pub/sub. Used
// in development and tests where no broker is available.
func NewGoChannelEventPublisher(logger *slog.Logger) EventPublisher {
	return &watermillPublisher{
		publisher: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger)),
		topic:     TopicContentEvents,
	}
}

// MockEventPublisher records events in memory for assertions in tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockEventPublisher) Close() error { return nil }

func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
