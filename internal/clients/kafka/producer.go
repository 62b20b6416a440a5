package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"voice-bridge/internal/observability"
	"voice-bridge/internal/voicecall/call"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes call lifecycle events to Kafka
type Producer struct {
	writer messageWriter
	logger *observability.Logger
}

// ProducerConfig contains configuration for Kafka producer
type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// NewProducer creates a new Kafka producer. Writes are asynchronous so a slow
// broker never holds up a live call; delivery failures are only logged.
func NewProducer(config ProducerConfig, logger *observability.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:        kafka.TCP(config.Brokers...),
		Topic:       config.Topic,
		Balancer:    &kafka.Hash{},
		Async:       true,
		Compression: kafka.Snappy,
		BatchSize:   100,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error(context.Background(), fmt.Sprintf("failed to deliver %d call events", len(messages)), err)
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

func newProducerWithWriter(w messageWriter, logger *observability.Logger) *Producer {
	return &Producer{writer: w, logger: logger}
}

// Publish writes one call event, keyed by call so a call's events stay ordered
func (p *Producer) Publish(ctx context.Context, event call.Event) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_type", Value: string(event.Type)},
		observability.Field{Key: "event_id", Value: event.ID},
	)

	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error(ctx, "failed to marshal event", err)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Key()),
		Value: eventBytes,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "direction", Value: []byte(event.Direction)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(ctx, "failed to write message to kafka", err)
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	p.logger.Debug(ctx, fmt.Sprintf("published event %s to kafka", event.Type))
	return nil
}

// Close flushes pending events and closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
