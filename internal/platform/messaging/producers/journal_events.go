package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"github.com/trading-journal-backend/internal/config"
)

// JournalEventProducer writes journal events keyed by journal id, so every event
// of one journal lands on the same partition in commit order
type JournalEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

func NewJournalEventProducer(_ context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*JournalEventProducer, error) {
	if cfg.JournalEventsTopic == "" {
		return nil, fmt.Errorf("kafka journal events topic is not configured")
	}

	brokers := cfg.BrokerList()
	if err := EnsureTopic(logger, brokers, cfg.JournalEventsTopic, cfg.NumPartitions, cfg.ReplicationFactor); err != nil {
		return nil, fmt.Errorf("failed to ensure journal events topic %s exists: %w", cfg.JournalEventsTopic, err)
	}

	// Synchronous writes: the outbox relay marks a row published only after the broker acknowledged it.
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        cfg.JournalEventsTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: cfg.MaxWait,
	}

	return &JournalEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.JournalEventsTopic,
	}, nil
}

// Publish writes value as JSON. Values that are already encoded JSON are sent unchanged.
func (p *JournalEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	payload, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("failed to marshal journal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish journal event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish journal event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published journal event", "topic", p.topic, "key", key)
	return nil
}

func (p *JournalEventProducer) Close() error {
	p.logger.Info("Closing journal event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}

func encodeValue(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case json.RawMessage:
		return v, nil
	case []byte:
		return v, nil
	default:
		return json.Marshal(value)
	}
}
