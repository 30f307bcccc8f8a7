package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"restaurant-directory/core/logger"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event is the lifecycle message published for every write.
type Event struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ResourceID string    `json:"resourceId"`
	Data       any       `json:"data,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Topic is "<entity>.<action>", carried as a message header.
func (e Event) Topic() string {
	return e.Entity + "." + e.Action
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewPublisher returns a Kafka publisher, or a no-op one when no brokers
// are configured.
func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 || topic == "" {
		logger.Info("Broker:Disabled", "reason", "no kafka brokers configured")
		return NoopPublisher{}
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ResourceID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "topic", Value: []byte(event.Topic())},
		},
	})
	if err != nil {
		logger.Error("Broker:Publish", "topic", event.Topic(), "resourceId", event.ResourceID, "error", err)
		return err
	}
	logger.Debug("Broker:Publish", "topic", event.Topic(), "resourceId", event.ResourceID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }
