// Package publisher writes payment notifications to Kafka for the notifier
// to consume.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/anshmittal0811/Royal-Commerce/internal/payment/domain"
)

const Topic = "payment-notifications"

type NotificationPublisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

// Publish keys the message by order id so notifications for one order stay
// ordered within a partition. Delivery is at-least-once; the consumer
// tolerates duplicates.
func (p *KafkaPublisher) Publish(ctx context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(n.OrderID, 10)),
		Value: payload,
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
