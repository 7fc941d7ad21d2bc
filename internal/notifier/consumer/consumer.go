// Package consumer reads payment notifications from Kafka and hands them
// to the notifier.
package consumer

import (
	"context"
	"errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/anshmittal0811/Royal-Commerce/internal/notifier/service"
)

type Consumer struct {
	notifier *service.Notifier
	reader   *kafka.Reader
	log      *zap.Logger
}

func NewConsumer(notifier *service.Notifier, log *zap.Logger, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "payment-notifications",
		GroupID:  "notifier-service",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{notifier: notifier, reader: reader, log: log}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.log.Error("error closing kafka reader", zap.Error(err))
	}
}

// processMessage commits the offset even when handling fails: an
// undecodable message would otherwise be redelivered forever.
func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.log.Error("error reading message", zap.Error(err))
		return
	}

	if err := c.notifier.Handle(ctx, m.Value); err != nil {
		c.log.Error("error handling notification",
			zap.Int64("offset", m.Offset),
			zap.Error(err))
	}
}
