package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Handler must return nil only when the message was processed and its
// offset may be committed.
type Handler func(ctx context.Context, m kafka.Message) error

type Consumer struct {
	r *kafka.Reader
}

func NewConsumer(brokers []string, group, topic string) *Consumer {
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			GroupID:        group,
			Topic:          topic,
			MinBytes:       1,
			MaxBytes:       10e6,
			CommitInterval: 0, // commit per message, after the handler
		}),
	}
}

func (c *Consumer) Run(ctx context.Context, l *slog.Logger, h Handler) error {
	defer c.r.Close()

	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := h(ctx, m); err != nil {
			l.Error("handler failed, message not committed",
				"topic", m.Topic, "offset", m.Offset, "error", err)
			time.Sleep(200 * time.Millisecond)
			continue
		}
		if err := c.r.CommitMessages(ctx, m); err != nil {
			l.Error("commit failed", "topic", m.Topic, "offset", m.Offset, "error", err)
		}
	}
}
