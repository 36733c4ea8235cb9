package events

import (
	"context"
	"encoding/json"

	"benixspace-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// AuditConsumer drains the event bus into the structured log. It is the
// baseline consumer that keeps the bus exercised; richer consumers can
// subscribe to the same topic independently.
type AuditConsumer struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewAuditConsumer(pubSub *gochannel.GoChannel, log logger.ILogger) *AuditConsumer {
	return &AuditConsumer{pubSub: pubSub, logger: log}
}

func (c *AuditConsumer) Consume(ctx context.Context) error {
	messages, err := c.pubSub.Subscribe(ctx, Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(msg)
		}
	}()

	return nil
}

func (c *AuditConsumer) processMessage(msg *message.Message) {
	var evt envelope
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		c.logger.Error("EVENTS", "Failed to unmarshal event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payload, retrying cannot help
		return
	}

	c.logger.Info("EVENTS", "Event received", map[string]interface{}{
		"type":        evt.Type,
		"data":        evt.Data,
		"occurred_at": evt.OccurredAt,
	})
	msg.Ack()
}
