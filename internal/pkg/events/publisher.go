// Package events publishes domain events onto the in-process bus so
// auxiliary consumers (audit logging, future notification hooks) stay
// decoupled from the request path. Publish failures are logged, never
// propagated: events are best-effort by contract.
package events

import (
	"context"
	"encoding/json"
	"time"

	"benixspace-be/internal/pkg/logger"
	pkgEvents "benixspace-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const Topic = "benixspace.events"

// Publisher abstracts event emission for the services.
type Publisher interface {
	PublishGenerationCompleted(ctx context.Context, userID uint, generationID uint, serviceUsed string, hasVocals bool)
	PublishTrialStarted(ctx context.Context, userID uint, expiresAt time.Time)
	PublishSubscriptionStarted(ctx context.Context, userID uint, plan string, amount float64, expiresAt time.Time)
	PublishSubscriptionCanceled(ctx context.Context, userID uint, plan string)
}

type envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// ChannelPublisher implements Publisher over a watermill GoChannel bus.
type ChannelPublisher struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewChannelPublisher(pubSub *gochannel.GoChannel, log logger.ILogger) *ChannelPublisher {
	return &ChannelPublisher{pubSub: pubSub, logger: log}
}

func (p *ChannelPublisher) publish(evt pkgEvents.Event) {
	if p.pubSub == nil {
		return
	}

	payload, err := json.Marshal(envelope{
		Type:       evt.EventType(),
		Data:       evt.Payload(),
		OccurredAt: evt.Timestamp(),
	})
	if err != nil {
		p.logger.Error("EVENTS", "Failed to marshal event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	if err := p.pubSub.Publish(Topic, msg); err != nil {
		p.logger.Error("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

func (p *ChannelPublisher) PublishGenerationCompleted(ctx context.Context, userID uint, generationID uint, serviceUsed string, hasVocals bool) {
	now := time.Now()
	p.publish(pkgEvents.BaseEvent{
		Type: "GENERATION_COMPLETED",
		Data: map[string]interface{}{
			"user_id":       userID,
			"generation_id": generationID,
			"service_used":  serviceUsed,
			"has_vocals":    hasVocals,
		},
		OccurredAt: now,
	})
}

func (p *ChannelPublisher) PublishTrialStarted(ctx context.Context, userID uint, expiresAt time.Time) {
	now := time.Now()
	p.publish(pkgEvents.BaseEvent{
		Type: "TRIAL_STARTED",
		Data: map[string]interface{}{
			"user_id":    userID,
			"expires_at": expiresAt,
		},
		OccurredAt: now,
	})
}

func (p *ChannelPublisher) PublishSubscriptionStarted(ctx context.Context, userID uint, plan string, amount float64, expiresAt time.Time) {
	now := time.Now()
	p.publish(pkgEvents.BaseEvent{
		Type: "SUBSCRIPTION_STARTED",
		Data: map[string]interface{}{
			"user_id":    userID,
			"plan":       plan,
			"amount":     amount,
			"currency":   "USD",
			"expires_at": expiresAt,
		},
		OccurredAt: now,
	})
}

func (p *ChannelPublisher) PublishSubscriptionCanceled(ctx context.Context, userID uint, plan string) {
	now := time.Now()
	p.publish(pkgEvents.BaseEvent{
		Type: "SUBSCRIPTION_CANCELED",
		Data: map[string]interface{}{
			"user_id": userID,
			"plan":    plan,
		},
		OccurredAt: now,
	})
}
