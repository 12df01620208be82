// Package events publishes resume processing events. Publishing is best
// effort: failures are logged and never reach the caller.
package events

import (
	"context"

	"github.com/medflow/resume-parser/pkg/logger"
	"github.com/medflow/resume-parser/pkg/messaging"
)

// Publisher emits resume lifecycle events
type Publisher interface {
	ResumeParsed(ctx context.Context, evt messaging.ResumeParsedEvent)
	ResumeFailed(ctx context.Context, evt messaging.ResumeFailedEvent)
}

// eventSender is satisfied by *messaging.Publisher
type eventSender interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// BrokerPublisher sends events through the message broker
type BrokerPublisher struct {
	sender eventSender
	log    *logger.Logger
}

// NewBrokerPublisher wraps a messaging publisher
func NewBrokerPublisher(sender eventSender, log *logger.Logger) *BrokerPublisher {
	return &BrokerPublisher{sender: sender, log: log.WithComponent("events")}
}

func (p *BrokerPublisher) ResumeParsed(ctx context.Context, evt messaging.ResumeParsedEvent) {
	p.publish(ctx, messaging.EventResumeParsed, evt)
}

func (p *BrokerPublisher) ResumeFailed(ctx context.Context, evt messaging.ResumeFailedEvent) {
	p.publish(ctx, messaging.EventResumeFailed, evt)
}

func (p *BrokerPublisher) publish(ctx context.Context, eventType string, data interface{}) {
	if err := p.sender.Publish(ctx, eventType, data); err != nil {
		p.log.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}

// Nop discards all events. It is used when the broker is disabled.
type Nop struct{}

func (Nop) ResumeParsed(context.Context, messaging.ResumeParsedEvent) {}
func (Nop) ResumeFailed(context.Context, messaging.ResumeFailedEvent) {}
