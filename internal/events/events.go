// Package events publishes domain events to a message broker.
//
// Publishing is best-effort: services log a failed publish and carry on, so
// a broker outage never fails the originating request.
package events

import (
	"context"
	"time"

	"github.com/vancoder1/CampusJobBoardSystem/config"
)

// Event names emitted by the services.
const (
	EventJobPosted            = "job.posted"
	EventJobStatusChanged     = "job.status_changed"
	EventApplicationSubmitted = "application.submitted"
)

// Event is a domain event delivered to subscribers.
type Event struct {
	Name       string            `json:"name"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Publisher delivers events to a broker backend.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// New constructs a domain event with the current timestamp.
func New(name string, attrs map[string]string) Event {
	return Event{
		Name:       name,
		OccurredAt: time.Now(),
		Attributes: attrs,
	}
}

// NewPublisher selects a backend from config. The "none" backend returns a
// publisher that drops every event.
func NewPublisher(ctx context.Context, cfg config.EventsConfig) (Publisher, error) {
	switch cfg.Backend {
	case "rabbitmq":
		return NewRabbitMQPublisher(cfg.RabbitMQ)
	case "pubsub":
		return NewPubSubPublisher(ctx, cfg.PubSub)
	default:
		return NopPublisher{}, nil
	}
}

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
