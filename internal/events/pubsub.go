package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"cloud.google.com/go/pubsub"
	"github.com/vancoder1/CampusJobBoardSystem/config"
	"google.golang.org/api/option"
)

// PubSubPublisher delivers events to a single Google Cloud Pub/Sub topic,
// with the event name carried as an attribute.
type PubSubPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPubSubPublisher constructs a publisher from config, creating the topic
// if it does not exist yet.
func NewPubSubPublisher(ctx context.Context, cfg config.PubSubConfig) (*PubSubPublisher, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("pubsub project id is required")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("pubsub topic is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, err
	}

	topic := client.Topic(cfg.Topic)
	exists, err := topic.Exists(ctx)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	if !exists {
		topic, err = client.CreateTopic(ctx, cfg.Topic)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
	}

	return &PubSubPublisher{client: client, topic: topic}, nil
}

// Publish sends the event, JSON-encoded, to the configured topic.
func (p *PubSubPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	attrs := map[string]string{"event": event.Name}
	for key, value := range event.Attributes {
		attrs[key] = value
	}

	result := p.topic.Publish(ctx, &pubsub.Message{Data: body, Attributes: attrs})
	_, err = result.Get(ctx)
	return err
}

// Close stops the topic's publish goroutines and closes the client.
func (p *PubSubPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
