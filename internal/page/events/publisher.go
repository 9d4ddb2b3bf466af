package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/taizguy/zamapedia/internal/page/cache"
	"github.com/taizguy/zamapedia/internal/page/domain"
)

const TopicPageFetched = "page.fetched"

type EventPublisher struct {
	producer sarama.SyncProducer
}

func NewEventPublisher(brokers []string) (*EventPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return &EventPublisher{producer: producer}, nil
}

func (p *EventPublisher) PublishPageFetched(ctx context.Context,
	result *domain.FetchResult, cached bool) error {

	event := map[string]interface{}{
		"event_type": "page_fetched",
		"timestamp":  time.Now(),
		"data": map[string]interface{}{
			"url":           result.URL,
			"title":         result.Title,
			"snippet_count": len(result.Snippets),
			"handle_count":  len(result.Handles),
			"link_count":    len(result.Links),
			"cached":        cached,
			"fetched_at":    result.FetchedAt,
		},
	}

	return p.publish(TopicPageFetched, cache.Key(result.URL), event)
}

func (p *EventPublisher) publish(topic, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}

	_, _, err = p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (p *EventPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher is used when Kafka is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPageFetched(ctx context.Context, result *domain.FetchResult, cached bool) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
