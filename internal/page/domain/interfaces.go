package domain

import "context"

// EventPublisher interface for publishing domain events
type EventPublisher interface {
	PublishPageFetched(ctx context.Context, result *FetchResult, cached bool) error
	Close() error
}
