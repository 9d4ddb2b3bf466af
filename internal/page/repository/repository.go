package repository

import (
	"context"

	"github.com/taizguy/zamapedia/internal/page/domain"
)

type Repository interface {
	RecordFetch(ctx context.Context, record *domain.FetchRecord) error
	RecentFetches(ctx context.Context, limit, offset int) ([]*domain.FetchRecord, error)
}
