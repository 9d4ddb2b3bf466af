package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taizguy/zamapedia/internal/page/cache"
	"github.com/taizguy/zamapedia/internal/page/domain"
	"github.com/taizguy/zamapedia/internal/page/extractor"
	"github.com/taizguy/zamapedia/internal/page/fetcher"
	"github.com/taizguy/zamapedia/internal/page/metrics"
	"github.com/taizguy/zamapedia/internal/page/repository"
	"github.com/taizguy/zamapedia/pkg/validator"
)

// PageService runs the fetch pipeline: validate, cache lookup, bounded
// fetch, extraction, best-effort cache write. Every collaborator is injected
// so transports and tests share the same orchestrator.
type PageService struct {
	validator validator.URLValidator
	cache     cache.Cache
	fetcher   fetcher.Fetcher
	extractor *extractor.Extractor
	repo      repository.Repository // nil when history is disabled
	publisher domain.EventPublisher
	metrics   metrics.Metrics
	logger    *zap.Logger
}

func NewPageService(
	urlValidator validator.URLValidator,
	cacheLayer cache.Cache,
	pageFetcher fetcher.Fetcher,
	pageExtractor *extractor.Extractor,
	repo repository.Repository,
	publisher domain.EventPublisher,
	metricsCollector metrics.Metrics,
	logger *zap.Logger,
) *PageService {
	return &PageService{
		validator: urlValidator,
		cache:     cacheLayer,
		fetcher:   pageFetcher,
		extractor: pageExtractor,
		repo:      repo,
		publisher: publisher,
		metrics:   metricsCollector,
		logger:    logger,
	}
}

// FetchPage resolves one URL to a PageResponse. Cache failures on either
// side never fail the pipeline; fetch failures are returned as the domain
// errors the handler maps to status codes.
func (s *PageService) FetchPage(ctx context.Context, rawURL string) (*domain.PageResponse, error) {
	if _, err := s.validator.Validate(rawURL); err != nil {
		return nil, err
	}

	start := time.Now()

	cached, err := s.cache.Get(ctx, rawURL)
	if err != nil {
		s.logger.Warn("Cache get failed",
			zap.Error(err), zap.String("url", rawURL))
	}
	if cached != nil {
		s.metrics.IncrementCounter("page.cache_hit")
		s.recordFetch(cached, true)
		return &domain.PageResponse{OK: true, Cached: true, FetchResult: *cached}, nil
	}
	s.metrics.IncrementCounter("page.cache_miss")

	page, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.metrics.IncrementCounter("page.fetch_error")
		return nil, err
	}

	result := s.extractor.Extract(page.HTML, rawURL)

	if err := s.cache.Set(ctx, rawURL, result); err != nil {
		s.logger.Warn("Failed to cache result",
			zap.Error(err), zap.String("url", rawURL))
	}

	s.metrics.RecordDuration("page.fetch", time.Since(start))
	s.recordFetch(result, false)

	return &domain.PageResponse{OK: true, Cached: false, FetchResult: *result}, nil
}

// History lists recent fetch records, newest first. Empty when no repository
// is configured.
func (s *PageService) History(ctx context.Context, limit, offset int) ([]*domain.FetchRecord, error) {
	if s.repo == nil {
		return []*domain.FetchRecord{}, nil
	}
	return s.repo.RecentFetches(ctx, limit, offset)
}

// recordFetch writes history and publishes the fetch event asynchronously.
// Neither outcome affects the response.
func (s *PageService) recordFetch(result *domain.FetchResult, cached bool) {
	snapshot := *result
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if s.repo != nil {
			record := &domain.FetchRecord{
				URL:          snapshot.URL,
				Digest:       cache.Key(snapshot.URL),
				Title:        snapshot.Title,
				SnippetCount: len(snapshot.Snippets),
				HandleCount:  len(snapshot.Handles),
				LinkCount:    len(snapshot.Links),
				Cached:       cached,
				FetchedAt:    time.UnixMilli(snapshot.FetchedAt),
			}
			if err := s.repo.RecordFetch(ctx, record); err != nil {
				s.logger.Error("Failed to record fetch",
					zap.Error(err), zap.String("url", snapshot.URL))
			}
		}

		if err := s.publisher.PublishPageFetched(ctx, &snapshot, cached); err != nil {
			s.logger.Error("Failed to publish fetch event",
				zap.Error(err), zap.String("url", snapshot.URL))
		}
	}()
}
