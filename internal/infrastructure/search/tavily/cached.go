package tavily

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mealforge/v1/internal/ports/outbound"
)

// CachedSearchService is a read-through cache over a SearchService. Search
// results for a query are stable content, so sharing them across runs is
// safe; recipe state is never cached.
type CachedSearchService struct {
	inner  outbound.SearchService
	cache  outbound.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedSearchService wraps inner with a read-through cache.
func NewCachedSearchService(inner outbound.SearchService, cache outbound.CacheRepository, ttl time.Duration, logger *zap.Logger) *CachedSearchService {
	return &CachedSearchService{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("search-cache"),
	}
}

// Search returns cached hits when present, otherwise delegates and stores the
// result. Auth failures are never cached; an expired credential must be
// re-detected on the next run.
func (s *CachedSearchService) Search(ctx context.Context, query string, maxResults int) ([]outbound.SearchHit, error) {
	key := cacheKey(query, maxResults)

	if data, err := s.cache.Get(ctx, key); err == nil {
		var hits []outbound.SearchHit
		if err := json.Unmarshal(data, &hits); err == nil {
			s.logger.Debug("Search cache hit", zap.String("query", query))
			return hits, nil
		}
		// Corrupt entry, drop it and fall through.
		_ = s.cache.Delete(ctx, key)
	}

	hits, err := s.inner.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(hits); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("Failed to cache search results", zap.Error(err))
		}
	}

	return hits, nil
}

func cacheKey(query string, maxResults int) string {
	return fmt.Sprintf("search:%d:%s", maxResults, query)
}

var _ outbound.SearchService = (*CachedSearchService)(nil)
