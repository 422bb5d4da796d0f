// Package memory provides an in-memory cache repository implementation.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mealforge/v1/internal/ports/outbound"
)

// ErrNotFound is returned when a key is missing or expired.
var ErrNotFound = errors.New("key not found")

type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

// CacheRepository implements an in-memory TTL cache.
type CacheRepository struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewCacheRepository creates a new in-memory cache repository.
func NewCacheRepository() outbound.CacheRepository {
	repo := &CacheRepository{
		data: make(map[string]cacheItem),
	}

	go repo.cleanup()

	return repo
}

// Get retrieves a value from the cache.
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mutex.RLock()
	item, exists := r.data[key]
	r.mutex.RUnlock()

	if !exists || time.Now().After(item.expiresAt) {
		return nil, ErrNotFound
	}

	return item.value, nil
}

// Set stores a value with a TTL.
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.data[key] = cacheItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a key.
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, key)
	return nil
}

// Exists reports whether a key is present and unexpired.
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, exists := r.data[key]
	if !exists {
		return false, nil
	}
	return time.Now().Before(item.expiresAt), nil
}

// cleanup evicts expired entries periodically.
func (r *CacheRepository) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		r.mutex.Lock()
		for key, item := range r.data {
			if now.After(item.expiresAt) {
				delete(r.data, key)
			}
		}
		r.mutex.Unlock()
	}
}
