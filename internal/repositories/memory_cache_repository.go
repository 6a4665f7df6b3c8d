package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"asset-tracker/pkg/utils"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCacheRepository - кеш в памяти процесса, время берётся из переданных часов.
type MemoryCacheRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	clock   utils.Clock
}

func NewMemoryCacheRepository(clock utils.Clock) CacheRepositoryInterface {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &MemoryCacheRepository{entries: make(map[string]memoryEntry), clock: clock}
}

func (r *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		return "", ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && !r.clock.Now().Before(entry.expiresAt) {
		delete(r.entries, key)
		return "", ErrCacheMiss
	}
	return entry.value, nil
}

func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}

	entry := memoryEntry{value: s}
	if expiration > 0 {
		entry.expiresAt = r.clock.Now().Add(expiration)
	}

	r.mu.Lock()
	r.entries[key] = entry
	r.mu.Unlock()
	return nil
}

func (r *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.entries, k)
	}
	return nil
}
