// Package repository holds process-local stores that sit beside the ledger.
package repository

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type IdempotencyCacheEntry struct {
	Key          string
	RequestHash  string
	StatusCode   int
	ResponseBody []byte
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// IdempotencyRepository keeps replayable responses in memory. Entries vanish
// on restart, the same as the balances they protect.
type IdempotencyRepository struct {
	mu      sync.Mutex
	entries map[string]IdempotencyCacheEntry
	now     func() time.Time
}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{
		entries: make(map[string]IdempotencyCacheEntry),
		now:     time.Now,
	}
}

// Get returns nil when the key is unknown or expired.
func (r *IdempotencyRepository) Get(_ context.Context, key string) (*IdempotencyCacheEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok || !e.ExpiresAt.After(r.now()) {
		return nil, nil
	}
	return &e, nil
}

// Set stores entry unless a live entry already holds the key.
func (r *IdempotencyRepository) Set(_ context.Context, entry *IdempotencyCacheEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[entry.Key]; ok && e.ExpiresAt.After(r.now()) {
		return nil
	}
	stored := *entry
	stored.ResponseBody = append([]byte(nil), entry.ResponseBody...)
	r.entries[entry.Key] = stored
	return nil
}

func (r *IdempotencyRepository) CleanExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var n int64
	for k, e := range r.entries {
		if !e.ExpiresAt.After(now) {
			delete(r.entries, k)
			n++
		}
	}
	return n, nil
}

// RunJanitor drops expired entries every interval until ctx is cancelled.
func (r *IdempotencyRepository) RunJanitor(ctx context.Context, logger *slog.Logger, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, _ := r.CleanExpired(ctx)
			if n > 0 {
				logger.Debug("expired idempotency entries removed", "count", n)
			}
		}
	}
}
