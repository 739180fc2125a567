package postgres

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/skycast/widget/internal/domain"
)

// MemoryRepository implements domain.LookupRepository when no database is configured
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []domain.LookupLog
	limit   int
}

// NewMemoryRepository creates a repository keeping at most limit entries
func NewMemoryRepository(limit int) *MemoryRepository {
	if limit <= 0 {
		limit = 100
	}
	return &MemoryRepository{limit: limit}
}

// SaveLookup appends entry, evicting the oldest past the limit
func (r *MemoryRepository) SaveLookup(ctx context.Context, entry domain.LookupLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	if len(r.entries) > r.limit {
		r.entries = r.entries[len(r.entries)-r.limit:]
	}
	return nil
}

// RecentLookups returns entries with FetchedAt in [from, to], newest first
func (r *MemoryRepository) RecentLookups(ctx context.Context, from, to time.Time) ([]domain.LookupLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.LookupLog
	for _, e := range r.entries {
		if !e.FetchedAt.Before(from) && !e.FetchedAt.After(to) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FetchedAt.After(out[j].FetchedAt) })
	return out, nil
}

// Health always returns nil in memory mode
func (r *MemoryRepository) Health(ctx context.Context) error {
	return nil
}
