package domain

import (
	"context"
	"time"
)

// LookupLog is one successful lookup served by the backend
type LookupLog struct {
	Query     string        `json:"query"`
	Record    WeatherRecord `json:"record"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// LookupRepository defines persistence for lookup history
type LookupRepository interface {
	// SaveLookup persists one lookup
	SaveLookup(ctx context.Context, entry LookupLog) error

	// RecentLookups returns lookups between from and to, newest first
	RecentLookups(ctx context.Context, from, to time.Time) ([]LookupLog, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}
