package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/skycast/widget/internal/domain"
)

// LookupService serves lookups for the local backend and records them
type LookupService struct {
	fetcher Fetcher
	repo    LookupRepository
	now     func() time.Time

	wgBg sync.WaitGroup // tracks background saves for graceful shutdown
}

// NewLookupService creates a new lookup service
func NewLookupService(fetcher Fetcher, repo LookupRepository) *LookupService {
	return &LookupService{
		fetcher: fetcher,
		repo:    repo,
		now:     time.Now,
	}
}

// WaitBackground blocks until all background saves complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *LookupService) WaitBackground() {
	s.wgBg.Wait()
}

// Lookup fetches the weather for city and persists successful results asynchronously
func (s *LookupService) Lookup(ctx context.Context, city string) (domain.WeatherRecord, error) {
	record, err := s.fetcher.FetchWeather(ctx, city)
	if err != nil {
		return domain.WeatherRecord{}, err
	}

	entry := domain.LookupLog{Query: city, Record: record, FetchedAt: s.now()}
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SaveLookup(bgCtx, entry); err != nil {
			slog.Warn("failed to save lookup", "city", city, "error", err)
		}
	}()

	return record, nil
}

// History returns lookups from the last window, newest first
func (s *LookupService) History(ctx context.Context, window time.Duration) ([]domain.LookupLog, error) {
	to := s.now()
	return s.repo.RecentLookups(ctx, to.Add(-window), to)
}

// Health checks the lookup repository
func (s *LookupService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}
