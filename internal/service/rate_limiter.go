package service

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/skycast/widget/internal/domain"
)

// RateLimited wraps a Fetcher so calls wait for a token before the request is made.
// It never drops or repeats a call.
type RateLimited struct {
	fetcher Fetcher
	limiter *rate.Limiter
}

// NewRateLimited creates a rate limited fetcher.
// rps may be fractional; burst below 1 is treated as 1.
func NewRateLimited(fetcher Fetcher, rps float64, burst int) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// FetchWeather waits for the limiter, then forwards to the wrapped fetcher
func (r *RateLimited) FetchWeather(ctx context.Context, city string) (domain.WeatherRecord, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.fetcher.FetchWeather(ctx, city)
}

var _ Fetcher = (*RateLimited)(nil)
