package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/skycast/widget/internal/config"
	"github.com/skycast/widget/internal/domain"
	"github.com/skycast/widget/pkg/utils"
)

// LookupRepository is re-exported from domain for convenience
type LookupRepository = domain.LookupRepository

// Fetcher turns a city name into a weather record with exactly one outbound request
type Fetcher interface {
	FetchWeather(ctx context.Context, city string) (domain.WeatherRecord, error)
}

const (
	maxBodyBytes    = 1 << 20
	bodySnippetSize = 512
)

// NewFetcher selects the data source for cfg.Mode. It is called once at startup.
func NewFetcher(cfg config.Fetch) (Fetcher, error) {
	switch cfg.Mode {
	case config.ModeLocal:
		return NewLocalBackend(cfg.LocalBackendURL, cfg.Timeout), nil
	case config.ModeDirect:
		return NewWeatherService(cfg.ProviderBaseURL, cfg.APIKey, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("service: unknown weather mode %q", cfg.Mode)
	}
}

// queryEscape percent-encodes s for a query string, spaces as %20.
// A literal '+' is already escaped to %2B, so only spaces become '+'.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func readBody(r io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, maxBodyBytes))
}

func snippet(body []byte) string {
	return utils.Truncate(strings.TrimSpace(string(body)), bodySnippetSize)
}

func defaultTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 10 * time.Second
	}
	return d
}
