package service

import (
	"context"
	"sync"

	"github.com/skycast/widget/internal/domain"
)

// stubFetcher returns canned results and counts calls
type stubFetcher struct {
	mu     sync.Mutex
	calls  []string
	record domain.WeatherRecord
	err    error
}

func (s *stubFetcher) FetchWeather(ctx context.Context, city string) (domain.WeatherRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, city)
	return s.record, s.err
}

func (s *stubFetcher) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func mustRecord(city string, temp float64) domain.WeatherRecord {
	humidity, wind := 50.0, 2.0
	r, err := domain.NewWeatherRecord(domain.RecordFields{
		City:        city,
		Temperature: &temp,
		Humidity:    &humidity,
		WindSpeed:   &wind,
	})
	if err != nil {
		panic(err)
	}
	return r
}
