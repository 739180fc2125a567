package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/skycast/widget/internal/domain"
)

// LocalBackend handles communication with the development backend,
// which already serves records in the normalized shape
type LocalBackend struct {
	baseURL    string
	httpClient *http.Client
}

// NewLocalBackend creates a new local backend client
func NewLocalBackend(baseURL string, timeout time.Duration) *LocalBackend {
	return &LocalBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout(timeout),
		},
	}
}

// errorMarker is the not-found envelope, e.g. {"error": "city not found"}
type errorMarker struct {
	Error any `json:"error"`
}

func (m errorMarker) set() bool {
	switch v := m.Error.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	default:
		return true
	}
}

// FetchWeather calls GET /api/weather?city= on the local backend
func (b *LocalBackend) FetchWeather(ctx context.Context, city string) (domain.WeatherRecord, error) {
	endpoint := fmt.Sprintf("%s/api/weather?city=%s", b.baseURL, queryEscape(city))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("local: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("local: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp.Body)
	if err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("local: failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.WeatherRecord{}, &domain.RemoteError{StatusCode: resp.StatusCode, Body: snippet(body)}
	}

	var marker errorMarker
	if err := json.Unmarshal(body, &marker); err != nil {
		return domain.WeatherRecord{}, &domain.RemoteError{
			StatusCode: resp.StatusCode,
			Body:       snippet(body),
			Err:        fmt.Errorf("local: failed to decode response: %w", err),
		}
	}
	if marker.set() {
		return domain.WeatherRecord{}, &domain.NotFoundError{City: city}
	}

	var fields domain.RecordFields
	if err := json.Unmarshal(body, &fields); err != nil {
		return domain.WeatherRecord{}, &domain.RemoteError{
			StatusCode: resp.StatusCode,
			Body:       snippet(body),
			Err:        fmt.Errorf("local: failed to decode response: %w", err),
		}
	}
	record, err := domain.NewWeatherRecord(fields)
	if err != nil {
		return domain.WeatherRecord{}, &domain.RemoteError{StatusCode: resp.StatusCode, Body: snippet(body), Err: err}
	}
	return record, nil
}

// Health checks local backend connectivity
func (b *LocalBackend) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("local: failed to create health request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("local: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("local: health check returned status %d", resp.StatusCode)
	}

	return nil
}
