package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/skycast/widget/internal/config"
	"github.com/skycast/widget/internal/domain"
)

// WeatherService calls OpenWeatherMap directly
type WeatherService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewWeatherService creates a new direct provider client
func NewWeatherService(baseURL, apiKey string, timeout time.Duration) *WeatherService {
	return &WeatherService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout(timeout),
		},
	}
}

// OpenWeatherResponse represents the OpenWeatherMap current weather response.
// Pointers distinguish missing fields from zero values.
type OpenWeatherResponse struct {
	Cod  json.RawMessage `json:"cod"`
	Name string          `json:"name"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Message string `json:"message"`
}

// FetchWeather fetches current weather for city in metric units
func (s *WeatherService) FetchWeather(ctx context.Context, city string) (domain.WeatherRecord, error) {
	if s.apiKey == "" {
		return domain.WeatherRecord{}, &domain.ConfigurationError{Missing: config.APIKeyVars}
	}

	endpoint := fmt.Sprintf("%s/data/2.5/weather?q=%s&appid=%s&units=metric",
		s.baseURL, queryEscape(city), queryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("weather: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("weather: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp.Body)
	if err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("weather: failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.WeatherRecord{}, &domain.RemoteError{StatusCode: resp.StatusCode, Body: snippet(body)}
	}

	var owResp OpenWeatherResponse
	if err := json.Unmarshal(body, &owResp); err != nil {
		return domain.WeatherRecord{}, &domain.RemoteError{
			StatusCode: resp.StatusCode,
			Body:       snippet(body),
			Err:        fmt.Errorf("weather: failed to decode response: %w", err),
		}
	}

	if codIs(owResp.Cod, http.StatusNotFound) {
		return domain.WeatherRecord{}, &domain.NotFoundError{City: city}
	}

	record, err := domain.NewWeatherRecord(owResp.fields())
	if err != nil {
		return domain.WeatherRecord{}, &domain.RemoteError{StatusCode: resp.StatusCode, Body: snippet(body), Err: err}
	}
	return record, nil
}

// fields remaps the provider payload; absent nested fields stay nil
func (r OpenWeatherResponse) fields() domain.RecordFields {
	f := domain.RecordFields{City: r.Name}
	if r.Main != nil {
		f.Temperature = r.Main.Temp
		f.Humidity = r.Main.Humidity
	}
	if r.Wind != nil {
		f.WindSpeed = r.Wind.Speed
	}
	if len(r.Weather) > 0 {
		f.Condition = r.Weather[0].Description
		f.Icon = r.Weather[0].Icon
	}
	return f
}

// codIs reports whether the provider "cod" field, a number or a quoted number, equals code
func codIs(raw json.RawMessage, code int) bool {
	v := bytes.Trim(bytes.TrimSpace(raw), `"`)
	return len(v) > 0 && string(v) == fmt.Sprint(code)
}
