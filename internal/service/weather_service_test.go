package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast/widget/internal/domain"
)

const londonPayload = `{
	"coord": {"lon": -0.13, "lat": 51.51},
	"weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
	"main": {"temp": 20, "feels_like": 19.4, "humidity": 65, "pressure": 1012},
	"wind": {"speed": 3.6, "deg": 240},
	"name": "London",
	"cod": 200
}`

// fakeServer is a canned upstream that records requests
type fakeServer struct {
	*httptest.Server

	mu      sync.Mutex
	calls   int
	lastURL *url.URL
}

func (f *fakeServer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeServer) LastURL() *url.URL {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastURL
}

// newProvider starts a fake upstream answering every request with status and body
func newProvider(t *testing.T, status int, body string) *fakeServer {
	t.Helper()
	f := &fakeServer{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls++
		u := *r.URL
		f.lastURL = &u
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)
	return f
}

func TestWeatherService_FetchWeather(t *testing.T) {
	srv := newProvider(t, http.StatusOK, londonPayload)
	svc := NewWeatherService(srv.URL, "secret", time.Second)

	record, err := svc.FetchWeather(context.Background(), "São Paulo")
	require.NoError(t, err)

	assert.Equal(t, 1, srv.Calls())
	assert.Equal(t, "/data/2.5/weather", srv.LastURL().Path)
	assert.Equal(t, "São Paulo", srv.LastURL().Query().Get("q"))
	assert.Equal(t, "secret", srv.LastURL().Query().Get("appid"))
	assert.Equal(t, "metric", srv.LastURL().Query().Get("units"))
	assert.Contains(t, srv.LastURL().RawQuery, "q=S%C3%A3o%20Paulo")

	assert.Equal(t, "London", record.City())
	assert.Equal(t, 20.0, record.TemperatureCelsius())
	assert.Equal(t, 65.0, record.HumidityPercent())
	assert.Equal(t, 3.6, record.WindSpeed())
	cond, ok := record.Condition()
	assert.True(t, ok)
	assert.Equal(t, "light rain", cond)
	icon, ok := record.IconID()
	assert.True(t, ok)
	assert.Equal(t, "10d", icon)
}

func TestWeatherService_MissingWeatherList(t *testing.T) {
	srv := newProvider(t, http.StatusOK,
		`{"main":{"temp":-3.5,"humidity":90},"wind":{"speed":1.2},"name":"Oslo"}`)
	svc := NewWeatherService(srv.URL, "secret", time.Second)

	record, err := svc.FetchWeather(context.Background(), "Oslo")
	require.NoError(t, err)

	assert.Equal(t, -3.5, record.TemperatureCelsius())
	_, ok := record.Condition()
	assert.False(t, ok)
	_, ok = record.IconID()
	assert.False(t, ok)
}

func TestWeatherService_MissingRequiredField(t *testing.T) {
	srv := newProvider(t, http.StatusOK, `{"main":{"humidity":90},"wind":{"speed":1.2},"name":"Oslo"}`)
	svc := NewWeatherService(srv.URL, "secret", time.Second)

	record, err := svc.FetchWeather(context.Background(), "Oslo")
	require.Error(t, err)
	assert.True(t, record.IsZero())

	var remote *domain.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusOK, remote.StatusCode)
	assert.True(t, errors.Is(err, domain.ErrIncompleteRecord))
}

func TestWeatherService_NonSuccessStatus(t *testing.T) {
	srv := newProvider(t, http.StatusNotFound, `{"cod":"404","message":"city not found"}`)
	svc := NewWeatherService(srv.URL, "secret", time.Second)

	record, err := svc.FetchWeather(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.True(t, record.IsZero())

	var remote *domain.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusNotFound, remote.StatusCode)
	assert.Contains(t, remote.Body, "city not found")
	assert.Equal(t, domain.FailureServer, domain.Classify(err))
}

func TestWeatherService_CodNotFoundInBody(t *testing.T) {
	srv := newProvider(t, http.StatusOK, `{"cod":"404","message":"city not found"}`)
	svc := NewWeatherService(srv.URL, "secret", time.Second)

	_, err := svc.FetchWeather(context.Background(), "Atlantis")

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Atlantis", nf.City)
}

func TestWeatherService_InvalidJSON(t *testing.T) {
	srv := newProvider(t, http.StatusOK, `<html>oops</html>`)
	svc := NewWeatherService(srv.URL, "secret", time.Second)

	_, err := svc.FetchWeather(context.Background(), "Oslo")

	var remote *domain.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "<html>oops</html>", remote.Body)
}

func TestWeatherService_MissingAPIKey(t *testing.T) {
	srv := newProvider(t, http.StatusOK, londonPayload)
	svc := NewWeatherService(srv.URL, "", time.Second)

	_, err := svc.FetchWeather(context.Background(), "London")

	var cfgErr *domain.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, 0, srv.Calls())
}

func TestWeatherService_TransportFailure(t *testing.T) {
	srv := newProvider(t, http.StatusOK, londonPayload)
	addr := srv.URL
	srv.Close()

	svc := NewWeatherService(addr, "secret", time.Second)
	_, err := svc.FetchWeather(context.Background(), "London")
	require.Error(t, err)
	assert.Equal(t, domain.FailureServer, domain.Classify(err))
}
