package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast/widget/internal/config"
	"github.com/skycast/widget/internal/domain"
)

func TestLocalBackend_PassThrough(t *testing.T) {
	srv := newProvider(t, http.StatusOK,
		`{"city":"Paris","temp":17.2,"humidity":55,"wind":2.4,"condition":"clear sky","icon":"01d"}`)
	lb := NewLocalBackend(srv.URL, time.Second)

	record, err := lb.FetchWeather(context.Background(), "Paris & Co")
	require.NoError(t, err)

	assert.Equal(t, 1, srv.Calls())
	assert.Equal(t, "/api/weather", srv.LastURL().Path)
	assert.Equal(t, "Paris & Co", srv.LastURL().Query().Get("city"))
	assert.Equal(t, "city=Paris%20%26%20Co", srv.LastURL().RawQuery)

	assert.Equal(t, "Paris", record.City())
	assert.Equal(t, 17.2, record.TemperatureCelsius())
	icon, ok := record.IconID()
	assert.True(t, ok)
	assert.Equal(t, "01d", icon)
}

func TestLocalBackend_ErrorMarker(t *testing.T) {
	type test struct {
		body     string
		notFound bool
	}
	tests := map[string]test{
		"string marker": {body: `{"error":"city not found"}`, notFound: true},
		"bool marker":   {body: `{"error":true}`, notFound: true},
		"false marker": {
			body:     `{"error":false,"city":"Paris","temp":1,"humidity":2,"wind":3}`,
			notFound: false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			srv := newProvider(t, http.StatusOK, tc.body)
			lb := NewLocalBackend(srv.URL, time.Second)

			_, err := lb.FetchWeather(context.Background(), "Paris")
			var nf *domain.NotFoundError
			assert.Equal(t, tc.notFound, errors.As(err, &nf))
			if !tc.notFound {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocalBackend_NonSuccessStatus(t *testing.T) {
	srv := newProvider(t, http.StatusInternalServerError, `{"error":true,"message":"boom"}`)
	lb := NewLocalBackend(srv.URL, time.Second)

	record, err := lb.FetchWeather(context.Background(), "Paris")
	assert.True(t, record.IsZero())

	var remote *domain.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusInternalServerError, remote.StatusCode)
}

func TestLocalBackend_PartialRecord(t *testing.T) {
	srv := newProvider(t, http.StatusOK, `{"city":"Paris","humidity":55}`)
	lb := NewLocalBackend(srv.URL, time.Second)

	record, err := lb.FetchWeather(context.Background(), "Paris")
	assert.True(t, record.IsZero())
	assert.True(t, errors.Is(err, domain.ErrIncompleteRecord))
}

func TestLocalBackend_Health(t *testing.T) {
	srv := newProvider(t, http.StatusOK, `{"status":"ok"}`)
	assert.NoError(t, NewLocalBackend(srv.URL, time.Second).Health(context.Background()))

	down := newProvider(t, http.StatusServiceUnavailable, ``)
	assert.Error(t, NewLocalBackend(down.URL, time.Second).Health(context.Background()))
}

func TestNewFetcher(t *testing.T) {
	f, err := NewFetcher(config.Fetch{Mode: config.ModeLocal, LocalBackendURL: "http://localhost:8000"})
	require.NoError(t, err)
	assert.IsType(t, &LocalBackend{}, f)

	f, err = NewFetcher(config.Fetch{Mode: config.ModeDirect, ProviderBaseURL: "https://api.openweathermap.org"})
	require.NoError(t, err)
	assert.IsType(t, &WeatherService{}, f)

	_, err = NewFetcher(config.Fetch{Mode: "hostname"})
	assert.Error(t, err)
}
