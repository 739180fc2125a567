package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-json"
)

// IconURLFormat builds the OpenWeatherMap icon image URL for an icon id
const IconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"

// ErrIncompleteRecord is returned when a payload lacks a required field
var ErrIncompleteRecord = errors.New("incomplete weather record")

// RecordFields carries raw, possibly missing values used to build a WeatherRecord.
// Nil means the source did not provide the field.
type RecordFields struct {
	City        string   `json:"city"`
	Temperature *float64 `json:"temp"`
	Humidity    *float64 `json:"humidity"`
	WindSpeed   *float64 `json:"wind"`
	Condition   *string  `json:"condition"`
	Icon        *string  `json:"icon"`
}

// WeatherRecord is a normalized weather snapshot for one city.
// It can only be built through NewWeatherRecord and has no setters.
type WeatherRecord struct {
	city        string
	temperature float64
	humidity    float64
	windSpeed   float64
	condition   string
	hasCond     bool
	icon        string
	hasIcon     bool
}

// NewWeatherRecord validates f and returns a fully populated record
func NewWeatherRecord(f RecordFields) (WeatherRecord, error) {
	if f.City == "" {
		return WeatherRecord{}, fmt.Errorf("%w: missing city", ErrIncompleteRecord)
	}

	numbers := []struct {
		name string
		v    *float64
	}{
		{"temp", f.Temperature},
		{"humidity", f.Humidity},
		{"wind", f.WindSpeed},
	}
	for _, n := range numbers {
		if n.v == nil {
			return WeatherRecord{}, fmt.Errorf("%w: missing %s", ErrIncompleteRecord, n.name)
		}
		if math.IsNaN(*n.v) || math.IsInf(*n.v, 0) {
			return WeatherRecord{}, fmt.Errorf("%w: %s is not finite", ErrIncompleteRecord, n.name)
		}
	}

	r := WeatherRecord{
		city:        f.City,
		temperature: *f.Temperature,
		humidity:    *f.Humidity,
		windSpeed:   *f.WindSpeed,
	}
	if f.Condition != nil {
		r.condition, r.hasCond = *f.Condition, true
	}
	if f.Icon != nil {
		r.icon, r.hasIcon = *f.Icon, true
	}
	return r, nil
}

// City returns the resolved display name
func (r WeatherRecord) City() string { return r.city }

// TemperatureCelsius returns the temperature in Celsius
func (r WeatherRecord) TemperatureCelsius() float64 { return r.temperature }

// HumidityPercent returns relative humidity
func (r WeatherRecord) HumidityPercent() float64 { return r.humidity }

// WindSpeed returns wind speed in meters per second
func (r WeatherRecord) WindSpeed() float64 { return r.windSpeed }

// Condition returns the condition label, if the source provided one
func (r WeatherRecord) Condition() (string, bool) { return r.condition, r.hasCond }

// IconID returns the provider icon id, if the source provided one
func (r WeatherRecord) IconID() (string, bool) { return r.icon, r.hasIcon }

// IconURL returns the icon image URL, if an icon id is present
func (r WeatherRecord) IconURL() (string, bool) {
	if !r.hasIcon || r.icon == "" {
		return "", false
	}
	return fmt.Sprintf(IconURLFormat, r.icon), true
}

// IsZero reports whether r was never constructed
func (r WeatherRecord) IsZero() bool { return r.city == "" }

// Fields returns the record as RecordFields
func (r WeatherRecord) Fields() RecordFields {
	temp, humidity, wind := r.temperature, r.humidity, r.windSpeed
	f := RecordFields{
		City:        r.city,
		Temperature: &temp,
		Humidity:    &humidity,
		WindSpeed:   &wind,
	}
	if r.hasCond {
		cond := r.condition
		f.Condition = &cond
	}
	if r.hasIcon {
		icon := r.icon
		f.Icon = &icon
	}
	return f
}

// MarshalJSON encodes the record in the local backend shape
func (r WeatherRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

// UnmarshalJSON decodes the local backend shape, rejecting partial payloads
func (r *WeatherRecord) UnmarshalJSON(data []byte) error {
	var f RecordFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	rec, err := NewWeatherRecord(f)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}
