package domain

import (
	"fmt"
	"strings"
)

// Unit is a temperature display unit
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

// ParseUnit accepts "c", "celsius", "f" or "fahrenheit" in any case
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius", "metric":
		return Celsius, nil
	case "f", "fahrenheit", "imperial":
		return Fahrenheit, nil
	default:
		return Celsius, fmt.Errorf("unknown unit %q", s)
	}
}

// Convert turns a Celsius value into this unit
func (u Unit) Convert(celsius float64) float64 {
	if u == Fahrenheit {
		return celsius*9/5 + 32
	}
	return celsius
}

// Toggle returns the other unit
func (u Unit) Toggle() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

// Symbol returns the display suffix, e.g. "°C"
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

func (u Unit) String() string {
	if u == Fahrenheit {
		return "fahrenheit"
	}
	return "celsius"
}
