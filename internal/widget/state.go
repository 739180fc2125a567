package widget

import "github.com/skycast/widget/internal/domain"

// State is what the widget currently shows. It is one of Idle, Loading, Success or Failure.
type State interface {
	isState()
}

// Idle is the state before the first search
type Idle struct{}

// Loading means a search for Query is in flight
type Loading struct {
	Query string
}

// Success holds the record from the latest completed search
type Success struct {
	Record domain.WeatherRecord
}

// Failure holds the classified error from the latest completed search
type Failure struct {
	Kind domain.FailureKind
	Err  error
}

func (Idle) isState() {}
func (Loading) isState() {}
func (Success) isState() {}
func (Failure) isState() {}
