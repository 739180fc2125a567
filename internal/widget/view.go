package widget

import (
	"fmt"

	"github.com/skycast/widget/internal/domain"
	"github.com/skycast/widget/pkg/utils"
)

// View is the display text for one state
type View struct {
	Status      string
	City        string
	Temperature string
	Humidity    string
	Wind        string
	Condition   string
	IconURL     string
	Message     string
}

// Render formats state for display in unit
func Render(state State, unit domain.Unit) View {
	switch s := state.(type) {
	case Loading:
		return View{Status: "loading", City: s.Query, Message: "Loading..."}
	case Success:
		r := s.Record
		v := View{
			Status:      "success",
			City:        r.City(),
			Temperature: fmt.Sprintf("%.1f%s", utils.RoundTo(unit.Convert(r.TemperatureCelsius()), 1), unit.Symbol()),
			Humidity:    fmt.Sprintf("%.0f%%", r.HumidityPercent()),
			Wind:        fmt.Sprintf("%.1f m/s", r.WindSpeed()),
		}
		if cond, ok := r.Condition(); ok {
			v.Condition = cond
		}
		if u, ok := r.IconURL(); ok {
			v.IconURL = u
		}
		return v
	case Failure:
		return View{Status: "error", Message: s.Kind.Message()}
	default:
		return View{Status: "idle", Message: "Enter a city name"}
	}
}
