package presentation

import (
	"time"

	types "github.com/projectsail/rainfall-backend/internal/domain"
)

// Horizon selects which calendar label a point gets.
type Horizon string

const (
	// HorizonShort labels points with the abbreviated weekday name.
	HorizonShort Horizon = "short"
	// HorizonLong labels points with the abbreviated month name.
	HorizonLong Horizon = "long"
)

// InvalidDateLabel marks a point whose date string did not parse.
const InvalidDateLabel = "InvalidDate"

const dateLayout = "2006-01-02"

type LabeledPoint struct {
	Label    string  `json:"label"`
	Date     string  `json:"date"`
	Rainfall float64 `json:"rainfall"`
}

// HorizonFor maps a series type to its presentation horizon.
func HorizonFor(seriesType string) Horizon {
	if seriesType == types.SeriesTypeMonthly {
		return HorizonLong
	}
	return HorizonShort
}

// Label converts stored points into calendar-labeled presentation records.
// It is pure and total: a point whose date does not parse keeps its date and
// value and gets the InvalidDate sentinel label instead of failing the
// whole series. Output has the same length and order as the input.
func Label(points []types.ForecastPoint, horizon Horizon) []LabeledPoint {
	labeled := make([]LabeledPoint, 0, len(points))
	for _, p := range points {
		labeled = append(labeled, LabeledPoint{
			Label:    labelFor(p.Date, horizon),
			Date:     p.Date,
			Rainfall: p.Rainfall,
		})
	}
	return labeled
}

func labelFor(date string, horizon Horizon) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return InvalidDateLabel
	}
	if horizon == HorizonLong {
		return t.Format("Jan")
	}
	return t.Format("Mon")
}
