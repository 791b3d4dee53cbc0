package presentation

import (
	"testing"

	types "github.com/projectsail/rainfall-backend/internal/domain"
)

func TestLabelShortHorizon(t *testing.T) {
	points := []types.ForecastPoint{
		{Date: "2021-10-10", Rainfall: 3},
		{Date: "2021-10-11", Rainfall: 5},
	}

	labeled := Label(points, HorizonShort)
	if len(labeled) != 2 {
		t.Fatalf("expected 2 labeled points, got %d", len(labeled))
	}
	if labeled[0].Label != "Sun" || labeled[1].Label != "Mon" {
		t.Fatalf("expected weekday labels Sun, Mon; got %s, %s", labeled[0].Label, labeled[1].Label)
	}
	if labeled[0].Date != "2021-10-10" || labeled[0].Rainfall != 3 {
		t.Fatalf("expected date and value preserved, got %+v", labeled[0])
	}
}

func TestLabelLongHorizon(t *testing.T) {
	points := []types.ForecastPoint{
		{Date: "2021-01-15", Rainfall: 40},
		{Date: "2021-10-01", Rainfall: 55},
	}

	labeled := Label(points, HorizonLong)
	if labeled[0].Label != "Jan" || labeled[1].Label != "Oct" {
		t.Fatalf("expected month labels Jan, Oct; got %s, %s", labeled[0].Label, labeled[1].Label)
	}
}

func TestLabelInvalidDateSentinel(t *testing.T) {
	points := []types.ForecastPoint{
		{Date: "2021-10-10", Rainfall: 1},
		{Date: "not-a-date", Rainfall: 2},
		{Date: "2021-13-45", Rainfall: 3},
	}

	labeled := Label(points, HorizonShort)
	if len(labeled) != 3 {
		t.Fatalf("expected all points kept, got %d", len(labeled))
	}
	if labeled[0].Label == InvalidDateLabel {
		t.Fatalf("expected valid date to parse, got %s", labeled[0].Label)
	}
	for _, lp := range labeled[1:] {
		if lp.Label != InvalidDateLabel {
			t.Fatalf("expected %s for %q, got %s", InvalidDateLabel, lp.Date, lp.Label)
		}
	}
	// Bad dates keep their payload.
	if labeled[1].Date != "not-a-date" || labeled[1].Rainfall != 2 {
		t.Fatalf("expected payload preserved, got %+v", labeled[1])
	}
}

func TestHorizonFor(t *testing.T) {
	if HorizonFor(types.SeriesTypeDaily) != HorizonShort {
		t.Fatal("expected daily series to use the short horizon")
	}
	if HorizonFor(types.SeriesTypeMonthly) != HorizonLong {
		t.Fatal("expected monthly series to use the long horizon")
	}
}
