package reports

import (
	"testing"
	"time"
)

func TestChartSeries_KeepsInsertionOrder(t *testing.T) {
	series := newChartSeries()
	series.Add(day("2026-03-10"), d("100"))
	series.Add(day("2026-03-01"), d("50"))
	series.Add(day("2026-03-10"), d("25"))

	points := series.Points()
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	// First-seen day stays first even though it is chronologically later.
	if points[0].X != "2026-03-10" || !points[0].Y.Equal(d("125")) {
		t.Fatalf("unexpected first point: %s=%s", points[0].X, points[0].Y)
	}
	if points[1].X != "2026-03-01" || !points[1].Y.Equal(d("50")) {
		t.Fatalf("unexpected second point: %s=%s", points[1].X, points[1].Y)
	}
}

func TestChartSeries_GroupsByCalendarDay(t *testing.T) {
	series := newChartSeries()
	morning := day("2026-03-10").Add(9 * time.Hour)
	evening := day("2026-03-10").Add(21 * time.Hour)
	series.Add(morning, d("10"))
	series.Add(evening, d("15"))

	points := series.Points()
	if len(points) != 1 {
		t.Fatalf("expected a single grouped point, got %d", len(points))
	}
	if !points[0].Y.Equal(d("25")) {
		t.Fatalf("expected 25, got %s", points[0].Y)
	}
}
