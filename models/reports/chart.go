package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChartPoint is one dated value in a report time series.
type ChartPoint struct {
	X string          `json:"x"`
	Y decimal.Decimal `json:"y"`
}

const chartDateLayout = "2006-01-02"

// chartSeries accumulates amounts per calendar day, keeping the order in
// which days first appear. Callers feed documents in fetch order, so the
// series follows document order rather than being re-sorted.
type chartSeries struct {
	order  []string
	totals map[string]decimal.Decimal
}

func newChartSeries() *chartSeries {
	return &chartSeries{totals: map[string]decimal.Decimal{}}
}

func (s *chartSeries) Add(date time.Time, amount decimal.Decimal) {
	key := date.Format(chartDateLayout)
	if _, seen := s.totals[key]; !seen {
		s.order = append(s.order, key)
	}
	s.totals[key] = s.totals[key].Add(amount)
}

func (s *chartSeries) Points() []ChartPoint {
	points := make([]ChartPoint, 0, len(s.order))
	for _, key := range s.order {
		points = append(points, ChartPoint{X: key, Y: s.totals[key]})
	}
	return points
}
