package reports

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Compare returns the percentage change from previous to current,
// (current/previous - 1) * 100. A zero previous value yields zero rather
// than a division error, so first-period reports compare cleanly.
func Compare(current decimal.Decimal, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Div(previous).Sub(decimal.NewFromInt(1)).Mul(oneHundred)
}

// Reportable exposes a report's headline figures for period comparison.
type Reportable interface {
	Metrics() map[string]decimal.Decimal
}

// ReportWithComparison pairs a report with the same report over the
// preceding equal-length period and the per-metric percentage change.
type ReportWithComparison[T Reportable] struct {
	Current  T                          `json:"current"`
	Previous T                          `json:"previous"`
	Change   map[string]decimal.Decimal `json:"change"`
}

func WithComparison[T Reportable](current T, previous T) *ReportWithComparison[T] {
	currentMetrics := current.Metrics()
	previousMetrics := previous.Metrics()

	change := make(map[string]decimal.Decimal, len(currentMetrics))
	for name, value := range currentMetrics {
		change[name] = Compare(value, previousMetrics[name])
	}

	return &ReportWithComparison[T]{
		Current:  current,
		Previous: previous,
		Change:   change,
	}
}
