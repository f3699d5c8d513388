package reports

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		current  string
		previous string
		expected string
	}{
		{"150", "100", "50"},
		{"50", "100", "-50"},
		{"100", "100", "0"},
		{"0", "100", "-100"},
	}
	for _, tc := range cases {
		got := Compare(d(tc.current), d(tc.previous))
		if !got.Equal(d(tc.expected)) {
			t.Fatalf("Compare(%s, %s) expected %s%%, got %s", tc.current, tc.previous, tc.expected, got)
		}
	}
}

func TestCompare_ZeroPreviousYieldsZero(t *testing.T) {
	got := Compare(d("250"), decimal.Zero)
	if !got.IsZero() {
		t.Fatalf("Compare against zero previous expected 0, got %s", got)
	}
}

type stubReport struct {
	metrics map[string]decimal.Decimal
}

func (s *stubReport) Metrics() map[string]decimal.Decimal { return s.metrics }

func TestWithComparison_ChangePerMetric(t *testing.T) {
	current := &stubReport{metrics: map[string]decimal.Decimal{
		"total":        d("150"),
		"gross_profit": d("60"),
	}}
	previous := &stubReport{metrics: map[string]decimal.Decimal{
		"total":        d("100"),
		"gross_profit": d("0"),
	}}

	result := WithComparison(current, previous)
	if !result.Change["total"].Equal(d("50")) {
		t.Fatalf("total change expected 50, got %s", result.Change["total"])
	}
	// Zero previous metric compares to zero change, not an error.
	if !result.Change["gross_profit"].IsZero() {
		t.Fatalf("gross_profit change expected 0, got %s", result.Change["gross_profit"])
	}
}
