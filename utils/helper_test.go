package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPercent_ZeroDenominatorYieldsZero(t *testing.T) {
	got := Percent(decimal.NewFromInt(50), decimal.Zero)
	if !got.IsZero() {
		t.Fatalf("Percent(50, 0) expected 0, got %s", got)
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		part     string
		whole    string
		expected string
	}{
		{"150", "250", "60"},
		{"1", "3", "33.33333333333333"},
		{"-50", "200", "-25"},
		{"0", "100", "0"},
	}
	for _, tc := range cases {
		part, _ := decimal.NewFromString(tc.part)
		whole, _ := decimal.NewFromString(tc.whole)
		expected, _ := decimal.NewFromString(tc.expected)
		got := Percent(part, whole)
		if !got.Equal(expected) {
			t.Fatalf("Percent(%s, %s) expected %s, got %s", tc.part, tc.whole, tc.expected, got)
		}
	}
}

func TestDiffInDays(t *testing.T) {
	cases := []struct {
		from     string
		until    string
		expected int
	}{
		{"2026-01-01", "2026-01-01", 0},
		{"2026-01-01", "2026-01-31", 30},
		{"2026-01-31", "2026-01-01", -30},
		{"2026-02-27", "2026-03-01", 2},
	}
	for _, tc := range cases {
		from, _ := time.Parse("2006-01-02", tc.from)
		until, _ := time.Parse("2006-01-02", tc.until)
		if got := DiffInDays(from, until); got != tc.expected {
			t.Fatalf("DiffInDays(%s, %s) expected %d, got %d", tc.from, tc.until, tc.expected, got)
		}
	}
}

func TestDiffInDays_IgnoresClockTime(t *testing.T) {
	from := time.Date(2026, 1, 1, 23, 0, 0, 0, time.UTC)
	until := time.Date(2026, 1, 2, 1, 0, 0, 0, time.UTC)
	if got := DiffInDays(from, until); got != 1 {
		t.Fatalf("expected 1 whole day, got %d", got)
	}
}

func TestPreviousPeriod(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	prevFrom, prevTo := PreviousPeriod(from, to)
	if !prevFrom.Equal(time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected previous from: %s", prevFrom)
	}
	if !prevTo.Equal(time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("unexpected previous to: %s", prevTo)
	}
	// Same window length on both sides.
	if DiffInDays(prevFrom, prevTo) != DiffInDays(from, to) {
		t.Fatalf("previous period length differs from current")
	}
}

func TestFinancialYearStart(t *testing.T) {
	cases := []struct {
		date     string
		expected string
	}{
		{"2026-06-30", "2025-07-01"},
		{"2026-07-01", "2026-07-01"},
		{"2026-12-31", "2026-07-01"},
		{"2026-01-15", "2025-07-01"},
	}
	for _, tc := range cases {
		date, _ := time.Parse("2006-01-02", tc.date)
		expected, _ := time.Parse("2006-01-02", tc.expected)
		if got := FinancialYearStart(date); !got.Equal(expected) {
			t.Fatalf("FinancialYearStart(%s) expected %s, got %s", tc.date, tc.expected, got)
		}
	}
}

func TestParseDecimal_EmptyIsZero(t *testing.T) {
	got, err := ParseDecimal("")
	if err != nil {
		t.Fatalf("ParseDecimal(\"\") error: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("ParseDecimal(\"\") expected 0, got %s", got)
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]int{3, 1, 3, 2, 1})
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("UniqueSlice expected [3 1 2], got %v", got)
	}
}

func TestExecTemplate_OptionalPredicate(t *testing.T) {
	tmpl := `SELECT 1{{- if .withTags }} AND tag_id IN @tagIds{{- end }}`

	with, err := ExecTemplate(tmpl, map[string]interface{}{"withTags": true})
	if err != nil {
		t.Fatalf("ExecTemplate error: %v", err)
	}
	if with != "SELECT 1 AND tag_id IN @tagIds" {
		t.Fatalf("unexpected render: %q", with)
	}

	without, err := ExecTemplate(tmpl, map[string]interface{}{"withTags": false})
	if err != nil {
		t.Fatalf("ExecTemplate error: %v", err)
	}
	if without != "SELECT 1" {
		t.Fatalf("unexpected render: %q", without)
	}
}
