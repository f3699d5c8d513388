package utils

import (
	"bytes"
	"text/template"
	"time"

	"github.com/shopspring/decimal"
)

// FinancialYearStartMonth is the first month of the financial year.
// Jobs are billed on the Australian financial year (1 July).
const FinancialYearStartMonth = time.July

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

// remove duplicate values of a slice
func UniqueSlice[T comparable](slice []T) []T {
	keys := make(map[T]bool)
	list := []T{}
	for _, entry := range slice {
		if _, ok := keys[entry]; !ok {
			keys[entry] = true
			list = append(list, entry)
		}
	}
	return list
}

// ExecTemplate renders a SQL text template with the given data, used for
// optional predicates ({{- if .tagIds }} ... {{- end}}).
func ExecTemplate(tString string, data map[string]interface{}) (string, error) {
	t, err := template.New("sql").Parse(tString)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DereferencePtr dereferences a pointer or returns the (optional) default.
func DereferencePtr[T any](ptr *T, defaults ...T) T {
	if ptr != nil {
		return *ptr
	}
	if len(defaults) > 0 {
		return defaults[0]
	}
	var zero T
	return zero
}

func NilIfEmpty[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

// DiffInDays returns the number of whole days from `from` until `until`
// (negative when `until` is before `from`).
func DiffInDays(from time.Time, until time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	untilDay := time.Date(until.Year(), until.Month(), until.Day(), 0, 0, 0, 0, time.UTC)
	return int(untilDay.Sub(fromDay).Hours() / 24)
}

// FinancialYearStart returns the start of the financial year containing t.
func FinancialYearStart(t time.Time) time.Time {
	year := t.Year()
	if t.Month() < FinancialYearStartMonth {
		year--
	}
	return time.Date(year, FinancialYearStartMonth, 1, 0, 0, 0, 0, t.Location())
}

// PreviousPeriod derives the window of equal length immediately preceding
// [from, to]: both ends shift back by the window length in whole days,
// inclusive of both ends, keeping their clock times.
func PreviousPeriod(from time.Time, to time.Time) (time.Time, time.Time) {
	days := DiffInDays(from, to) + 1
	return from.AddDate(0, 0, -days), to.AddDate(0, 0, -days)
}

// Percent returns part/whole*100, or zero when the denominator is zero.
// Exact decimal zero check, never a float tolerance.
func Percent(part decimal.Decimal, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}

func ConvertToLocalTime(utcTime time.Time, timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return utcTime
	}
	return utcTime.In(loc)
}

func ConvertToDate(t time.Time, timezone string) (time.Time, error) {
	if timezone == "" {
		timezone = "Australia/Brisbane"
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	local := t.In(location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location), nil
}

func ParseDecimal(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}
