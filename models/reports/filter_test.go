package reports

import (
	"errors"
	"testing"
	"time"

	"github.com/dimitrizarkua/jobs_backend/models"
)

func dateStringPtr(s string) *models.DateString {
	v := models.DateString(day(s))
	return &v
}

func TestToFilter_RejectsAmbiguousInput(t *testing.T) {
	input := ReportFilterInput{
		JobIds:     []int{1, 2},
		LocationId: 5,
	}
	if _, err := input.ToFilter(""); !errors.Is(err, ErrorAmbiguousFilter) {
		t.Fatalf("expected ErrorAmbiguousFilter, got %v", err)
	}
}

func TestToFilter_RequiresCompleteDateScope(t *testing.T) {
	input := ReportFilterInput{LocationId: 5, DateFrom: dateStringPtr("2026-03-01")}
	if _, err := input.ToFilter(""); !errors.Is(err, ErrorMissingScope) {
		t.Fatalf("expected ErrorMissingScope, got %v", err)
	}

	empty := ReportFilterInput{}
	if _, err := empty.ToFilter(""); !errors.Is(err, ErrorMissingScope) {
		t.Fatalf("expected ErrorMissingScope for empty input, got %v", err)
	}
}

func TestToFilter_JobMode(t *testing.T) {
	input := ReportFilterInput{JobIds: []int{7, 8}, TagIds: []int{3}}
	filter, err := input.ToFilter("")
	if err != nil {
		t.Fatalf("ToFilter error: %v", err)
	}
	mode, ok := filter.Mode.(ByJobs)
	if !ok {
		t.Fatalf("expected ByJobs mode, got %T", filter.Mode)
	}
	if len(mode.JobIds) != 2 || mode.JobIds[0] != 7 {
		t.Fatalf("unexpected job ids: %v", mode.JobIds)
	}
}

func TestToFilter_DateModeWidensToWholeDays(t *testing.T) {
	input := ReportFilterInput{
		LocationId: 5,
		DateFrom:   dateStringPtr("2026-03-01"),
		DateTo:     dateStringPtr("2026-03-31"),
	}
	filter, err := input.ToFilter("UTC")
	if err != nil {
		t.Fatalf("ToFilter error: %v", err)
	}
	mode, ok := filter.Mode.(ByLocationAndDate)
	if !ok {
		t.Fatalf("expected ByLocationAndDate mode, got %T", filter.Mode)
	}
	if mode.DateFrom.Hour() != 0 || mode.DateFrom.Day() != 1 {
		t.Fatalf("expected start of day, got %s", mode.DateFrom)
	}
	if mode.DateTo.Hour() != 23 || mode.DateTo.Day() != 31 {
		t.Fatalf("expected end of day, got %s", mode.DateTo)
	}
}

func TestPreviousPeriodFilter(t *testing.T) {
	filter := &ReportFilter{
		Mode: ByLocationAndDate{
			LocationId: 5,
			DateFrom:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			DateTo:     time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC),
		},
		TagIds: []int{3},
	}

	previous, err := filter.PreviousPeriodFilter()
	if err != nil {
		t.Fatalf("PreviousPeriodFilter error: %v", err)
	}
	mode := previous.Mode.(ByLocationAndDate)
	if !mode.DateFrom.Equal(time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected previous from: %s", mode.DateFrom)
	}
	if !mode.DateTo.Equal(time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("unexpected previous to: %s", mode.DateTo)
	}
	if len(previous.TagIds) != 1 {
		t.Fatalf("tag filter must carry over to the previous period")
	}
}

func TestPreviousPeriodFilter_JobModeFails(t *testing.T) {
	filter := &ReportFilter{Mode: ByJobs{JobIds: []int{1}}}
	if _, err := filter.PreviousPeriodFilter(); err == nil {
		t.Fatal("expected error for job-mode filter")
	}
}

func TestReferenceDate(t *testing.T) {
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	filter := &ReportFilter{Mode: ByLocationAndDate{LocationId: 1, DateTo: to}}
	if !filter.ReferenceDate().Equal(to) {
		t.Fatalf("expected window end as reference date, got %s", filter.ReferenceDate())
	}
}
