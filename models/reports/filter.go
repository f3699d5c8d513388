package reports

import (
	"errors"
	"time"

	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/dimitrizarkua/jobs_backend/utils"
)

// FetchMode scopes a report to either an explicit job set or a
// location+date window. The two are never mixed; ambiguous input is
// rejected at construction.
type FetchMode interface {
	isFetchMode()
}

type ByJobs struct {
	JobIds []int
}

func (ByJobs) isFetchMode() {}

type ByLocationAndDate struct {
	LocationId int
	DateFrom   time.Time
	DateTo     time.Time
}

func (ByLocationAndDate) isFetchMode() {}

// ReportFilter is the immutable scope of one report invocation.
type ReportFilter struct {
	Mode        FetchMode
	TagIds      []int
	GLAccountId int
}

// ReportFilterInput is the wire shape accepted by the report endpoints.
type ReportFilterInput struct {
	LocationId  int                `json:"location_id"`
	JobIds      []int              `json:"job_ids"`
	DateFrom    *models.DateString `json:"date_from"`
	DateTo      *models.DateString `json:"date_to"`
	TagIds      []int              `json:"tag_ids"`
	GLAccountId int                `json:"gl_account_id"`
}

var (
	ErrorAmbiguousFilter = errors.New("filter must specify either job ids or a location with a date range, not both")
	ErrorMissingScope    = errors.New("filter requires job ids or a location with a date range")
)

// ToFilter validates the input and builds the tagged filter. Dates are
// widened to whole days in the given timezone.
func (input *ReportFilterInput) ToFilter(timezone string) (*ReportFilter, error) {
	byJobs := len(input.JobIds) > 0
	byLocation := input.LocationId != 0 || input.DateFrom != nil || input.DateTo != nil

	if byJobs && byLocation {
		return nil, ErrorAmbiguousFilter
	}

	filter := &ReportFilter{
		TagIds:      input.TagIds,
		GLAccountId: input.GLAccountId,
	}

	if byJobs {
		filter.Mode = ByJobs{JobIds: input.JobIds}
		return filter, nil
	}

	if input.LocationId == 0 || input.DateFrom == nil || input.DateTo == nil {
		return nil, ErrorMissingScope
	}

	dateFrom := *input.DateFrom
	dateTo := *input.DateTo
	if err := dateFrom.StartOfDayUTCTime(timezone); err != nil {
		return nil, err
	}
	if err := dateTo.EndOfDayUTCTime(timezone); err != nil {
		return nil, err
	}
	if time.Time(dateTo).Before(time.Time(dateFrom)) {
		return nil, errors.New("date_to must not precede date_from")
	}

	filter.Mode = ByLocationAndDate{
		LocationId: input.LocationId,
		DateFrom:   time.Time(dateFrom),
		DateTo:     time.Time(dateTo),
	}
	return filter, nil
}

// PreviousPeriodFilter derives the scope of the equal-length window
// immediately preceding this one. Only defined for date-mode filters.
func (f *ReportFilter) PreviousPeriodFilter() (*ReportFilter, error) {
	mode, ok := f.Mode.(ByLocationAndDate)
	if !ok {
		return nil, errors.New("previous period requires a date range filter")
	}

	prevFrom, prevTo := utils.PreviousPeriod(mode.DateFrom, mode.DateTo)
	return &ReportFilter{
		Mode: ByLocationAndDate{
			LocationId: mode.LocationId,
			DateFrom:   prevFrom,
			DateTo:     prevTo,
		},
		TagIds:      f.TagIds,
		GLAccountId: f.GLAccountId,
	}, nil
}

// ReferenceDate is the aging anchor: the window end for date-mode filters,
// now otherwise.
func (f *ReportFilter) ReferenceDate() time.Time {
	if mode, ok := f.Mode.(ByLocationAndDate); ok {
		return mode.DateTo
	}
	return time.Now().UTC()
}
